package guilddb

import (
	"time"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// GuildConfig is the per-guild settings row.
// A nil message is unset; an empty string is a valid message.
type GuildConfig struct {
	bun.BaseModel  `bun:"table:guild_configs,alias:g"`
	GuildID        sharedtypes.GuildID    `bun:"guild_id,pk,type:varchar(20)"`
	AdminChannel   *sharedtypes.ChannelID `bun:"admin_channel,type:varchar(20)"`
	Advertise      bool                   `bun:"advertise,notnull,default:false"`
	WelcomeMessage *string                `bun:"welcome_message"`
	GoodbyeMessage *string                `bun:"goodbye_message"`
	CreatedAt      time.Time              `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time              `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// RolePrivilege assigns one privilege to one role of a guild.
type RolePrivilege struct {
	bun.BaseModel `bun:"table:role_privileges,alias:rp"`
	GuildID       sharedtypes.GuildID   `bun:"guild_id,pk,type:varchar(20)"`
	RoleID        sharedtypes.RoleID    `bun:"role_id,pk,type:varchar(20)"`
	Privilege     guilddomain.Privilege `bun:"privilege,pk,type:varchar(16)"`
	CreatedAt     time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
