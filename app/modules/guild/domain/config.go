package guilddomain

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// GuildConfig is the full configuration of one guild.
type GuildConfig struct {
	GuildID        sharedtypes.GuildID    `json:"guild_id"`
	AdminChannel   *sharedtypes.ChannelID `json:"admin_channel"`
	Advertise      bool                   `json:"advertise"`
	WelcomeMessage *string                `json:"welcome_message"`
	GoodbyeMessage *string                `json:"goodbye_message"`
	Roles          []RolePrivileges       `json:"roles"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// RolePrivileges lists what one role holds. Privileges are sorted.
type RolePrivileges struct {
	RoleID     sharedtypes.RoleID `json:"role_id"`
	Privileges []Privilege        `json:"privileges"`
}

// NewGuildConfig carries the initial values of a config. AdminChannel is
// always unset on creation.
type NewGuildConfig struct {
	GuildID        sharedtypes.GuildID `json:"guild_id"`
	Advertise      bool                `json:"advertise"`
	WelcomeMessage *string             `json:"welcome_message"`
	GoodbyeMessage *string             `json:"goodbye_message"`
}
