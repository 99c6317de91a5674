package slapdb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// SlapReport is a row of the append-only ledger.
type SlapReport struct {
	bun.BaseModel `bun:"table:slap_reports,alias:s"`
	ID            int64               `bun:"id,pk,autoincrement"`
	GuildID       sharedtypes.GuildID `bun:"guild_id,notnull,type:varchar(20)"`
	Sentence      uint64              `bun:"sentence,notnull,type:numeric(20,0)"`
	Offender      sharedtypes.UserID  `bun:"offender,notnull,type:varchar(20)"`
	Enforcer      *sharedtypes.UserID `bun:"enforcer,type:varchar(20)"`
	Reason        *string             `bun:"reason"`
	CreatedAt     time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
