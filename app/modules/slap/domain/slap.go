package slapdomain

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// SlapReport is one immutable ledger entry. ID and CreatedAt are assigned
// by the store; IDs increase in commit order.
type SlapReport struct {
	ID        uint64              `json:"id"`
	GuildID   sharedtypes.GuildID `json:"guild_id"`
	Sentence  uint64              `json:"sentence"`
	Offender  sharedtypes.UserID  `json:"offender"`
	Enforcer  *sharedtypes.UserID `json:"enforcer"`
	Reason    *string             `json:"reason"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewSlap is the input of a ledger append. A nil Enforcer means the entry
// was recorded without a responsible moderator.
type NewSlap struct {
	GuildID  sharedtypes.GuildID `json:"guild_id"`
	Sentence uint64              `json:"sentence"`
	Offender sharedtypes.UserID  `json:"offender"`
	Enforcer *sharedtypes.UserID `json:"enforcer"`
	Reason   *string             `json:"reason"`
}

// SlapCreatedV1 is published after every append.
const SlapCreatedV1 = "slap.created"

// Topics returns every topic the slap module publishes.
func Topics() []string {
	return []string{SlapCreatedV1}
}

// SlapCreatedPayload carries the new entry.
type SlapCreatedPayload struct {
	Slap SlapReport `json:"slap"`
}
