package slapdb

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// Repository defines the contract for ledger persistence. Entries are never
// updated or deleted. List methods return rows in ascending id order.
type Repository interface {
	// Insert appends a row and fills in its ID and CreatedAt.
	Insert(ctx context.Context, db bun.IDB, slap *SlapReport) error

	CountGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int, error)
	ListGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]SlapReport, error)

	CountMember(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID) (int, error)
	ListMember(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID, limit int) ([]SlapReport, error)

	// ListOffenders returns the offender of each of the first limit entries.
	ListOffenders(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]sharedtypes.UserID, error)
}
