package slapservice

import (
	"context"

	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// Service defines the ledger operations.
type Service interface {
	NewSlap(ctx context.Context, slap slapdomain.NewSlap) (*slapdomain.SlapReport, error)

	GuildRecord(guildID sharedtypes.GuildID) GuildSlapRecord
	MemberRecord(guildID sharedtypes.GuildID, member sharedtypes.UserID) MemberSlapRecord

	CountGuildSlaps(ctx context.Context, guildID sharedtypes.GuildID) (uint64, error)
	GuildSlaps(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]slapdomain.SlapReport, error)
	Offenders(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]sharedtypes.UserID, error)
	CountMemberSlaps(ctx context.Context, guildID sharedtypes.GuildID, member sharedtypes.UserID) (uint64, error)
	MemberSlaps(ctx context.Context, guildID sharedtypes.GuildID, member sharedtypes.UserID, limit uint64) ([]slapdomain.SlapReport, error)

	ExportGuildSlaps(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]byte, error)
	OffenderChart(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]byte, error)
}
