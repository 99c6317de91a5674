package slapservice

import (
	"context"

	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// GuildSlapRecord is the guild-wide ledger ordered by id ascending. Every
// read starts again from the oldest entry; there is no offset or cursor, so
// callers wanting more entries ask for a larger limit.
type GuildSlapRecord struct {
	svc     *SlapService
	guildID sharedtypes.GuildID
}

// Len counts the guild's entries.
func (r GuildSlapRecord) Len(ctx context.Context) (uint64, error) {
	return withTelemetry(r.svc, ctx, "GuildSlapRecord.Len", r.guildID, func(ctx context.Context) (uint64, error) {
		n, err := r.svc.repo.CountGuild(ctx, nil, r.guildID)
		if err != nil {
			return 0, apperrors.Store("CountGuild", err)
		}
		return uint64(n), nil
	})
}

// Slaps returns up to limit entries, oldest first.
func (r GuildSlapRecord) Slaps(ctx context.Context, limit uint64) ([]slapdomain.SlapReport, error) {
	return withTelemetry(r.svc, ctx, "GuildSlapRecord.Slaps", r.guildID, func(ctx context.Context) ([]slapdomain.SlapReport, error) {
		n, err := ToLimit(limit)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return []slapdomain.SlapReport{}, nil
		}
		rows, err := r.svc.repo.ListGuild(ctx, nil, r.guildID, n)
		if err != nil {
			return nil, apperrors.Store("ListGuild", err)
		}
		return toDomainSlice(rows), nil
	})
}

// Offenders returns the offender of each of the first limit entries. A
// member appears once per entry.
func (r GuildSlapRecord) Offenders(ctx context.Context, limit uint64) ([]sharedtypes.UserID, error) {
	return withTelemetry(r.svc, ctx, "GuildSlapRecord.Offenders", r.guildID, func(ctx context.Context) ([]sharedtypes.UserID, error) {
		n, err := ToLimit(limit)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return []sharedtypes.UserID{}, nil
		}
		offenders, err := r.svc.repo.ListOffenders(ctx, nil, r.guildID, n)
		if err != nil {
			return nil, apperrors.Store("ListOffenders", err)
		}
		if offenders == nil {
			offenders = []sharedtypes.UserID{}
		}
		return offenders, nil
	})
}

// MemberSlapRecord is GuildSlapRecord restricted to one offender.
type MemberSlapRecord struct {
	svc     *SlapService
	guildID sharedtypes.GuildID
	member  sharedtypes.UserID
}

// Len counts the member's entries.
func (r MemberSlapRecord) Len(ctx context.Context) (uint64, error) {
	return withTelemetry(r.svc, ctx, "MemberSlapRecord.Len", r.guildID, func(ctx context.Context) (uint64, error) {
		n, err := r.svc.repo.CountMember(ctx, nil, r.guildID, r.member)
		if err != nil {
			return 0, apperrors.Store("CountMember", err)
		}
		return uint64(n), nil
	})
}

// Slaps returns up to limit of the member's entries, oldest first.
func (r MemberSlapRecord) Slaps(ctx context.Context, limit uint64) ([]slapdomain.SlapReport, error) {
	return withTelemetry(r.svc, ctx, "MemberSlapRecord.Slaps", r.guildID, func(ctx context.Context) ([]slapdomain.SlapReport, error) {
		n, err := ToLimit(limit)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return []slapdomain.SlapReport{}, nil
		}
		rows, err := r.svc.repo.ListMember(ctx, nil, r.guildID, r.member, n)
		if err != nil {
			return nil, apperrors.Store("ListMember", err)
		}
		return toDomainSlice(rows), nil
	})
}
