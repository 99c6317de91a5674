package slapservice

import (
	"context"
	"sync"
	"time"

	slapdb "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Slap Repo
// ------------------------

type FakeSlapRepo struct {
	mu    sync.Mutex
	trace []string

	InsertFunc        func(ctx context.Context, db bun.IDB, slap *slapdb.SlapReport) error
	CountGuildFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int, error)
	ListGuildFunc     func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]slapdb.SlapReport, error)
	CountMemberFunc   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID) (int, error)
	ListMemberFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID, limit int) ([]slapdb.SlapReport, error)
	ListOffendersFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]sharedtypes.UserID, error)
}

func NewFakeSlapRepo() *FakeSlapRepo {
	return &FakeSlapRepo{trace: []string{}}
}

func (f *FakeSlapRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeSlapRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSlapRepo) Insert(ctx context.Context, db bun.IDB, slap *slapdb.SlapReport) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, slap)
	}
	return nil
}

func (f *FakeSlapRepo) CountGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int, error) {
	f.record("CountGuild")
	if f.CountGuildFunc != nil {
		return f.CountGuildFunc(ctx, db, guildID)
	}
	return 0, nil
}

func (f *FakeSlapRepo) ListGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]slapdb.SlapReport, error) {
	f.record("ListGuild")
	if f.ListGuildFunc != nil {
		return f.ListGuildFunc(ctx, db, guildID, limit)
	}
	return nil, nil
}

func (f *FakeSlapRepo) CountMember(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID) (int, error) {
	f.record("CountMember")
	if f.CountMemberFunc != nil {
		return f.CountMemberFunc(ctx, db, guildID, offender)
	}
	return 0, nil
}

func (f *FakeSlapRepo) ListMember(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID, limit int) ([]slapdb.SlapReport, error) {
	f.record("ListMember")
	if f.ListMemberFunc != nil {
		return f.ListMemberFunc(ctx, db, guildID, offender, limit)
	}
	return nil, nil
}

func (f *FakeSlapRepo) ListOffenders(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]sharedtypes.UserID, error) {
	f.record("ListOffenders")
	if f.ListOffendersFunc != nil {
		return f.ListOffendersFunc(ctx, db, guildID, limit)
	}
	return nil, nil
}

var _ slapdb.Repository = (*FakeSlapRepo)(nil)

// withMemoryLedger backs the fake with an append-only slice that assigns
// increasing ids like a bigserial column.
func withMemoryLedger(f *FakeSlapRepo) *FakeSlapRepo {
	var mu sync.Mutex
	var rows []slapdb.SlapReport
	var nextID int64

	filter := func(keep func(slapdb.SlapReport) bool, limit int) []slapdb.SlapReport {
		out := []slapdb.SlapReport{}
		for _, r := range rows {
			if len(out) == limit {
				break
			}
			if keep(r) {
				out = append(out, r)
			}
		}
		return out
	}

	f.InsertFunc = func(_ context.Context, _ bun.IDB, slap *slapdb.SlapReport) error {
		mu.Lock()
		defer mu.Unlock()
		nextID++
		slap.ID = nextID
		slap.CreatedAt = time.Unix(1700000000+nextID, 0).UTC()
		rows = append(rows, *slap)
		return nil
	}
	f.CountGuildFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return len(filter(func(r slapdb.SlapReport) bool { return r.GuildID == guildID }, -1)), nil
	}
	f.ListGuildFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, limit int) ([]slapdb.SlapReport, error) {
		mu.Lock()
		defer mu.Unlock()
		return filter(func(r slapdb.SlapReport) bool { return r.GuildID == guildID }, limit), nil
	}
	f.CountMemberFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return len(filter(func(r slapdb.SlapReport) bool { return r.GuildID == guildID && r.Offender == offender }, -1)), nil
	}
	f.ListMemberFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID, limit int) ([]slapdb.SlapReport, error) {
		mu.Lock()
		defer mu.Unlock()
		return filter(func(r slapdb.SlapReport) bool { return r.GuildID == guildID && r.Offender == offender }, limit), nil
	}
	f.ListOffendersFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, limit int) ([]sharedtypes.UserID, error) {
		mu.Lock()
		defer mu.Unlock()
		var out []sharedtypes.UserID
		for _, r := range filter(func(r slapdb.SlapReport) bool { return r.GuildID == guildID }, limit) {
			out = append(out, r.Offender)
		}
		return out, nil
	}
	return f
}

type FakePublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (p *FakePublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	return nil
}
