package guildservice

import (
	"context"
	"slices"
	"sync"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	guilddb "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Guild Repo
// ------------------------

// FakeGuildRepository provides a programmable stub for the guilddb.Repository interface.
type FakeGuildRepository struct {
	mu    sync.Mutex
	trace []string

	GetConfigFunc           func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*guilddb.GuildConfig, error)
	ExistsFunc              func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (bool, error)
	InsertConfigFunc        func(ctx context.Context, db bun.IDB, config *guilddb.GuildConfig) error
	ListGuildIDsFunc        func(ctx context.Context, db bun.IDB) ([]sharedtypes.GuildID, error)
	SetAdminChannelFunc     func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error
	SetAdvertiseFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, advertise bool) error
	SetWelcomeMessageFunc   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error
	SetGoodbyeMessageFunc   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error
	PrivilegesForRoleFunc   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error)
	RolesWithPrivilegeFunc  func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error)
	ListRolePrivilegesFunc  func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]guilddb.RolePrivilege, error)
	AnyRoleHasPrivilegeFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleIDs []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error)
	AddRolePrivilegeFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
	RemoveRolePrivilegeFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
}

// NewFakeGuildRepository initializes a new FakeGuildRepository with an empty trace.
func NewFakeGuildRepository() *FakeGuildRepository {
	return &FakeGuildRepository{trace: []string{}}
}

func (f *FakeGuildRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGuildRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Repository Interface Implementation ---

func (f *FakeGuildRepository) GetConfig(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*guilddb.GuildConfig, error) {
	f.record("GetConfig")
	if f.GetConfigFunc != nil {
		return f.GetConfigFunc(ctx, db, guildID)
	}
	return nil, guilddb.ErrNotFound
}

func (f *FakeGuildRepository) Exists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, guildID)
	}
	return false, nil
}

func (f *FakeGuildRepository) InsertConfig(ctx context.Context, db bun.IDB, config *guilddb.GuildConfig) error {
	f.record("InsertConfig")
	if f.InsertConfigFunc != nil {
		return f.InsertConfigFunc(ctx, db, config)
	}
	return nil
}

func (f *FakeGuildRepository) ListGuildIDs(ctx context.Context, db bun.IDB) ([]sharedtypes.GuildID, error) {
	f.record("ListGuildIDs")
	if f.ListGuildIDsFunc != nil {
		return f.ListGuildIDsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeGuildRepository) SetAdminChannel(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error {
	f.record("SetAdminChannel")
	if f.SetAdminChannelFunc != nil {
		return f.SetAdminChannelFunc(ctx, db, guildID, channel)
	}
	return guilddb.ErrNotFound
}

func (f *FakeGuildRepository) SetAdvertise(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, advertise bool) error {
	f.record("SetAdvertise")
	if f.SetAdvertiseFunc != nil {
		return f.SetAdvertiseFunc(ctx, db, guildID, advertise)
	}
	return guilddb.ErrNotFound
}

func (f *FakeGuildRepository) SetWelcomeMessage(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error {
	f.record("SetWelcomeMessage")
	if f.SetWelcomeMessageFunc != nil {
		return f.SetWelcomeMessageFunc(ctx, db, guildID, message)
	}
	return guilddb.ErrNotFound
}

func (f *FakeGuildRepository) SetGoodbyeMessage(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error {
	f.record("SetGoodbyeMessage")
	if f.SetGoodbyeMessageFunc != nil {
		return f.SetGoodbyeMessageFunc(ctx, db, guildID, message)
	}
	return guilddb.ErrNotFound
}

func (f *FakeGuildRepository) PrivilegesForRole(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error) {
	f.record("PrivilegesForRole")
	if f.PrivilegesForRoleFunc != nil {
		return f.PrivilegesForRoleFunc(ctx, db, guildID, roleID)
	}
	return nil, nil
}

func (f *FakeGuildRepository) RolesWithPrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error) {
	f.record("RolesWithPrivilege")
	if f.RolesWithPrivilegeFunc != nil {
		return f.RolesWithPrivilegeFunc(ctx, db, guildID, privilege)
	}
	return nil, nil
}

func (f *FakeGuildRepository) ListRolePrivileges(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]guilddb.RolePrivilege, error) {
	f.record("ListRolePrivileges")
	if f.ListRolePrivilegesFunc != nil {
		return f.ListRolePrivilegesFunc(ctx, db, guildID)
	}
	return nil, nil
}

func (f *FakeGuildRepository) AnyRoleHasPrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleIDs []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error) {
	f.record("AnyRoleHasPrivilege")
	if f.AnyRoleHasPrivilegeFunc != nil {
		return f.AnyRoleHasPrivilegeFunc(ctx, db, guildID, roleIDs, privilege)
	}
	return false, nil
}

func (f *FakeGuildRepository) AddRolePrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	f.record("AddRolePrivilege")
	if f.AddRolePrivilegeFunc != nil {
		return f.AddRolePrivilegeFunc(ctx, db, guildID, roleID, privilege)
	}
	return nil
}

func (f *FakeGuildRepository) RemoveRolePrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	f.record("RemoveRolePrivilege")
	if f.RemoveRolePrivilegeFunc != nil {
		return f.RemoveRolePrivilegeFunc(ctx, db, guildID, roleID, privilege)
	}
	return nil
}

// Ensure the fake actually satisfies the interface
var _ guilddb.Repository = (*FakeGuildRepository)(nil)

// ------------------------
// In-memory backing
// ------------------------

type grantKey struct {
	guild sharedtypes.GuildID
	role  sharedtypes.RoleID
	priv  guilddomain.Privilege
}

// withMemoryStore programs every Func field against shared maps so
// multi-step scenarios behave like a real store.
func withMemoryStore(f *FakeGuildRepository) *FakeGuildRepository {
	var mu sync.Mutex
	configs := map[sharedtypes.GuildID]*guilddb.GuildConfig{}
	grants := map[grantKey]struct{}{}

	update := func(guildID sharedtypes.GuildID, apply func(*guilddb.GuildConfig)) error {
		mu.Lock()
		defer mu.Unlock()
		cfg, ok := configs[guildID]
		if !ok {
			return guilddb.ErrNotFound
		}
		apply(cfg)
		return nil
	}

	f.GetConfigFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID) (*guilddb.GuildConfig, error) {
		mu.Lock()
		defer mu.Unlock()
		cfg, ok := configs[guildID]
		if !ok {
			return nil, guilddb.ErrNotFound
		}
		cp := *cfg
		return &cp, nil
	}
	f.ExistsFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		_, ok := configs[guildID]
		return ok, nil
	}
	f.InsertConfigFunc = func(_ context.Context, _ bun.IDB, config *guilddb.GuildConfig) error {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := configs[config.GuildID]; ok {
			return guilddb.ErrAlreadyExists
		}
		cp := *config
		configs[config.GuildID] = &cp
		return nil
	}
	f.ListGuildIDsFunc = func(_ context.Context, _ bun.IDB) ([]sharedtypes.GuildID, error) {
		mu.Lock()
		defer mu.Unlock()
		var ids []sharedtypes.GuildID
		for id := range configs {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids, nil
	}
	f.SetAdminChannelFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error {
		return update(guildID, func(c *guilddb.GuildConfig) { c.AdminChannel = channel })
	}
	f.SetAdvertiseFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, advertise bool) error {
		return update(guildID, func(c *guilddb.GuildConfig) { c.Advertise = advertise })
	}
	f.SetWelcomeMessageFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, message *string) error {
		return update(guildID, func(c *guilddb.GuildConfig) { c.WelcomeMessage = message })
	}
	f.SetGoodbyeMessageFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, message *string) error {
		return update(guildID, func(c *guilddb.GuildConfig) { c.GoodbyeMessage = message })
	}
	f.PrivilegesForRoleFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error) {
		mu.Lock()
		defer mu.Unlock()
		var out []guilddomain.Privilege
		for k := range grants {
			if k.guild == guildID && k.role == roleID {
				out = append(out, k.priv)
			}
		}
		slices.Sort(out)
		return out, nil
	}
	f.RolesWithPrivilegeFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error) {
		mu.Lock()
		defer mu.Unlock()
		var out []sharedtypes.RoleID
		for k := range grants {
			if k.guild == guildID && k.priv == privilege {
				out = append(out, k.role)
			}
		}
		slices.Sort(out)
		return out, nil
	}
	f.ListRolePrivilegesFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID) ([]guilddb.RolePrivilege, error) {
		mu.Lock()
		defer mu.Unlock()
		var out []guilddb.RolePrivilege
		for k := range grants {
			if k.guild == guildID {
				out = append(out, guilddb.RolePrivilege{GuildID: k.guild, RoleID: k.role, Privilege: k.priv})
			}
		}
		slices.SortFunc(out, func(a, b guilddb.RolePrivilege) int {
			if a.RoleID != b.RoleID {
				if a.RoleID < b.RoleID {
					return -1
				}
				return 1
			}
			return int(a.Privilege) - int(b.Privilege)
		})
		return out, nil
	}
	f.AnyRoleHasPrivilegeFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, roleIDs []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		for _, r := range roleIDs {
			if _, ok := grants[grantKey{guildID, r, privilege}]; ok {
				return true, nil
			}
		}
		return false, nil
	}
	f.AddRolePrivilegeFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
		mu.Lock()
		defer mu.Unlock()
		grants[grantKey{guildID, roleID, privilege}] = struct{}{}
		return nil
	}
	f.RemoveRolePrivilegeFunc = func(_ context.Context, _ bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
		mu.Lock()
		defer mu.Unlock()
		delete(grants, grantKey{guildID, roleID, privilege})
		return nil
	}
	return f
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Topic
	}
	return out
}
