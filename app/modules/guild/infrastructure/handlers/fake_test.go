package guildhandlers

import (
	"context"

	guildservice "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/application"
	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// ------------------------
// Fake Guild Service
// ------------------------

// FakeGuildService provides a programmable stub for the guildservice.Service interface.
type FakeGuildService struct {
	trace []string

	CreateGuildConfigFunc func(ctx context.Context, config guilddomain.NewGuildConfig) (*guilddomain.GuildConfig, error)
	GetGuildConfigFunc    func(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.GuildConfig, error)
	ListGuildIDsFunc      func(ctx context.Context) ([]sharedtypes.GuildID, error)

	GetAdminChannelFunc   func(ctx context.Context, guildID sharedtypes.GuildID) (*sharedtypes.ChannelID, error)
	GetAdvertiseFunc      func(ctx context.Context, guildID sharedtypes.GuildID) (bool, error)
	GetWelcomeMessageFunc func(ctx context.Context, guildID sharedtypes.GuildID) (*string, error)
	GetGoodbyeMessageFunc func(ctx context.Context, guildID sharedtypes.GuildID) (*string, error)

	SetAdminChannelFunc   func(ctx context.Context, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error
	SetAdvertiseFunc      func(ctx context.Context, guildID sharedtypes.GuildID, advertise bool) error
	SetWelcomeMessageFunc func(ctx context.Context, guildID sharedtypes.GuildID, message *string) error
	SetGoodbyeMessageFunc func(ctx context.Context, guildID sharedtypes.GuildID, message *string) error

	PrivilegesForFunc   func(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error)
	RolesWithFunc       func(ctx context.Context, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error)
	HasPrivilegesFunc   func(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, required ...guilddomain.Privilege) (bool, error)
	HavePrivilegeFunc   func(ctx context.Context, guildID sharedtypes.GuildID, roles []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error)
	ExistsFunc          func(ctx context.Context, guildID sharedtypes.GuildID) (bool, error)
	GrantPrivilegeFunc  func(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
	RevokePrivilegeFunc func(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
}

// NewFakeGuildService initializes a new FakeGuildService.
func NewFakeGuildService() *FakeGuildService {
	return &FakeGuildService{
		trace: []string{},
	}
}

func (f *FakeGuildService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeGuildService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeGuildService) CreateGuildConfig(ctx context.Context, config guilddomain.NewGuildConfig) (*guilddomain.GuildConfig, error) {
	f.record("CreateGuildConfig")
	if f.CreateGuildConfigFunc != nil {
		return f.CreateGuildConfigFunc(ctx, config)
	}
	return &guilddomain.GuildConfig{GuildID: config.GuildID}, nil
}

func (f *FakeGuildService) GetGuildConfig(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.GuildConfig, error) {
	f.record("GetGuildConfig")
	if f.GetGuildConfigFunc != nil {
		return f.GetGuildConfigFunc(ctx, guildID)
	}
	return &guilddomain.GuildConfig{GuildID: guildID}, nil
}

func (f *FakeGuildService) ListGuildIDs(ctx context.Context) ([]sharedtypes.GuildID, error) {
	f.record("ListGuildIDs")
	if f.ListGuildIDsFunc != nil {
		return f.ListGuildIDsFunc(ctx)
	}
	return []sharedtypes.GuildID{}, nil
}

func (f *FakeGuildService) GetAdminChannel(ctx context.Context, guildID sharedtypes.GuildID) (*sharedtypes.ChannelID, error) {
	f.record("GetAdminChannel")
	if f.GetAdminChannelFunc != nil {
		return f.GetAdminChannelFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeGuildService) GetAdvertise(ctx context.Context, guildID sharedtypes.GuildID) (bool, error) {
	f.record("GetAdvertise")
	if f.GetAdvertiseFunc != nil {
		return f.GetAdvertiseFunc(ctx, guildID)
	}
	return false, nil
}

func (f *FakeGuildService) GetWelcomeMessage(ctx context.Context, guildID sharedtypes.GuildID) (*string, error) {
	f.record("GetWelcomeMessage")
	if f.GetWelcomeMessageFunc != nil {
		return f.GetWelcomeMessageFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeGuildService) GetGoodbyeMessage(ctx context.Context, guildID sharedtypes.GuildID) (*string, error) {
	f.record("GetGoodbyeMessage")
	if f.GetGoodbyeMessageFunc != nil {
		return f.GetGoodbyeMessageFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeGuildService) SetAdminChannel(ctx context.Context, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error {
	f.record("SetAdminChannel")
	if f.SetAdminChannelFunc != nil {
		return f.SetAdminChannelFunc(ctx, guildID, channel)
	}
	return nil
}

func (f *FakeGuildService) SetAdvertise(ctx context.Context, guildID sharedtypes.GuildID, advertise bool) error {
	f.record("SetAdvertise")
	if f.SetAdvertiseFunc != nil {
		return f.SetAdvertiseFunc(ctx, guildID, advertise)
	}
	return nil
}

func (f *FakeGuildService) SetWelcomeMessage(ctx context.Context, guildID sharedtypes.GuildID, message *string) error {
	f.record("SetWelcomeMessage")
	if f.SetWelcomeMessageFunc != nil {
		return f.SetWelcomeMessageFunc(ctx, guildID, message)
	}
	return nil
}

func (f *FakeGuildService) SetGoodbyeMessage(ctx context.Context, guildID sharedtypes.GuildID, message *string) error {
	f.record("SetGoodbyeMessage")
	if f.SetGoodbyeMessageFunc != nil {
		return f.SetGoodbyeMessageFunc(ctx, guildID, message)
	}
	return nil
}

func (f *FakeGuildService) PrivilegesFor(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error) {
	f.record("PrivilegesFor")
	if f.PrivilegesForFunc != nil {
		return f.PrivilegesForFunc(ctx, guildID, roleID)
	}
	return nil, nil
}

func (f *FakeGuildService) RolesWith(ctx context.Context, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error) {
	f.record("RolesWith")
	if f.RolesWithFunc != nil {
		return f.RolesWithFunc(ctx, guildID, privilege)
	}
	return nil, nil
}

func (f *FakeGuildService) HasPrivileges(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, required ...guilddomain.Privilege) (bool, error) {
	f.record("HasPrivileges")
	if f.HasPrivilegesFunc != nil {
		return f.HasPrivilegesFunc(ctx, guildID, roleID, required...)
	}
	return false, nil
}

func (f *FakeGuildService) HavePrivilege(ctx context.Context, guildID sharedtypes.GuildID, roles []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error) {
	f.record("HavePrivilege")
	if f.HavePrivilegeFunc != nil {
		return f.HavePrivilegeFunc(ctx, guildID, roles, privilege)
	}
	return false, nil
}

func (f *FakeGuildService) Exists(ctx context.Context, guildID sharedtypes.GuildID) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, guildID)
	}
	return false, nil
}

func (f *FakeGuildService) GrantPrivilege(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	f.record("GrantPrivilege")
	if f.GrantPrivilegeFunc != nil {
		return f.GrantPrivilegeFunc(ctx, guildID, roleID, privilege)
	}
	return nil
}

func (f *FakeGuildService) RevokePrivilege(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	f.record("RevokePrivilege")
	if f.RevokePrivilegeFunc != nil {
		return f.RevokePrivilegeFunc(ctx, guildID, roleID, privilege)
	}
	return nil
}

// Ensure the fake satisfies the Service interface
var _ guildservice.Service = (*FakeGuildService)(nil)
