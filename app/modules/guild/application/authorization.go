package guildservice

import (
	"context"
	"fmt"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// PrivilegesFor returns the privileges held by role, sorted and distinct.
func (s *GuildService) PrivilegesFor(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error) {
	return withTelemetry(s, ctx, "PrivilegesFor", guildID, func(ctx context.Context) ([]guilddomain.Privilege, error) {
		privileges, err := s.repo.PrivilegesForRole(ctx, nil, guildID, roleID)
		if err != nil {
			return nil, mapRepoErr("PrivilegesForRole", guildID, err)
		}
		if privileges == nil {
			privileges = []guilddomain.Privilege{}
		}
		return privileges, nil
	})
}

// RolesWith returns the roles holding privilege, sorted and distinct.
func (s *GuildService) RolesWith(ctx context.Context, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error) {
	return withTelemetry(s, ctx, "RolesWith", guildID, func(ctx context.Context) ([]sharedtypes.RoleID, error) {
		roles, err := s.repo.RolesWithPrivilege(ctx, nil, guildID, privilege)
		if err != nil {
			return nil, mapRepoErr("RolesWithPrivilege", guildID, err)
		}
		if roles == nil {
			roles = []sharedtypes.RoleID{}
		}
		return roles, nil
	})
}

// HasPrivileges reports whether role holds every privilege in required.
// An empty required set is satisfied without reading the store.
func (s *GuildService) HasPrivileges(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, required ...guilddomain.Privilege) (bool, error) {
	if len(required) == 0 {
		return true, nil
	}
	held, err := s.PrivilegesFor(ctx, guildID, roleID)
	if err != nil {
		return false, err
	}
	set := make(map[guilddomain.Privilege]struct{}, len(held))
	for _, p := range held {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// HavePrivilege reports whether at least one of roles holds privilege.
// An empty role list is never authorized and does not read the store.
func (s *GuildService) HavePrivilege(ctx context.Context, guildID sharedtypes.GuildID, roles []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	return withTelemetry(s, ctx, "HavePrivilege", guildID, func(ctx context.Context) (bool, error) {
		ok, err := s.repo.AnyRoleHasPrivilege(ctx, nil, guildID, roles, privilege)
		if err != nil {
			return false, mapRepoErr("AnyRoleHasPrivilege", guildID, err)
		}
		return ok, nil
	})
}

// Exists reports whether the guild has a configuration.
func (s *GuildService) Exists(ctx context.Context, guildID sharedtypes.GuildID) (bool, error) {
	return withTelemetry(s, ctx, "Exists", guildID, func(ctx context.Context) (bool, error) {
		ok, err := s.repo.Exists(ctx, nil, guildID)
		if err != nil {
			return false, mapRepoErr("Exists", guildID, err)
		}
		return ok, nil
	})
}

// GrantPrivilege gives role the privilege. Granting twice is a no-op.
func (s *GuildService) GrantPrivilege(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	_, err := withTelemetry(s, ctx, "GrantPrivilege", guildID, func(ctx context.Context) (struct{}, error) {
		if !privilege.IsValid() {
			return struct{}{}, &guilddomain.UnrecognizedPrivilegeError{Text: privilege.String()}
		}
		_, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			exists, err := s.repo.Exists(ctx, db, guildID)
			if err != nil {
				return struct{}{}, mapRepoErr("Exists", guildID, err)
			}
			if !exists {
				return struct{}{}, fmt.Errorf("%w: guild %s", ErrGuildConfigNotFound, guildID)
			}
			if err := s.repo.AddRolePrivilege(ctx, db, guildID, roleID, privilege); err != nil {
				return struct{}{}, mapRepoErr("AddRolePrivilege", guildID, err)
			}
			return struct{}{}, nil
		})
		if err != nil {
			return struct{}{}, err
		}
		s.publish(ctx, guilddomain.GuildPrivilegeGrantedV1, guilddomain.GuildPrivilegePayload{
			GuildID:   guildID,
			RoleID:    roleID,
			Privilege: privilege,
		})
		return struct{}{}, nil
	})
	return err
}

// RevokePrivilege removes the privilege from role. Revoking an absent pair
// is a no-op.
func (s *GuildService) RevokePrivilege(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	_, err := withTelemetry(s, ctx, "RevokePrivilege", guildID, func(ctx context.Context) (struct{}, error) {
		if err := s.repo.RemoveRolePrivilege(ctx, nil, guildID, roleID, privilege); err != nil {
			return struct{}{}, mapRepoErr("RemoveRolePrivilege", guildID, err)
		}
		s.publish(ctx, guilddomain.GuildPrivilegeRevokedV1, guilddomain.GuildPrivilegePayload{
			GuildID:   guildID,
			RoleID:    roleID,
			Privilege: privilege,
		})
		return struct{}{}, nil
	})
	return err
}
