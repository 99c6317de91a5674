package guildhandlers

import (
	"context"
	"net/http"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
	"github.com/go-chi/chi/v5"
)

func privilegeParam(r *http.Request) (guilddomain.Privilege, error) {
	return guilddomain.ParsePrivilege(chi.URLParam(r, "privilege"))
}

// HandlePrivilegesFor lists the privileges of one role.
func (h *GuildHandlers) HandlePrivilegesFor(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	roleID, err := httpapi.RoleIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	privileges, err := h.service.PrivilegesFor(r.Context(), guildID, roleID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if privileges == nil {
		privileges = []guilddomain.Privilege{}
	}
	httpapi.WriteJSON(w, http.StatusOK, privileges)
}

// HandleRolesWith lists the roles holding one privilege.
func (h *GuildHandlers) HandleRolesWith(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	privilege, err := privilegeParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	roles, err := h.service.RolesWith(r.Context(), guildID, privilege)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if roles == nil {
		roles = []sharedtypes.RoleID{}
	}
	httpapi.WriteJSON(w, http.StatusOK, roles)
}

// HandleHasPrivileges answers whether the role holds every ?privilege=.
// No privilege parameters is vacuously authorized.
func (h *GuildHandlers) HandleHasPrivileges(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	roleID, err := httpapi.RoleIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	tokens := r.URL.Query()["privilege"]
	required := make([]guilddomain.Privilege, 0, len(tokens))
	for _, token := range tokens {
		p, err := guilddomain.ParsePrivilege(token)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		required = append(required, p)
	}

	ok, err := h.service.HasPrivileges(r.Context(), guildID, roleID, required...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, AuthorizedResponse{Authorized: ok})
}

// HandleHavePrivilege answers whether any ?role= holds the privilege.
func (h *GuildHandlers) HandleHavePrivilege(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	privilege, err := privilegeParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	raw := r.URL.Query()["role"]
	roles := make([]sharedtypes.RoleID, 0, len(raw))
	for _, s := range raw {
		id, err := sharedtypes.ParseRoleID(s)
		if err != nil {
			h.fail(w, r, httpapi.BadRequest("invalid role id %q", s))
			return
		}
		roles = append(roles, id)
	}

	ok, err := h.service.HavePrivilege(r.Context(), guildID, roles, privilege)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, AuthorizedResponse{Authorized: ok})
}

// HandleGrantPrivilege gives a role a privilege. Granting twice is a no-op.
func (h *GuildHandlers) HandleGrantPrivilege(w http.ResponseWriter, r *http.Request) {
	h.changePrivilege(w, r, h.service.GrantPrivilege)
}

// HandleRevokePrivilege takes a privilege from a role. Revoking an absent
// grant is a no-op.
func (h *GuildHandlers) HandleRevokePrivilege(w http.ResponseWriter, r *http.Request) {
	h.changePrivilege(w, r, h.service.RevokePrivilege)
}

type privilegeChange func(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error

func (h *GuildHandlers) changePrivilege(w http.ResponseWriter, r *http.Request, change privilegeChange) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	roleID, err := httpapi.RoleIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	privilege, err := privilegeParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := change(r.Context(), guildID, roleID, privilege); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
