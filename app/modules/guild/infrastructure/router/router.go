package guildrouter

import (
	"net/http"

	guildhandlers "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register attaches the guild routes to r, which is mounted at /api/guilds.
// Mutating routes sit behind guardWrites.
func Register(r chi.Router, h *guildhandlers.GuildHandlers, guardWrites func(http.Handler) http.Handler) {
	r.Get("/", h.HandleListGuildIDs)
	r.Get("/{guildID}", h.HandleGetGuildConfig)
	r.Get("/{guildID}/exists", h.HandleGuildExists)
	r.Get("/{guildID}/settings/{field}", h.HandleGetSetting)
	r.Get("/{guildID}/roles/{roleID}/privileges", h.HandlePrivilegesFor)
	r.Get("/{guildID}/roles/{roleID}/authorize", h.HandleHasPrivileges)
	r.Get("/{guildID}/privileges/{privilege}/roles", h.HandleRolesWith)
	r.Get("/{guildID}/privileges/{privilege}/check", h.HandleHavePrivilege)

	r.Group(func(r chi.Router) {
		r.Use(guardWrites)
		r.Post("/", h.HandleCreateGuildConfig)
		r.Put("/{guildID}/settings/{field}", h.HandleUpdateSetting)
		r.Put("/{guildID}/roles/{roleID}/privileges/{privilege}", h.HandleGrantPrivilege)
		r.Delete("/{guildID}/roles/{roleID}/privileges/{privilege}", h.HandleRevokePrivilege)
	})
}
