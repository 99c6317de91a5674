package slaprouter

import (
	"net/http"

	slaphandlers "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register attaches the ledger routes to r, which is mounted at /api/guilds.
func Register(r chi.Router, h *slaphandlers.SlapHandlers, guardWrites func(http.Handler) http.Handler) {
	r.Get("/{guildID}/slaps", h.HandleGuildSlaps)
	r.Get("/{guildID}/slaps/count", h.HandleCountGuildSlaps)
	r.Get("/{guildID}/slaps/export.xlsx", h.HandleExportGuildSlaps)
	r.Get("/{guildID}/offenders", h.HandleOffenders)
	r.Get("/{guildID}/offenders/chart.png", h.HandleOffenderChart)
	r.Get("/{guildID}/members/{userID}/slaps", h.HandleMemberSlaps)
	r.Get("/{guildID}/members/{userID}/slaps/count", h.HandleCountMemberSlaps)

	r.With(guardWrites).Post("/{guildID}/slaps", h.HandleNewSlap)
}
