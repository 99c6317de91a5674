package guildhandlers

import (
	"net/http"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
)

// CreateGuildConfigRequest is the body of POST /api/guilds.
type CreateGuildConfigRequest struct {
	GuildID        sharedtypes.GuildID `json:"guild_id"`
	Advertise      bool                `json:"advertise"`
	WelcomeMessage *string             `json:"welcome_message"`
	GoodbyeMessage *string             `json:"goodbye_message"`
}

// HandleCreateGuildConfig creates a config. A second create for the same
// guild answers 409 and leaves the first config untouched.
func (h *GuildHandlers) HandleCreateGuildConfig(w http.ResponseWriter, r *http.Request) {
	var req CreateGuildConfigRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	config, err := h.service.CreateGuildConfig(r.Context(), guilddomain.NewGuildConfig{
		GuildID:        req.GuildID,
		Advertise:      req.Advertise,
		WelcomeMessage: req.WelcomeMessage,
		GoodbyeMessage: req.GoodbyeMessage,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, config)
}

// HandleListGuildIDs lists every configured guild.
func (h *GuildHandlers) HandleListGuildIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.ListGuildIDs(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, ids)
}
