package guildhandlers

import (
	"net/http"

	guildservice "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/application"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
	"github.com/go-chi/chi/v5"
)

// SettingResponse carries one config field. A null value means unset.
type SettingResponse struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// HandleGetGuildConfig returns the full config including role privileges.
func (h *GuildHandlers) HandleGetGuildConfig(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	config, err := h.service.GetGuildConfig(r.Context(), guildID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, config)
}

// HandleGuildExists reports whether the guild has a config.
func (h *GuildHandlers) HandleGuildExists(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	exists, err := h.service.Exists(r.Context(), guildID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}

// HandleGetSetting returns one config field.
func (h *GuildHandlers) HandleGetSetting(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx := r.Context()
	field := chi.URLParam(r, "field")

	var value any
	switch field {
	case guildservice.FieldAdminChannel:
		value, err = h.service.GetAdminChannel(ctx, guildID)
	case guildservice.FieldAdvertise:
		value, err = h.service.GetAdvertise(ctx, guildID)
	case guildservice.FieldWelcomeMessage:
		value, err = h.service.GetWelcomeMessage(ctx, guildID)
	case guildservice.FieldGoodbyeMessage:
		value, err = h.service.GetGoodbyeMessage(ctx, guildID)
	default:
		h.fail(w, r, httpapi.BadRequest("unknown setting %q", field))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, SettingResponse{Field: field, Value: value})
}
