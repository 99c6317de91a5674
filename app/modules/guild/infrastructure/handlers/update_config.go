package guildhandlers

import (
	"encoding/json"
	"net/http"

	guildservice "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/application"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
	"github.com/go-chi/chi/v5"
)

// UpdateSettingRequest is the body of PUT .../settings/{field}. A JSON null
// clears the optional fields.
type UpdateSettingRequest struct {
	Value json.RawMessage `json:"value"`
}

// HandleUpdateSetting writes one config field.
func (h *GuildHandlers) HandleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdateSettingRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if len(req.Value) == 0 {
		h.fail(w, r, httpapi.BadRequest("missing value"))
		return
	}

	ctx := r.Context()
	field := chi.URLParam(r, "field")

	switch field {
	case guildservice.FieldAdminChannel:
		var channel *uint64
		if err := json.Unmarshal(req.Value, &channel); err != nil {
			h.fail(w, r, httpapi.BadRequest("admin_channel must be a channel id or null"))
			return
		}
		var id *sharedtypes.ChannelID
		if channel != nil {
			c := sharedtypes.ChannelID(*channel)
			id = &c
		}
		err = h.service.SetAdminChannel(ctx, guildID, id)
	case guildservice.FieldAdvertise:
		var advertise *bool
		if err := json.Unmarshal(req.Value, &advertise); err != nil || advertise == nil {
			h.fail(w, r, httpapi.BadRequest("advertise must be a boolean"))
			return
		}
		err = h.service.SetAdvertise(ctx, guildID, *advertise)
	case guildservice.FieldWelcomeMessage, guildservice.FieldGoodbyeMessage:
		var message *string
		if err := json.Unmarshal(req.Value, &message); err != nil {
			h.fail(w, r, httpapi.BadRequest("%s must be a string or null", field))
			return
		}
		if field == guildservice.FieldWelcomeMessage {
			err = h.service.SetWelcomeMessage(ctx, guildID, message)
		} else {
			err = h.service.SetGoodbyeMessage(ctx, guildID, message)
		}
	default:
		h.fail(w, r, httpapi.BadRequest("unknown setting %q", field))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
