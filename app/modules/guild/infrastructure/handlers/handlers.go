package guildhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	guildservice "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/application"
	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
)

// GuildHandlers serves the guild configuration and authorization routes.
type GuildHandlers struct {
	service guildservice.Service
	logger  *slog.Logger
}

// NewGuildHandlers creates a new GuildHandlers instance.
func NewGuildHandlers(service guildservice.Service, logger *slog.Logger) *GuildHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuildHandlers{
		service: service,
		logger:  logger,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, guildservice.ErrGuildConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, guildservice.ErrGuildConfigAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, guilddomain.ErrUnrecognizedPrivilege),
		errors.Is(err, guildservice.ErrInvalidMessage):
		return http.StatusBadRequest
	default:
		return httpapi.StatusFor(err)
	}
}

func (h *GuildHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpapi.RespondError(w, r, h.logger, statusFor(err), err)
}

// ExistsResponse answers the existence probe.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// AuthorizedResponse answers the privilege checks.
type AuthorizedResponse struct {
	Authorized bool `json:"authorized"`
}
