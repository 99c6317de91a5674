// Package httpapi holds the HTTP plumbing shared by module handlers.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/go-chi/chi/v5"
)

// DefaultLimit is used when a list request carries no limit.
const DefaultLimit uint64 = 25

// maxBodyBytes bounds request bodies. Messages are at most 2000 runes.
const maxBodyBytes = 64 << 10

// ErrBadRequest marks malformed input: unparsable IDs, bodies or query values.
var ErrBadRequest = errors.New("bad request")

// BadRequest wraps a parse failure so it maps to 400.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// StatusFor maps the shared error kinds. Modules check their own errors
// first and fall back to this.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, apperrors.ErrLimitOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError logs err and writes it with status. Server errors hide
// their cause from the client.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, err error) {
	ctx := r.Context()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "Request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("method", r.Method),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		WriteError(w, status, http.StatusText(status))
		return
	}

	logger.WarnContext(ctx, "Request rejected",
		attr.ExtractCorrelationID(ctx),
		attr.String("method", r.Method),
		attr.String("path", r.URL.Path),
		attr.Int("status", status),
		attr.Error(err),
	)
	WriteError(w, status, err.Error())
}

// DecodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return BadRequest("invalid request body: %v", err)
	}
	return nil
}

// ParseLimit reads the limit query parameter. A value too large for uint64
// is reported as apperrors.ErrLimitOutOfRange, like any limit the store
// cannot take.
func ParseLimit(r *http.Request) (uint64, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, nil
	}
	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, apperrors.ErrLimitOutOfRange
		}
		return 0, BadRequest("invalid limit %q", raw)
	}
	return limit, nil
}

// GuildIDParam parses the {guildID} route parameter.
func GuildIDParam(r *http.Request) (sharedtypes.GuildID, error) {
	raw := chi.URLParam(r, "guildID")
	id, err := sharedtypes.ParseGuildID(raw)
	if err != nil {
		return 0, BadRequest("invalid guild id %q", raw)
	}
	return id, nil
}

// RoleIDParam parses the {roleID} route parameter.
func RoleIDParam(r *http.Request) (sharedtypes.RoleID, error) {
	raw := chi.URLParam(r, "roleID")
	id, err := sharedtypes.ParseRoleID(raw)
	if err != nil {
		return 0, BadRequest("invalid role id %q", raw)
	}
	return id, nil
}

// UserIDParam parses the {userID} route parameter.
func UserIDParam(r *http.Request) (sharedtypes.UserID, error) {
	raw := chi.URLParam(r, "userID")
	id, err := sharedtypes.ParseUserID(raw)
	if err != nil {
		return 0, BadRequest("invalid user id %q", raw)
	}
	return id, nil
}
