package slaphandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	slapservice "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/application"
	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pngContentType  = "image/png"
)

// SlapHandlers serves the ledger routes.
type SlapHandlers struct {
	service slapservice.Service
	logger  *slog.Logger
}

// NewSlapHandlers creates a new SlapHandlers instance.
func NewSlapHandlers(service slapservice.Service, logger *slog.Logger) *SlapHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlapHandlers{service: service, logger: logger}
}

func statusFor(err error) int {
	if errors.Is(err, slapservice.ErrInvalidReason) {
		return http.StatusBadRequest
	}
	return httpapi.StatusFor(err)
}

func (h *SlapHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpapi.RespondError(w, r, h.logger, statusFor(err), err)
}

// CountResponse carries a ledger length.
type CountResponse struct {
	Count uint64 `json:"count"`
}

// NewSlapRequest is the body of POST .../slaps. The guild comes from the path.
type NewSlapRequest struct {
	Sentence uint64              `json:"sentence"`
	Offender sharedtypes.UserID  `json:"offender"`
	Enforcer *sharedtypes.UserID `json:"enforcer"`
	Reason   *string             `json:"reason"`
}

// HandleNewSlap appends a ledger entry.
func (h *SlapHandlers) HandleNewSlap(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req NewSlapRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	slap, err := h.service.NewSlap(r.Context(), slapdomain.NewSlap{
		GuildID:  guildID,
		Sentence: req.Sentence,
		Offender: req.Offender,
		Enforcer: req.Enforcer,
		Reason:   req.Reason,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, slap)
}

// HandleCountGuildSlaps returns the guild ledger length.
func (h *SlapHandlers) HandleCountGuildSlaps(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.service.CountGuildSlaps(r.Context(), guildID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, CountResponse{Count: n})
}

// HandleGuildSlaps returns the first ?limit= entries of the guild ledger.
func (h *SlapHandlers) HandleGuildSlaps(w http.ResponseWriter, r *http.Request) {
	guildID, limit, err := guildAndLimit(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	slaps, err := h.service.GuildSlaps(r.Context(), guildID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, slaps)
}

// HandleOffenders returns the offender of each of the first ?limit= entries.
func (h *SlapHandlers) HandleOffenders(w http.ResponseWriter, r *http.Request) {
	guildID, limit, err := guildAndLimit(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	offenders, err := h.service.Offenders(r.Context(), guildID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, offenders)
}

// HandleCountMemberSlaps returns one member's ledger length.
func (h *SlapHandlers) HandleCountMemberSlaps(w http.ResponseWriter, r *http.Request) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	member, err := httpapi.UserIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.service.CountMemberSlaps(r.Context(), guildID, member)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, CountResponse{Count: n})
}

// HandleMemberSlaps returns the first ?limit= entries against one member.
func (h *SlapHandlers) HandleMemberSlaps(w http.ResponseWriter, r *http.Request) {
	guildID, limit, err := guildAndLimit(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	member, err := httpapi.UserIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	slaps, err := h.service.MemberSlaps(r.Context(), guildID, member, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, slaps)
}

// HandleExportGuildSlaps streams the first ?limit= entries as a workbook.
func (h *SlapHandlers) HandleExportGuildSlaps(w http.ResponseWriter, r *http.Request) {
	guildID, limit, err := guildAndLimit(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data, err := h.service.ExportGuildSlaps(r.Context(), guildID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="slaps-`+guildID.String()+`.xlsx"`)
	writeBytes(w, xlsxContentType, data)
}

// HandleOffenderChart renders the offender tally of the first ?limit= entries.
func (h *SlapHandlers) HandleOffenderChart(w http.ResponseWriter, r *http.Request) {
	guildID, limit, err := guildAndLimit(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data, err := h.service.OffenderChart(r.Context(), guildID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeBytes(w, pngContentType, data)
}

func guildAndLimit(r *http.Request) (sharedtypes.GuildID, uint64, error) {
	guildID, err := httpapi.GuildIDParam(r)
	if err != nil {
		return 0, 0, err
	}
	limit, err := httpapi.ParseLimit(r)
	if err != nil {
		return 0, 0, err
	}
	return guildID, limit, nil
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
