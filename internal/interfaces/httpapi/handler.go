package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/teamsync/internal/domain/user"
	"github.com/riskibarqy/teamsync/internal/platform/logging"
	"github.com/riskibarqy/teamsync/internal/usecase"
)

const maxRequestBodyBytes = 1 << 16

type Handler struct {
	fixtureService *usecase.FixtureService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(fixtureService *usecase.FixtureService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		fixtureService: fixtureService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) FixtureAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixtureAll")
	defer span.End()

	items, err := h.fixtureService.All(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) FixtureByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixtureByID")
	defer span.End()

	fixtureID := strings.TrimSpace(r.URL.Query().Get("id"))
	item, ok, err := h.fixtureService.GetByID(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) FixtureUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixtureUpcoming")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	upcoming, err := h.fixtureService.Upcoming(ctx, principal.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "upcoming fixture failed", "email", principal.Email, "error", err)
		writeError(ctx, w, err)
		return
	}
	if upcoming == nil {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, upcomingToDTO(*upcoming))
}

func (h *Handler) FixtureRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixtureRecent")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	count, err := parseCount(r.URL.Query().Get("count"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.fixtureService.Recent(ctx, principal.Email, count)
	if err != nil {
		h.logger.WarnContext(ctx, "recent fixtures failed", "email", principal.Email, "count", count, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]recentFixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, recentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) FixtureDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixtureDetails")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detailID := strings.TrimSpace(r.URL.Query().Get("fixtureDetailsId"))
	details, err := h.fixtureService.Details(ctx, principal.Email, detailID)
	if err != nil {
		h.logger.WarnContext(ctx, "fixture details failed", "fixture_details_id", detailID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if details == nil {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detailsToDTO(*details))
}

func (h *Handler) FixtureRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixtureRoster")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detailID := strings.TrimSpace(r.URL.Query().Get("fixtureDetailsId"))
	entries, err := h.fixtureService.Roster(ctx, principal.Email, detailID)
	if err != nil {
		h.logger.WarnContext(ctx, "fixture roster failed", "fixture_details_id", detailID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rosterEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, rosterEntryDTO{
			MemberID:     entry.MemberID,
			UserID:       entry.UserID,
			PlayerName:   entry.PlayerName,
			Availability: entry.Availability.String(),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAvailability")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setAvailabilityRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.fixtureService.SetAvailability(ctx, principal.Email, usecase.SetAvailabilityInput{
		FixtureDetailsID: req.FixtureDetailsID,
		Availability:     req.Availability,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set availability failed",
			"email", principal.Email,
			"fixture_details_id", req.FixtureDetailsID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.Email) == "" {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// parseCount accepts only base-10 integers; range checks live in the service.
func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: count is required", usecase.ErrInvalidInput)
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: count must be an integer", usecase.ErrInvalidInput)
	}
	return count, nil
}
