package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
)

type EligibilityEvaluator interface {
	Execute(ctx context.Context, req dto.EvaluateEligibilityRequest) (dto.EligibilityResponse, error)
}

type ScheduleGenerator interface {
	Execute(ctx context.Context, req dto.ScheduleRequest) (dto.ScheduleResponse, error)
}

type OfferLister interface {
	Execute(ctx context.Context, req dto.ListOffersRequest) (dto.ListOffersResponse, error)
}

type Authenticator interface {
	Execute(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

// Handler serves the SmartLoan JSON API.
type Handler struct {
	evaluate EligibilityEvaluator
	schedule ScheduleGenerator
	offers   OfferLister
	login    Authenticator
	logger   *slog.Logger
}

func NewHandler(
	evaluate EligibilityEvaluator,
	schedule ScheduleGenerator,
	offers OfferLister,
	login Authenticator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		evaluate: evaluate,
		schedule: schedule,
		offers:   offers,
		login:    login,
		logger:   logger,
	}
}

// RegisterRoutes attaches the API routes. Everything except login goes
// through protect.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/v1/login", h.handleLogin)
	mux.Handle("POST /api/v1/eligibility", protect(http.HandlerFunc(h.handleEvaluate)))
	mux.Handle("POST /api/v1/schedule", protect(http.HandlerFunc(h.handleSchedule)))
	mux.Handle("GET /api/v1/offers", protect(http.HandlerFunc(h.handleListOffers)))
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateEligibilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.evaluate.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.schedule.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListOffers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.offers.Execute(r.Context(), dto.ListOffersRequest{
		LoanType: r.URL.Query().Get("loan_type"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.login.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
