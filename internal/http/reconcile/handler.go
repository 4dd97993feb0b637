package reconcile

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rjcosta/brickerp/internal/reconcile"
)

type Handler struct {
	svc      *reconcile.Service
	defaults reconcile.Options
}

func NewHandler(svc *reconcile.Service, defaults reconcile.Options) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
}

type runRequest struct {
	ToleranceAmount *int64 `json:"tolerance_amount,omitempty"`
	ToleranceDays   *int   `json:"tolerance_days,omitempty"`
}

type runResponse struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := h.defaults
	if req.ToleranceAmount != nil {
		opts.ToleranceAmount = *req.ToleranceAmount
	}

	if req.ToleranceDays != nil {
		opts.ToleranceDays = *req.ToleranceDays
	}

	result, err := h.svc.Run(r.Context(), opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := runResponse{Matched: result.Matched, Total: result.Total}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
