package audit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/audit"
)

type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID       uuid.UUID      `json:"id"`
	Entity   string         `json:"entity"`
	EntityID uuid.UUID      `json:"entity_id"`
	Action   audit.Action   `json:"action"`
	Metadata map[string]any `json:"metadata,omitempty"`
	At       time.Time      `json:"at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := audit.ListFilter{}

	if s := r.URL.Query().Get("entity"); s != "" {
		filter.Entity = new(s)
	}

	if s := r.URL.Query().Get("entity_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid entity_id", http.StatusBadRequest)
			return
		}

		filter.EntityID = new(id)
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		filter.Limit = limit
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, entryResponse{
			ID:       e.ID,
			Entity:   e.Entity,
			EntityID: e.EntityID,
			Action:   e.Action,
			Metadata: e.Metadata,
			At:       e.At,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
