package backup

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rjcosta/brickerp/internal/backup"
)

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
}

type runResponse struct {
	Path string `json:"path"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(runResponse{Path: path}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
