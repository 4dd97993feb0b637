package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/debtors", h.debtors)
}

type debtorRowResponse struct {
	ContractID     uuid.UUID `json:"contract_id"`
	ContractNumber string    `json:"contract_number"`
	ClientName     string    `json:"client_name"`
	Outstanding    int64     `json:"outstanding"`
	Current        int64     `json:"current"`
	Overdue30      int64     `json:"overdue_30"`
	Overdue60      int64     `json:"overdue_60"`
	Overdue90      int64     `json:"overdue_90"`
	Overdue90Plus  int64     `json:"overdue_90_plus"`
}

func (h *Handler) debtors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Debtors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]debtorRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, debtorRowResponse{
			ContractID:     row.ContractID,
			ContractNumber: row.ContractNumber,
			ClientName:     row.ClientName,
			Outstanding:    row.Outstanding,
			Current:        row.Current,
			Overdue30:      row.Overdue30,
			Overdue60:      row.Overdue60,
			Overdue90:      row.Overdue90,
			Overdue90Plus:  row.Overdue90Plus,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
