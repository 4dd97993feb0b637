package bankimport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/importer"
)

type Handler struct {
	svc       *bankimport.Service
	importSvc *importer.Service
}

func NewHandler(svc *bankimport.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/import", h.importCSV)
}

type createEntryRequest struct {
	Date      time.Time            `json:"date"`
	Amount    int64                `json:"amount"`
	Direction bankimport.Direction `json:"direction"`
	Reference string               `json:"reference"`
	Bank      string               `json:"bank"`
}

type entryResponse struct {
	ID                   uuid.UUID            `json:"id"`
	Date                 time.Time            `json:"date"`
	Amount               int64                `json:"amount"`
	Direction            bankimport.Direction `json:"direction"`
	Reference            string               `json:"reference"`
	Bank                 string               `json:"bank,omitempty"`
	Posted               bool                 `json:"posted"`
	MatchedInstallmentID *uuid.UUID           `json:"matched_installment_id,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}

func toResponse(e *bankimport.Entry) entryResponse {
	return entryResponse{
		ID:                   e.ID,
		Date:                 e.Date,
		Amount:               e.Amount,
		Direction:            e.Direction,
		Reference:            e.Reference,
		Bank:                 e.Bank,
		Posted:               e.Posted,
		MatchedInstallmentID: e.MatchedInstallmentID,
		CreatedAt:            e.CreatedAt,
	}
}

func toResponseList(entries []*bankimport.Entry) []entryResponse {
	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toResponse(e))
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), bankimport.CreateParams{
		Date:      req.Date,
		Amount:    req.Amount,
		Direction: req.Direction,
		Reference: req.Reference,
		Bank:      req.Bank,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := bankimport.ListFilter{}

	if s := r.URL.Query().Get("posted"); s != "" {
		filter.Posted = new(s == "true")
	}

	if s := r.URL.Query().Get("direction"); s != "" {
		d := bankimport.Direction(s)
		filter.Direction = new(d)
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		filter.StartDate = new(t)
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		filter.EndDate = new(t)
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "bank entry not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type importResponse struct {
	Imported   int             `json:"imported"`
	Duplicates int             `json:"duplicates"`
	Entries    []entryResponse `json:"entries"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.ImportBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importResponse{
		Imported:   len(result.Imported),
		Duplicates: len(result.Duplicates),
		Entries:    toResponseList(result.Imported),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
