package contract

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/audit"
	"github.com/rjcosta/brickerp/internal/contract"
	"github.com/rjcosta/brickerp/internal/ledger"
	"github.com/rjcosta/brickerp/internal/project"
)

type Handler struct {
	svc        *contract.Service
	ledgerSvc  *ledger.Service
	auditSvc   *audit.Service
	projectSvc *project.Service
}

func NewHandler(svc *contract.Service, ledgerSvc *ledger.Service, auditSvc *audit.Service, projectSvc *project.Service) *Handler {
	return &Handler{
		svc:        svc,
		ledgerSvc:  ledgerSvc,
		auditSvc:   auditSvc,
		projectSvc: projectSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/installments", h.generateInstallments)
	r.Get("/{id}/installments", h.listInstallments)
	r.Post("/{id}/payments", h.recordPayment)
	r.Get("/{id}/ledger", h.listLedger)
}

type createContractRequest struct {
	Number      string            `json:"number"`
	ClientID    uuid.UUID         `json:"client_id"`
	UnitID      uuid.UUID         `json:"unit_id"`
	TotalAmount int64             `json:"total_amount"`
	DownPayment int64             `json:"down_payment"`
	Discount    int64             `json:"discount"`
	MonthCount  int               `json:"month_count"`
	Plan        contract.PlanType `json:"plan"`
	StartDate   time.Time         `json:"start_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), contract.CreateParams{
		Number:      req.Number,
		ClientID:    req.ClientID,
		UnitID:      req.UnitID,
		TotalAmount: req.TotalAmount,
		DownPayment: req.DownPayment,
		Discount:    req.Discount,
		MonthCount:  req.MonthCount,
		Plan:        req.Plan,
		StartDate:   req.StartDate,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Companion records; the contract itself is already committed.
	_, err = h.ledgerSvc.Post(r.Context(), ledger.CreateParams{
		ContractID:  c.ID,
		Type:        ledger.EntryInitial,
		Amount:      c.Remaining(),
		Description: "contract " + c.Number,
	})
	if err != nil {
		slog.Error("failed to post initial ledger entry", "contract", c.ID, "error", err)
	}

	if err := h.projectSvc.MarkUnitReserved(r.Context(), c.UnitID); err != nil {
		slog.Error("failed to reserve unit", "unit", c.UnitID, "error", err)
	}

	err = h.auditSvc.Record(r.Context(), "contract", c.ID, audit.ActionCreated, map[string]any{
		"number": c.Number,
		"total":  c.TotalAmount,
	})
	if err != nil {
		slog.Error("failed to record audit entry", "contract", c.ID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := contract.ListFilter{}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = new(id)
	}

	if s := r.URL.Query().Get("unit_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid unit_id", http.StatusBadRequest)
			return
		}

		filter.UnitID = new(id)
	}

	contracts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(contracts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateContractRequest struct {
	Number      *string            `json:"number,omitempty"`
	TotalAmount *int64             `json:"total_amount,omitempty"`
	DownPayment *int64             `json:"down_payment,omitempty"`
	Discount    *int64             `json:"discount,omitempty"`
	MonthCount  *int               `json:"month_count,omitempty"`
	Plan        *contract.PlanType `json:"plan,omitempty"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	// Financial terms are frozen once a schedule exists.
	installments, err := h.svc.ListInstallments(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if len(installments) > 0 {
		http.Error(w, "contract has generated installments", http.StatusConflict)
		return
	}

	if req.Number != nil {
		c.Number = *req.Number
	}

	if req.TotalAmount != nil {
		c.TotalAmount = *req.TotalAmount
	}

	if req.DownPayment != nil {
		c.DownPayment = *req.DownPayment
	}

	if req.Discount != nil {
		c.Discount = *req.Discount
	}

	if req.MonthCount != nil {
		c.MonthCount = *req.MonthCount
	}

	if req.Plan != nil {
		c.Plan = *req.Plan
	}

	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	err = h.auditSvc.Record(r.Context(), "contract", id, audit.ActionDeleted, nil)
	if err != nil {
		slog.Error("failed to record audit entry", "contract", id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) generateInstallments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	installments, err := h.svc.GenerateInstallments(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrNotFound):
			http.Error(w, "contract not found", http.StatusNotFound)
		case errors.Is(err, contract.ErrAlreadyGenerated):
			http.Error(w, "installments already generated", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toInstallmentResponseList(installments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listInstallments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	installments, err := h.svc.ListInstallments(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInstallmentResponseList(installments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recordPaymentRequest struct {
	InstallmentID uuid.UUID `json:"installment_id"`
	Amount        int64     `json:"amount"`
	PaidAt        time.Time `json:"paid_at"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PaidAt.IsZero() {
		req.PaidAt = time.Now()
	}

	in, err := h.svc.RecordPayment(r.Context(), contract.PaymentParams{
		ContractID:    contractID,
		InstallmentID: req.InstallmentID,
		Amount:        req.Amount,
		PaidAt:        req.PaidAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrInstallmentNotFound):
			http.Error(w, "installment not found", http.StatusNotFound)
		case errors.Is(err, contract.ErrInstallmentPaid):
			http.Error(w, "installment already paid", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInstallmentResponse(in)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listLedger(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entries, err := h.ledgerSvc.List(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	balance, err := h.ledgerSvc.Balance(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toLedgerResponse(entries, balance)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
