package contract

import (
	"time"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/contract"
	"github.com/rjcosta/brickerp/internal/ledger"
)

type contractResponse struct {
	ID          uuid.UUID         `json:"id"`
	Number      string            `json:"number"`
	ClientID    uuid.UUID         `json:"client_id"`
	ClientName  string            `json:"client_name,omitempty"`
	UnitID      uuid.UUID         `json:"unit_id"`
	TotalAmount int64             `json:"total_amount"`
	DownPayment int64             `json:"down_payment"`
	Discount    int64             `json:"discount"`
	Remaining   int64             `json:"remaining"`
	MonthCount  int               `json:"month_count"`
	Plan        contract.PlanType `json:"plan"`
	StartDate   time.Time         `json:"start_date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(c *contract.Contract) contractResponse {
	resp := contractResponse{
		ID:          c.ID,
		Number:      c.Number,
		ClientID:    c.ClientID,
		UnitID:      c.UnitID,
		TotalAmount: c.TotalAmount,
		DownPayment: c.DownPayment,
		Discount:    c.Discount,
		Remaining:   c.Remaining(),
		MonthCount:  c.MonthCount,
		Plan:        c.Plan,
		StartDate:   c.StartDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if c.Client != nil {
		resp.ClientName = c.Client.Name
	}

	return resp
}

func toResponseList(contracts []*contract.Contract) []contractResponse {
	resp := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		resp = append(resp, toResponse(c))
	}

	return resp
}

type installmentResponse struct {
	ID         uuid.UUID                 `json:"id"`
	ContractID uuid.UUID                 `json:"contract_id"`
	Sequence   int                       `json:"sequence"`
	DueDate    time.Time                 `json:"due_date"`
	Amount     int64                     `json:"amount"`
	PaidAmount int64                     `json:"paid_amount"`
	Status     contract.InstallmentStatus `json:"status"`
	PaidAt     *time.Time                `json:"paid_at,omitempty"`
}

func toInstallmentResponse(in *contract.Installment) installmentResponse {
	return installmentResponse{
		ID:         in.ID,
		ContractID: in.ContractID,
		Sequence:   in.Sequence,
		DueDate:    in.DueDate,
		Amount:     in.Amount,
		PaidAmount: in.PaidAmount,
		Status:     in.Status,
		PaidAt:     in.PaidAt,
	}
}

func toInstallmentResponseList(installments []*contract.Installment) []installmentResponse {
	resp := make([]installmentResponse, 0, len(installments))
	for _, in := range installments {
		resp = append(resp, toInstallmentResponse(in))
	}

	return resp
}

type ledgerEntryResponse struct {
	ID            uuid.UUID        `json:"id"`
	InstallmentID *uuid.UUID       `json:"installment_id,omitempty"`
	Type          ledger.EntryType `json:"type"`
	Amount        int64            `json:"amount"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type ledgerResponse struct {
	Entries []ledgerEntryResponse `json:"entries"`
	Balance int64                 `json:"balance"`
}

func toLedgerResponse(entries []*ledger.Entry, balance int64) ledgerResponse {
	resp := ledgerResponse{
		Entries: make([]ledgerEntryResponse, 0, len(entries)),
		Balance: balance,
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, ledgerEntryResponse{
			ID:            e.ID,
			InstallmentID: e.InstallmentID,
			Type:          e.Type,
			Amount:        e.Amount,
			Description:   e.Description,
			CreatedAt:     e.CreatedAt,
		})
	}

	return resp
}
