package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/contract"
	"github.com/rjcosta/brickerp/internal/reconcile"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func credit(amount int64, on time.Time) *bankimport.Entry {
	return &bankimport.Entry{
		ID:        uuid.New(),
		Date:      on,
		Amount:    amount,
		Direction: bankimport.DirectionCredit,
	}
}

func pending(amount int64, due time.Time) *contract.Installment {
	return &contract.Installment{
		ID:         uuid.New(),
		ContractID: uuid.New(),
		Amount:     amount,
		DueDate:    due,
		Status:     contract.StatusPending,
	}
}

func setup(t *testing.T, credits []*bankimport.Entry, installments []*contract.Installment) (*reconcile.Service, *reconcile.MockTx) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := reconcile.NewMockRepository(ctrl)
	tx := reconcile.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().UnpostedCredits(gomock.Any()).Return(credits, nil)
	tx.EXPECT().PendingInstallments(gomock.Any()).Return(installments, nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	return reconcile.NewService(repo), tx
}

func TestService_Run_ExactMatch(t *testing.T) {
	due := date(2024, time.March, 15)
	in := pending(100000, due)
	cr := credit(100000, due)

	svc, tx := setup(t, []*bankimport.Entry{cr}, []*contract.Installment{in})

	tx.EXPECT().SettleInstallment(gomock.Any(), in.ID, cr.Date).Return(nil)
	tx.EXPECT().PostEntry(gomock.Any(), cr.ID, in.ID).Return(nil)
	tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Total)
}

func TestService_Run_WithinTolerances(t *testing.T) {
	due := date(2024, time.March, 15)

	// 4.99 short, 7 days late: both inside the default tolerances.
	in := pending(100000, due)
	cr := credit(99501, due.AddDate(0, 0, 7))

	svc, tx := setup(t, []*bankimport.Entry{cr}, []*contract.Installment{in})

	tx.EXPECT().SettleInstallment(gomock.Any(), in.ID, cr.Date).Return(nil)
	tx.EXPECT().PostEntry(gomock.Any(), cr.ID, in.ID).Return(nil)
	tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
}

func TestService_Run_AmountOutsideTolerance(t *testing.T) {
	due := date(2024, time.March, 15)

	in := pending(100000, due)
	cr := credit(100501, due) // 5.01 over

	svc, _ := setup(t, []*bankimport.Entry{cr}, []*contract.Installment{in})

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Matched)
	assert.Equal(t, 1, result.Total)
}

func TestService_Run_DateOutsideTolerance(t *testing.T) {
	due := date(2024, time.March, 15)

	in := pending(100000, due)
	cr := credit(100000, due.AddDate(0, 0, 8))

	svc, _ := setup(t, []*bankimport.Entry{cr}, []*contract.Installment{in})

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Matched)
}

func TestService_Run_EarliestDueWins(t *testing.T) {
	first := pending(100000, date(2024, time.March, 10))
	second := pending(100000, date(2024, time.March, 12))
	cr := credit(100000, date(2024, time.March, 11))

	svc, tx := setup(t, []*bankimport.Entry{cr}, []*contract.Installment{first, second})

	tx.EXPECT().SettleInstallment(gomock.Any(), first.ID, cr.Date).Return(nil)
	tx.EXPECT().PostEntry(gomock.Any(), cr.ID, first.ID).Return(nil)
	tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
}

func TestService_Run_NoDoubleMatch(t *testing.T) {
	due := date(2024, time.March, 15)
	in := pending(100000, due)

	crA := credit(100000, due)
	crB := credit(100000, due)

	svc, tx := setup(t, []*bankimport.Entry{crA, crB}, []*contract.Installment{in})

	// Only the first credit settles; the second finds the pool empty.
	tx.EXPECT().SettleInstallment(gomock.Any(), in.ID, crA.Date).Return(nil)
	tx.EXPECT().PostEntry(gomock.Any(), crA.ID, in.ID).Return(nil)
	tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 2, result.Total)
}

func TestService_Run_CustomTolerances(t *testing.T) {
	due := date(2024, time.March, 15)

	in := pending(100000, due)
	cr := credit(98000, due.AddDate(0, 0, 20)) // 20.00 under, 20 days late

	svc, tx := setup(t, []*bankimport.Entry{cr}, []*contract.Installment{in})

	tx.EXPECT().SettleInstallment(gomock.Any(), in.ID, cr.Date).Return(nil)
	tx.EXPECT().PostEntry(gomock.Any(), cr.ID, in.ID).Return(nil)
	tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Run(context.Background(), reconcile.Options{
		ToleranceAmount: 2500,
		ToleranceDays:   30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
}

func TestService_Run_Empty(t *testing.T) {
	svc, _ := setup(t, nil, nil)

	result, err := svc.Run(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Matched)
	assert.Zero(t, result.Total)
}
