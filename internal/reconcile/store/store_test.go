package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rjcosta/brickerp/internal/contract"
)

func newTx(t *testing.T) (*reconcileTx, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(reconcileLockKey()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := New(db)
	tx, err := s.Begin(context.Background())
	require.NoError(t, err)

	return tx.(*reconcileTx), mock, func() { db.Close() }
}

func TestStore_Begin_TakesAdvisoryLock(t *testing.T) {
	tx, mock, cleanup := newTx(t)
	defer cleanup()

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_UnpostedCredits(t *testing.T) {
	tx, mock, cleanup := newTx(t)
	defer cleanup()

	id := uuid.New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "date", "amount", "direction", "reference", "bank", "posted",
		"matched_installment_id", "created_at", "updated_at",
	}).AddRow(id.String(), day, int64(65000), "credit", "TRANSF SEPA", "millennium", false, nil, day, nil)

	mock.ExpectQuery("SELECT b.id, b.date, b.amount").WillReturnRows(rows)

	entries, err := tx.UnpostedCredits(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, int64(65000), entries[0].Amount)
	assert.Equal(t, "TRANSF SEPA", entries[0].Reference)
	assert.False(t, entries[0].Posted)
}

func TestTx_PendingInstallments(t *testing.T) {
	tx, mock, cleanup := newTx(t)
	defer cleanup()

	installmentID := uuid.New()
	contractID := uuid.New()
	clientID := uuid.New()
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "contract_id", "sequence", "due_date", "amount", "paid_amount", "status",
		"paid_at", "created_at", "updated_at", "number", "client_id", "name",
	}).AddRow(installmentID.String(), contractID.String(), 3, due, int64(100000), int64(0), "pending",
		nil, due, nil, "CT-2024-001", clientID.String(), "Silva")

	mock.ExpectQuery("SELECT i.id, i.contract_id").WillReturnRows(rows)

	installments, err := tx.PendingInstallments(context.Background())
	require.NoError(t, err)
	require.Len(t, installments, 1)

	in := installments[0]
	assert.Equal(t, installmentID, in.ID)
	assert.Equal(t, contract.StatusPending, in.Status)
	require.NotNil(t, in.Contract)
	assert.Equal(t, "CT-2024-001", in.Contract.Number)
	require.NotNil(t, in.Contract.Client)
	assert.Equal(t, "Silva", in.Contract.Client.Name)
}

func TestTx_SettleAndPost(t *testing.T) {
	tx, mock, cleanup := newTx(t)
	defer cleanup()

	installmentID := uuid.New()
	entryID := uuid.New()
	paidAt := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE installments").
		WithArgs(paidAt, installmentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("UPDATE bank_entries").
		WithArgs(installmentID, entryID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	require.NoError(t, tx.SettleInstallment(context.Background(), installmentID, paidAt))
	require.NoError(t, tx.PostEntry(context.Background(), entryID, installmentID))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
