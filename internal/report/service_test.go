package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	outstanding []*OutstandingInstallment
	err         error
}

func (m *mockRepo) OutstandingInstallments(ctx context.Context) ([]*OutstandingInstallment, error) {
	return m.outstanding, m.err
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
}

func TestService_Debtors_AgingBuckets(t *testing.T) {
	contractID := uuid.New()

	repo := &mockRepo{outstanding: []*OutstandingInstallment{
		// Not yet due.
		{ContractID: contractID, ContractNumber: "CT-1", ClientName: "Silva", DueDate: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), Amount: 10000},
		// Due exactly today counts as current.
		{ContractID: contractID, ContractNumber: "CT-1", ClientName: "Silva", DueDate: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), Amount: 20000},
		// 10 days past due.
		{ContractID: contractID, ContractNumber: "CT-1", ClientName: "Silva", DueDate: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), Amount: 30000},
		// 45 days past due.
		{ContractID: contractID, ContractNumber: "CT-1", ClientName: "Silva", DueDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), Amount: 40000},
		// 76 days past due.
		{ContractID: contractID, ContractNumber: "CT-1", ClientName: "Silva", DueDate: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), Amount: 50000},
		// About half a year past due.
		{ContractID: contractID, ContractNumber: "CT-1", ClientName: "Silva", DueDate: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Amount: 60000},
	}}

	svc := NewService(repo)
	svc.now = fixedNow

	rows, err := svc.Debtors(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "CT-1", row.ContractNumber)
	assert.Equal(t, "Silva", row.ClientName)
	assert.Equal(t, int64(210000), row.Outstanding)
	assert.Equal(t, int64(30000), row.Current)
	assert.Equal(t, int64(30000), row.Overdue30)
	assert.Equal(t, int64(40000), row.Overdue60)
	assert.Equal(t, int64(50000), row.Overdue90)
	assert.Equal(t, int64(60000), row.Overdue90Plus)
}

func TestService_Debtors_PartialPaymentReducesRemainder(t *testing.T) {
	contractID := uuid.New()

	repo := &mockRepo{outstanding: []*OutstandingInstallment{
		{ContractID: contractID, ContractNumber: "CT-2", DueDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Amount: 100000, PaidAmount: 60000},
	}}

	svc := NewService(repo)
	svc.now = fixedNow

	rows, err := svc.Debtors(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(40000), rows[0].Outstanding)
	assert.Equal(t, int64(40000), rows[0].Overdue30)
}

func TestService_Debtors_SortedByOutstandingDesc(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	repo := &mockRepo{outstanding: []*OutstandingInstallment{
		{ContractID: a, ContractNumber: "CT-A", DueDate: fixedNow(), Amount: 10000},
		{ContractID: b, ContractNumber: "CT-B", DueDate: fixedNow(), Amount: 90000},
	}}

	svc := NewService(repo)
	svc.now = fixedNow

	rows, err := svc.Debtors(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CT-B", rows[0].ContractNumber)
	assert.Equal(t, "CT-A", rows[1].ContractNumber)
}

func TestService_Debtors_SkipsSettledRows(t *testing.T) {
	repo := &mockRepo{outstanding: []*OutstandingInstallment{
		{ContractID: uuid.New(), DueDate: fixedNow(), Amount: 50000, PaidAmount: 50000},
	}}

	svc := NewService(repo)
	svc.now = fixedNow

	rows, err := svc.Debtors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestService_Debtors_RepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("db error")}

	svc := NewService(repo)

	_, err := svc.Debtors(context.Background())
	assert.Error(t, err)
}
