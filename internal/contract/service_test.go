package contract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rjcosta/brickerp/internal/contract"
	"github.com/rjcosta/brickerp/internal/ledger"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    contract.CreateParams
		setupMock func(m *contract.MockRepository)
		wantErr   bool
	}

	valid := contract.CreateParams{
		Number:      "CT-2024-001",
		ClientID:    uuid.New(),
		UnitID:      uuid.New(),
		TotalAmount: 10000000,
		DownPayment: 1000000,
		MonthCount:  24,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.April, 1),
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					CreateContract(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *contract.Contract) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroTotal",
			params: func() contract.CreateParams {
				p := valid
				p.TotalAmount = 0
				return p
			}(),
			wantErr: true,
		},
		{
			name: "NegativeDiscount",
			params: func() contract.CreateParams {
				p := valid
				p.Discount = -1
				return p
			}(),
			wantErr: true,
		},
		{
			name: "DeductionsExceedTotal",
			params: func() contract.CreateParams {
				p := valid
				p.DownPayment = 9000000
				p.Discount = 2000000
				return p
			}(),
			wantErr: true,
		},
		{
			name: "ZeroMonthCount",
			params: func() contract.CreateParams {
				p := valid
				p.MonthCount = 0
				return p
			}(),
			wantErr: true,
		},
		{
			name: "UnknownPlan",
			params: func() contract.CreateParams {
				p := valid
				p.Plan = "weekly"
				return p
			}(),
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: valid,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					CreateContract(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := contract.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.params.Number, got.Number)
		})
	}
}

func TestService_GenerateInstallments(t *testing.T) {
	contractID := uuid.New()

	c := &contract.Contract{
		ID:          contractID,
		Number:      "CT-2024-002",
		TotalAmount: 12000000,
		DownPayment: 2000000,
		MonthCount:  10,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.January, 15),
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockScheduleTx(ctrl)

		repo.EXPECT().BeginSchedule(gomock.Any(), contractID).Return(tx, nil)
		tx.EXPECT().Contract(gomock.Any()).Return(c, nil)
		tx.EXPECT().InstallmentCount(gomock.Any()).Return(0, nil)
		tx.EXPECT().CreateInstallments(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		installments, err := svc.GenerateInstallments(context.Background(), contractID)
		require.NoError(t, err)
		require.Len(t, installments, 10)

		var sum int64
		for _, in := range installments {
			sum += in.Amount
		}
		assert.Equal(t, c.Remaining(), sum)
	})

	t.Run("AlreadyGenerated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockScheduleTx(ctrl)

		repo.EXPECT().BeginSchedule(gomock.Any(), contractID).Return(tx, nil)
		tx.EXPECT().Contract(gomock.Any()).Return(c, nil)
		tx.EXPECT().InstallmentCount(gomock.Any()).Return(10, nil)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		_, err := svc.GenerateInstallments(context.Background(), contractID)
		assert.ErrorIs(t, err, contract.ErrAlreadyGenerated)
	})

	t.Run("ContractNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockScheduleTx(ctrl)

		repo.EXPECT().BeginSchedule(gomock.Any(), contractID).Return(tx, nil)
		tx.EXPECT().Contract(gomock.Any()).Return(nil, contract.ErrNotFound)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		_, err := svc.GenerateInstallments(context.Background(), contractID)
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})
}

func TestService_RecordPayment(t *testing.T) {
	contractID := uuid.New()
	installmentID := uuid.New()
	paidAt := date(2024, time.March, 14)

	newInstallment := func() *contract.Installment {
		return &contract.Installment{
			ID:         installmentID,
			ContractID: contractID,
			Sequence:   3,
			DueDate:    date(2024, time.March, 15),
			Amount:     100000,
			Status:     contract.StatusPending,
		}
	}

	t.Run("FullPayment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockPaymentTx(ctrl)

		repo.EXPECT().BeginPayment(gomock.Any(), installmentID).Return(tx, nil)
		tx.EXPECT().Installment(gomock.Any()).Return(newInstallment(), nil)
		tx.EXPECT().UpdateInstallment(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().
			CreateLedgerEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
				assert.Equal(t, ledger.EntryPayment, e.Type)
				assert.Equal(t, int64(-100000), e.Amount)
				return nil
			})
		tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		in, err := svc.RecordPayment(context.Background(), contract.PaymentParams{
			ContractID:    contractID,
			InstallmentID: installmentID,
			Amount:        100000,
			PaidAt:        paidAt,
		})
		require.NoError(t, err)
		assert.Equal(t, contract.StatusPaid, in.Status)
		require.NotNil(t, in.PaidAt)
		assert.Equal(t, paidAt, *in.PaidAt)
	})

	t.Run("PartialPayment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockPaymentTx(ctrl)

		repo.EXPECT().BeginPayment(gomock.Any(), installmentID).Return(tx, nil)
		tx.EXPECT().Installment(gomock.Any()).Return(newInstallment(), nil)
		tx.EXPECT().UpdateInstallment(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().CreateLedgerEntry(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		in, err := svc.RecordPayment(context.Background(), contract.PaymentParams{
			ContractID:    contractID,
			InstallmentID: installmentID,
			Amount:        40000,
			PaidAt:        paidAt,
		})
		require.NoError(t, err)
		assert.Equal(t, contract.StatusPartial, in.Status)
		assert.Equal(t, int64(40000), in.PaidAmount)
		assert.Nil(t, in.PaidAt)
	})

	t.Run("WrongContract", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockPaymentTx(ctrl)

		repo.EXPECT().BeginPayment(gomock.Any(), installmentID).Return(tx, nil)
		tx.EXPECT().Installment(gomock.Any()).Return(newInstallment(), nil)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		_, err := svc.RecordPayment(context.Background(), contract.PaymentParams{
			ContractID:    uuid.New(),
			InstallmentID: installmentID,
			Amount:        100000,
			PaidAt:        paidAt,
		})
		assert.ErrorIs(t, err, contract.ErrInstallmentNotFound)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		tx := contract.NewMockPaymentTx(ctrl)

		paid := newInstallment()
		paid.Status = contract.StatusPaid
		paid.PaidAmount = paid.Amount

		repo.EXPECT().BeginPayment(gomock.Any(), installmentID).Return(tx, nil)
		tx.EXPECT().Installment(gomock.Any()).Return(paid, nil)
		tx.EXPECT().Rollback().Return(nil)

		svc := contract.NewService(repo)
		_, err := svc.RecordPayment(context.Background(), contract.PaymentParams{
			ContractID:    contractID,
			InstallmentID: installmentID,
			Amount:        100000,
			PaidAt:        paidAt,
		})
		assert.ErrorIs(t, err, contract.ErrInstallmentPaid)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := contract.NewMockRepository(ctrl)
		svc := contract.NewService(repo)

		_, err := svc.RecordPayment(context.Background(), contract.PaymentParams{
			ContractID:    contractID,
			InstallmentID: installmentID,
			Amount:        0,
			PaidAt:        paidAt,
		})
		assert.Error(t, err)
	})
}
