package bankimport_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rjcosta/brickerp/internal/bankimport"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    bankimport.CreateParams
		setupMock func(m *bankimport.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: bankimport.CreateParams{
				Date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
				Amount:    100000,
				Direction: bankimport.DirectionCredit,
				Reference: "TRANSF SEPA JOAO SILVA",
				Bank:      "millennium",
			},
			setupMock: func(m *bankimport.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *bankimport.Entry) error {
						e.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			params: bankimport.CreateParams{
				Amount:    0,
				Direction: bankimport.DirectionCredit,
			},
			wantErr: true,
		},
		{
			name: "UnknownDirection",
			params: bankimport.CreateParams{
				Amount:    100,
				Direction: "sideways",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := bankimport.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := bankimport.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_ImportBatch_NoDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bankimport.NewMockRepository(ctrl)
	itx := bankimport.NewMockImportTx(ctrl)
	svc := bankimport.NewService(repo)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []bankimport.CreateParams{
		{
			Date:      day,
			Amount:    50000,
			Direction: bankimport.DirectionCredit,
			Reference: "TRANSF A",
			Bank:      "millennium",
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), day, day).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateEntries(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Empty(t, result.Duplicates)
}

func TestService_ImportBatch_SkipsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bankimport.NewMockRepository(ctrl)
	itx := bankimport.NewMockImportTx(ctrl)
	svc := bankimport.NewService(repo)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []bankimport.CreateParams{
		{Date: day, Amount: 50000, Direction: bankimport.DirectionCredit, Reference: "TRANSF A"},
		{Date: day, Amount: 70000, Direction: bankimport.DirectionCredit, Reference: "TRANSF B"},
	}

	existing := &bankimport.Entry{
		ID:        uuid.New(),
		Date:      day,
		Amount:    50000,
		Direction: bankimport.DirectionCredit,
		Reference: "TRANSF A",
	}

	repo.EXPECT().BeginImport(gomock.Any(), day, day).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*bankimport.Entry{existing}, nil)
	itx.EXPECT().
		CreateEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []*bankimport.Entry) error {
			require.Len(t, entries, 1)
			assert.Equal(t, "TRANSF B", entries[0].Reference)
			return nil
		})
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Len(t, result.Duplicates, 1)
	assert.Equal(t, params[0], result.Duplicates[0])
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bankimport.NewMockRepository(ctrl)
	svc := bankimport.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Duplicates)
}
