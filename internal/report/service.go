package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	OutstandingInstallments(ctx context.Context) ([]*OutstandingInstallment, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Debtors aggregates every contract with unpaid installments into one row
// with aging buckets, ordered by outstanding amount descending.
func (s *Service) Debtors(ctx context.Context) ([]*DebtorRow, error) {
	outstanding, err := s.repo.OutstandingInstallments(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	byContract := make(map[uuid.UUID]*DebtorRow)

	for _, o := range outstanding {
		remainder := o.Remainder()
		if remainder <= 0 {
			continue
		}

		row, ok := byContract[o.ContractID]
		if !ok {
			row = &DebtorRow{
				ContractID:     o.ContractID,
				ContractNumber: o.ContractNumber,
				ClientName:     o.ClientName,
			}
			byContract[o.ContractID] = row
		}

		row.Outstanding += remainder

		switch days := daysPastDue(today, o.DueDate); {
		case days <= 0:
			row.Current += remainder
		case days <= 30:
			row.Overdue30 += remainder
		case days <= 60:
			row.Overdue60 += remainder
		case days <= 90:
			row.Overdue90 += remainder
		default:
			row.Overdue90Plus += remainder
		}
	}

	rows := make([]*DebtorRow, 0, len(byContract))
	for _, row := range byContract {
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Outstanding > rows[j].Outstanding
	})

	return rows, nil
}

// daysPastDue is positive when the due date is in the past.
func daysPastDue(today, due time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)

	return int(t.Sub(d).Hours() / 24)
}
