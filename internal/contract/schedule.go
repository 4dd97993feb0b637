package contract

import (
	"fmt"
	"time"
)

// BuildSchedule computes the installment rows for a contract's financed
// balance. The balance is split into MonthCount equal parts truncated to the
// cent; the last installment absorbs the rounding remainder so the amounts
// always sum to Remaining() exactly.
func BuildSchedule(c *Contract) ([]*Installment, error) {
	if c.MonthCount <= 0 {
		return nil, fmt.Errorf("invalid month count %d", c.MonthCount)
	}

	remaining := c.Remaining()
	if remaining < 0 {
		return nil, fmt.Errorf("down payment and discount exceed total amount")
	}

	base := remaining / int64(c.MonthCount)

	installments := make([]*Installment, c.MonthCount)

	for i := 0; i < c.MonthCount; i++ {
		amount := base
		if i == c.MonthCount-1 {
			amount = remaining - base*int64(c.MonthCount-1)
		}

		installments[i] = &Installment{
			ContractID: c.ID,
			Sequence:   i + 1,
			DueDate:    dueDate(c.StartDate, c.Plan, i),
			Amount:     amount,
			Status:     StatusPending,
		}
	}

	return installments, nil
}

// dueDate returns the due date of the i-th installment (0-indexed).
func dueDate(start time.Time, plan PlanType, i int) time.Time {
	switch plan {
	case PlanQuarterly:
		return addMonths(start, (i+1)*3)
	case PlanYearly:
		return addMonths(start, (i+1)*12)
	default:
		return addMonths(start, i+1)
	}
}

// addMonths advances t by the given number of calendar months, clamping the
// day to the end of the target month. Jan 31 + 1 month is Feb 28 (or 29),
// never Mar 2. time.AddDate would normalize overflow instead, which makes
// schedules drift into the following month.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()

	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	if last := daysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
