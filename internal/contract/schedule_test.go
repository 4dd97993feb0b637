package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rjcosta/brickerp/internal/contract"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSchedule_EvenSplit(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 12000000, // 120 000.00
		DownPayment: 2000000,  // 20 000.00
		MonthCount:  10,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.January, 15),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)
	require.Len(t, installments, 10)

	for i, in := range installments {
		assert.Equal(t, i+1, in.Sequence)
		assert.Equal(t, int64(1000000), in.Amount) // 10 000.00 each
		assert.Equal(t, contract.StatusPending, in.Status)
		assert.Equal(t, date(2024, time.Month(2+i), 15), in.DueDate)
	}
}

func TestBuildSchedule_RemainderOnLast(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 10000000, // 100 000.00
		MonthCount:  3,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.March, 1),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, int64(3333333), installments[0].Amount)
	assert.Equal(t, int64(3333333), installments[1].Amount)
	assert.Equal(t, int64(3333334), installments[2].Amount)

	var sum int64
	for _, in := range installments {
		sum += in.Amount
	}
	assert.Equal(t, c.Remaining(), sum)
}

func TestBuildSchedule_DiscountReducesBalance(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 1000000,
		DownPayment: 100000,
		Discount:    50000,
		MonthCount:  5,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.June, 10),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)

	var sum int64
	for _, in := range installments {
		sum += in.Amount
	}
	assert.Equal(t, int64(850000), sum)
}

func TestBuildSchedule_MonthEndClamping(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 120000,
		MonthCount:  4,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.January, 31),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)
	require.Len(t, installments, 4)

	// 2024 is a leap year.
	assert.Equal(t, date(2024, time.February, 29), installments[0].DueDate)
	assert.Equal(t, date(2024, time.March, 31), installments[1].DueDate)
	assert.Equal(t, date(2024, time.April, 30), installments[2].DueDate)
	assert.Equal(t, date(2024, time.May, 31), installments[3].DueDate)
}

func TestBuildSchedule_NonLeapFebruary(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 60000,
		MonthCount:  2,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2025, time.January, 30),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.February, 28), installments[0].DueDate)
	assert.Equal(t, date(2025, time.March, 30), installments[1].DueDate)
}

func TestBuildSchedule_QuarterlyDueDates(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 400000,
		MonthCount:  4,
		Plan:        contract.PlanQuarterly,
		StartDate:   date(2024, time.January, 10),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)
	require.Len(t, installments, 4)

	assert.Equal(t, date(2024, time.April, 10), installments[0].DueDate)
	assert.Equal(t, date(2024, time.July, 10), installments[1].DueDate)
	assert.Equal(t, date(2024, time.October, 10), installments[2].DueDate)
	assert.Equal(t, date(2025, time.January, 10), installments[3].DueDate)
}

func TestBuildSchedule_YearlyDueDates(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 300000,
		MonthCount:  3,
		Plan:        contract.PlanYearly,
		StartDate:   date(2024, time.February, 29),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, date(2025, time.February, 28), installments[0].DueDate)
	assert.Equal(t, date(2026, time.February, 28), installments[1].DueDate)
	assert.Equal(t, date(2027, time.February, 28), installments[2].DueDate)
}

func TestBuildSchedule_InvalidMonthCount(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 100000,
		MonthCount:  0,
		Plan:        contract.PlanMonthly,
	}

	_, err := contract.BuildSchedule(c)
	assert.Error(t, err)
}

func TestBuildSchedule_NegativeBalance(t *testing.T) {
	c := &contract.Contract{
		TotalAmount: 100000,
		DownPayment: 90000,
		Discount:    20000,
		MonthCount:  5,
		Plan:        contract.PlanMonthly,
	}

	_, err := contract.BuildSchedule(c)
	assert.Error(t, err)
}

func TestBuildSchedule_ZeroBalance(t *testing.T) {
	// Fully paid up front: the schedule still exists, every row zero.
	c := &contract.Contract{
		TotalAmount: 100000,
		DownPayment: 100000,
		MonthCount:  4,
		Plan:        contract.PlanMonthly,
		StartDate:   date(2024, time.May, 1),
	}

	installments, err := contract.BuildSchedule(c)
	require.NoError(t, err)
	require.Len(t, installments, 4)

	for _, in := range installments {
		assert.Zero(t, in.Amount)
	}
}
