package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pendingFee(id string, amount, paid string, month int) *models.FeeWithPaid {
	return &models.FeeWithPaid{
		Fee: models.Fee{
			ID:          id,
			PeriodType:  models.PeriodMonthly,
			PeriodYear:  2025,
			PeriodMonth: &month,
			FeeType:     models.FeeOrdinary,
			Amount:      d(amount),
			DueDate:     time.Date(2025, time.Month(month), 8, 0, 0, 0, 0, time.UTC),
		},
		PaidAmount: d(paid),
	}
}

func TestPlanAllocationSplitsAcrossFees(t *testing.T) {
	// Pending amounts [5, 10, 3] oldest first, credit 12: the first fee
	// is settled in full, the second gets 7 of 10, the third is left
	// untouched.
	fees := []*models.FeeWithPaid{
		pendingFee("fee-1", "5.00", "0", 3),
		pendingFee("fee-2", "10.00", "0", 4),
		pendingFee("fee-3", "3.00", "0", 5),
	}

	plan := PlanAllocation(fees, d("12.00"))

	require.Len(t, plan.Payments, 2)
	assert.Equal(t, "fee-1", plan.Payments[0].Fee.ID)
	assert.True(t, plan.Payments[0].Amount.Equal(d("5.00")))
	assert.True(t, plan.Payments[0].FullyPays)

	assert.Equal(t, "fee-2", plan.Payments[1].Fee.ID)
	assert.True(t, plan.Payments[1].Amount.Equal(d("7.00")))
	assert.False(t, plan.Payments[1].FullyPays)

	assert.True(t, plan.Allocated.Equal(d("12.00")))
	assert.True(t, plan.Remainder.IsZero())
}

func TestPlanAllocationExactMatch(t *testing.T) {
	fees := []*models.FeeWithPaid{
		pendingFee("fee-1", "30.00", "0", 1),
		pendingFee("fee-2", "30.00", "0", 2),
	}

	plan := PlanAllocation(fees, d("60.00"))

	require.Len(t, plan.Payments, 2)
	assert.True(t, plan.Payments[0].FullyPays)
	assert.True(t, plan.Payments[1].FullyPays)
	assert.True(t, plan.Allocated.Equal(d("60.00")))
	assert.True(t, plan.Remainder.IsZero())
}

func TestPlanAllocationNothingOutstanding(t *testing.T) {
	plan := PlanAllocation(nil, d("40.00"))

	assert.Empty(t, plan.Payments)
	assert.True(t, plan.Allocated.IsZero())
	assert.True(t, plan.Remainder.Equal(d("40.00")), "unused credit carries forward")
}

func TestPlanAllocationCreditBelowOldestFee(t *testing.T) {
	fees := []*models.FeeWithPaid{
		pendingFee("fee-1", "50.00", "0", 1),
		pendingFee("fee-2", "50.00", "0", 2),
	}

	plan := PlanAllocation(fees, d("20.00"))

	require.Len(t, plan.Payments, 1)
	assert.Equal(t, "fee-1", plan.Payments[0].Fee.ID)
	assert.True(t, plan.Payments[0].Amount.Equal(d("20.00")))
	assert.False(t, plan.Payments[0].FullyPays)
	assert.True(t, plan.Remainder.IsZero())
}

func TestPlanAllocationSkipsSettledFees(t *testing.T) {
	fees := []*models.FeeWithPaid{
		pendingFee("fee-1", "30.00", "30.00", 1),
		pendingFee("fee-2", "30.00", "25.00", 2),
	}

	plan := PlanAllocation(fees, d("10.00"))

	require.Len(t, plan.Payments, 1)
	assert.Equal(t, "fee-2", plan.Payments[0].Fee.ID)
	assert.True(t, plan.Payments[0].Amount.Equal(d("5.00")), "only the remaining 5 is due")
	assert.True(t, plan.Payments[0].FullyPays)
	assert.True(t, plan.Remainder.Equal(d("5.00")))
}

func TestPlanAllocationNeverOverpays(t *testing.T) {
	fees := []*models.FeeWithPaid{
		pendingFee("fee-1", "10.00", "0", 1),
	}

	plan := PlanAllocation(fees, d("999.00"))

	require.Len(t, plan.Payments, 1)
	assert.True(t, plan.Payments[0].Amount.Equal(d("10.00")))
	assert.True(t, plan.Remainder.Equal(d("989.00")))
}

func TestAllocationPlanSummary(t *testing.T) {
	fees := []*models.FeeWithPaid{
		pendingFee("fee-1", "5.00", "0", 3),
		pendingFee("fee-2", "10.00", "0", 4),
	}

	plan := PlanAllocation(fees, d("12.00"))
	assert.Equal(t, "Fee 03/2025, Fee 04/2025 (partial)", plan.Summary())
}

func TestAllocationPlanSummaryExtraFee(t *testing.T) {
	month := 6
	extra := &models.FeeWithPaid{
		Fee: models.Fee{
			ID:          "fee-x",
			PeriodType:  models.PeriodMonthly,
			PeriodYear:  2025,
			PeriodMonth: &month,
			FeeType:     models.FeeExtra,
			Amount:      d("80.00"),
			DueDate:     time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		},
	}

	plan := PlanAllocation([]*models.FeeWithPaid{extra}, d("80.00"))
	assert.Equal(t, "Extra fee 06/2025", plan.Summary())
}
