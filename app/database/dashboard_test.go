package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func summaryFee(amount, paid string, dueDate time.Time, today time.Time) *models.FeeWithPaid {
	fee := &models.FeeWithPaid{
		Fee: models.Fee{
			Amount:  d(amount),
			DueDate: dueDate,
			Status:  models.FeePending,
		},
		PaidAmount: d(paid),
	}
	fee.EffectiveStatus = models.DeriveFeeStatus(fee.Amount, fee.PaidAmount, fee.DueDate, today)
	return fee
}

func TestFeeTotals(t *testing.T) {
	today := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	fees := []*models.FeeWithPaid{
		summaryFee("100.00", "100.00", day("2025-05-08"), today), // paid, ignored
		summaryFee("100.00", "0", day("2025-05-08"), today),      // overdue
		summaryFee("100.00", "40.00", day("2025-06-08"), today),  // overdue, 60 pending
		summaryFee("100.00", "0", day("2025-07-08"), today),      // pending
	}

	pending, overdue, overdueCount := feeTotals(fees)

	assert.True(t, pending.Equal(d("260.00")), "got %s", pending)
	assert.True(t, overdue.Equal(d("160.00")), "got %s", overdue)
	assert.Equal(t, 2, overdueCount)
}

func TestFeeTotalsDueTodayIsNotOverdue(t *testing.T) {
	today := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	fees := []*models.FeeWithPaid{
		summaryFee("100.00", "0", day("2025-06-15"), today),
	}

	pending, overdue, overdueCount := feeTotals(fees)

	assert.True(t, pending.Equal(d("100.00")))
	assert.True(t, overdue.IsZero())
	assert.Equal(t, 0, overdueCount)
}

func TestFeeTotalsEmpty(t *testing.T) {
	pending, overdue, overdueCount := feeTotals(nil)
	assert.True(t, pending.IsZero())
	assert.True(t, overdue.IsZero())
	assert.Equal(t, 0, overdueCount)
}
