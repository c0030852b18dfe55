package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveFeeStatus(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	future := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		amount  string
		paid    string
		dueDate time.Time
		want    FeeStatus
	}{
		{"unpaid not due", "100.00", "0.00", future, FeePending},
		{"unpaid overdue", "100.00", "0.00", past, FeeOverdue},
		{"partial not due", "100.00", "40.00", future, FeePartial},
		{"partial overdue", "100.00", "40.00", past, FeeOverdue},
		{"fully paid", "100.00", "100.00", past, FeePaid},
		{"paid beyond amount", "100.00", "120.00", past, FeePaid},
		{"due today is not overdue", "100.00", "0.00", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), FeePending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveFeeStatus(d(tt.amount), d(tt.paid), tt.dueDate, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeePeriodLabel(t *testing.T) {
	march := 3
	monthly := &Fee{PeriodType: PeriodMonthly, PeriodYear: 2025, PeriodMonth: &march}
	assert.Equal(t, "03/2025", monthly.PeriodLabel())

	yearly := &Fee{PeriodType: PeriodYearly, PeriodYear: 2024}
	assert.Equal(t, "2024", yearly.PeriodLabel())
}

func TestFeeWithPaidPendingAmount(t *testing.T) {
	fee := &FeeWithPaid{Fee: Fee{Amount: d("85.50")}, PaidAmount: d("40.25")}
	assert.True(t, fee.PendingAmount().Equal(d("45.25")))
}
