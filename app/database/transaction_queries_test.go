package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func TestTransactionFiltersMatches(t *testing.T) {
	fractionID := "fraction-1"
	tx := entry("t1", models.TransactionIncome, "50.00", "2025-03-10", day("2025-03-10"))
	tx.BankAccountID = "account-1"
	tx.Category = "quotas"
	tx.FractionID = &fractionID

	from := day("2025-03-01")
	to := day("2025-03-31")
	tooLate := day("2025-04-01")

	cases := []struct {
		name    string
		filters *TransactionFilters
		want    bool
	}{
		{"nil filters match everything", nil, true},
		{"empty filters match everything", &TransactionFilters{}, true},
		{"account match", &TransactionFilters{BankAccountID: "account-1"}, true},
		{"account mismatch", &TransactionFilters{BankAccountID: "account-2"}, false},
		{"type match", &TransactionFilters{Type: models.TransactionIncome}, true},
		{"type mismatch", &TransactionFilters{Type: models.TransactionExpense}, false},
		{"category match", &TransactionFilters{Category: "quotas"}, true},
		{"category mismatch", &TransactionFilters{Category: "maintenance"}, false},
		{"fraction match", &TransactionFilters{FractionID: "fraction-1"}, true},
		{"fraction mismatch", &TransactionFilters{FractionID: "fraction-2"}, false},
		{"inside date range", &TransactionFilters{DateFrom: &from, DateTo: &to}, true},
		{"before range", &TransactionFilters{DateFrom: &tooLate}, false},
		{"after range", &TransactionFilters{DateTo: &from}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filters.matches(tx))
		})
	}
}

func TestTransactionFiltersFractionRequiresValue(t *testing.T) {
	noFraction := entry("t2", models.TransactionExpense, "10.00", "2025-03-11", day("2025-03-11"))
	filters := &TransactionFilters{FractionID: "fraction-1"}
	assert.False(t, filters.matches(noFraction))
}

func TestLaterThanOrdersNewestFirst(t *testing.T) {
	created := day("2025-06-01")
	wrap := func(id, txDate string, createdAt time.Time) *models.TransactionWithBalance {
		return &models.TransactionWithBalance{
			FinancialTransaction: *entry(id, models.TransactionIncome, "1", txDate, createdAt),
		}
	}

	older := wrap("a", "2025-05-30", created)
	newer := wrap("b", "2025-06-01", created)
	assert.True(t, laterThan(newer, older))
	assert.False(t, laterThan(older, newer))

	// Same date falls back to created_at, then id.
	early := wrap("a", "2025-06-01", created)
	late := wrap("b", "2025-06-01", created.Add(time.Hour))
	assert.True(t, laterThan(late, early))

	low := wrap("a", "2025-06-01", created)
	high := wrap("z", "2025-06-01", created)
	assert.True(t, laterThan(high, low))
}
