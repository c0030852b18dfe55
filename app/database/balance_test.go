package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(id string, txType models.TransactionType, amount, txDate string, createdAt time.Time) *models.FinancialTransaction {
	return &models.FinancialTransaction{
		ID:              id,
		Type:            txType,
		Amount:          d(amount),
		TransactionDate: day(txDate),
		CreatedAt:       createdAt,
	}
}

func TestReplayBalance(t *testing.T) {
	created := day("2025-03-05")
	txs := []*models.FinancialTransaction{
		entry("a", models.TransactionIncome, "100.00", "2025-03-01", created),
		entry("b", models.TransactionExpense, "40.50", "2025-03-02", created),
		entry("c", models.TransactionIncome, "10.25", "2025-03-03", created),
	}

	balance := ReplayBalance(d("500.00"), txs)
	assert.True(t, balance.Equal(d("569.75")), "got %s", balance)
}

func TestReplayBalanceEmptyHistory(t *testing.T) {
	balance := ReplayBalance(d("123.45"), nil)
	assert.True(t, balance.Equal(d("123.45")))
}

func TestRunningBalancesInsertionOrderIndependent(t *testing.T) {
	created := day("2025-03-10")
	build := func() []*models.FinancialTransaction {
		return []*models.FinancialTransaction{
			entry("a", models.TransactionIncome, "100.00", "2025-03-01", created),
			entry("b", models.TransactionExpense, "30.00", "2025-03-02", created),
			entry("c", models.TransactionIncome, "5.00", "2025-03-02", created.Add(time.Minute)),
		}
	}

	forward := build()
	shuffled := build()
	shuffled[0], shuffled[2] = shuffled[2], shuffled[0]

	a := RunningBalances(d("0"), forward)
	b := RunningBalances(d("0"), shuffled)

	assert.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Equal(b[i]), "balance %d: %s vs %s", i, a[i], b[i])
	}
	assert.True(t, a[len(a)-1].Equal(d("75.00")))
}

func TestSortChronologicalTieBreaks(t *testing.T) {
	sameCreated := day("2025-04-01")
	txs := []*models.FinancialTransaction{
		entry("z", models.TransactionIncome, "1", "2025-04-01", sameCreated),
		entry("a", models.TransactionIncome, "1", "2025-04-01", sameCreated),
		entry("m", models.TransactionIncome, "1", "2025-04-01", sameCreated.Add(-time.Hour)),
		entry("b", models.TransactionIncome, "1", "2025-03-31", sameCreated),
	}

	SortChronological(txs)

	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	// Date first, then created_at, then id.
	assert.Equal(t, []string{"b", "m", "a", "z"}, ids)
}

func TestTransferLegsCancelOut(t *testing.T) {
	created := day("2025-05-01")
	source := entry("src", models.TransactionExpense, "250.00", "2025-05-01", created)
	source.SetRelated(models.TransferLink("dst"))
	dest := entry("dst", models.TransactionIncome, "250.00", "2025-05-01", created)
	dest.SetRelated(models.TransferLink("src"))

	combined := ReplayBalance(d("1000.00"), []*models.FinancialTransaction{source, dest})
	assert.True(t, combined.Equal(d("1000.00")), "a transfer moves money, it does not create it")
}
