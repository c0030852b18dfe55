package database

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

// SortChronological orders journal entries by (transaction_date,
// created_at, id). The three-level tie-break is load-bearing: same-day
// entries must replay in the same order no matter how they were
// inserted, or running balances would differ between reads.
func SortChronological(txs []*models.FinancialTransaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.Before(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// ReplayBalance reconstructs an account balance by replaying the given
// transactions chronologically on top of the initial balance. Income
// adds, expense subtracts. Both real code and tests go through this
// function; balances are never cached.
func ReplayBalance(initial decimal.Decimal, txs []*models.FinancialTransaction) decimal.Decimal {
	balances := RunningBalances(initial, txs)
	if len(balances) == 0 {
		return initial
	}
	return balances[len(balances)-1]
}

// RunningBalances returns the balance after each transaction, in
// chronological order. The input slice is re-sorted in place.
func RunningBalances(initial decimal.Decimal, txs []*models.FinancialTransaction) []decimal.Decimal {
	SortChronological(txs)
	balances := make([]decimal.Decimal, len(txs))
	running := initial
	for i, t := range txs {
		running = running.Add(t.Signed())
		balances[i] = running
	}
	return balances
}
