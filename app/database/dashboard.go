package database

import (
	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

// feeTotals sums the open fees' pending amounts and, from the derived
// statuses, the overdue share. Using the effective status keeps the
// cutoff on the same truncated day as the per-fee display: a fee due
// today is pending, not overdue.
func feeTotals(fees []*models.FeeWithPaid) (pending, overdue decimal.Decimal, overdueCount int) {
	pending, overdue = decimal.Zero, decimal.Zero
	for _, fee := range fees {
		if fee.EffectiveStatus == models.FeePaid {
			continue
		}
		amount := fee.PendingAmount()
		pending = pending.Add(amount)
		if fee.EffectiveStatus == models.FeeOverdue {
			overdue = overdue.Add(amount)
			overdueCount++
		}
	}
	return pending, overdue, overdueCount
}

// GetFinancialSummary aggregates a condominium's position for the
// dashboard: replayed balance per account, pending and overdue fee
// totals, and the unallocated credit parked on fraction sub-ledgers.
func GetFinancialSummary(db DBTX, condominiumID string) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	accounts, err := ListActiveBankAccounts(db, condominiumID)
	if err != nil {
		return nil, err
	}
	totalBalance := decimal.Zero
	accountBalances := make([]map[string]interface{}, 0, len(accounts))
	for _, account := range accounts {
		balance, err := AccountBalance(db, account.ID)
		if err != nil {
			return nil, err
		}
		totalBalance = totalBalance.Add(balance)
		accountBalances = append(accountBalances, map[string]interface{}{
			"id":      account.ID,
			"name":    account.Name,
			"balance": balance,
		})
	}
	stats["total_balance"] = totalBalance
	stats["accounts"] = accountBalances

	fees, err := ListFees(db, condominiumID, &FeeFilters{IncludeHistorical: true})
	if err != nil {
		return nil, err
	}
	pending, overdue, overdueCount := feeTotals(fees)
	stats["pending_fees_total"] = pending
	stats["overdue_fees_total"] = overdue
	stats["overdue_fees_count"] = overdueCount

	var unallocated decimal.Decimal
	err = db.QueryRow(
		`SELECT COALESCE(SUM(balance), 0) FROM fraction_accounts WHERE condominium_id = $1`,
		condominiumID,
	).Scan(&unallocated)
	if err != nil {
		return nil, err
	}
	stats["unallocated_credit_total"] = unallocated

	return stats, nil
}
