package database

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

const transactionColumns = `id, condominium_id, bank_account_id, type, amount, transaction_date,
	description, category, reference, fraction_id, income_entry_type,
	related_type, related_id, transfer_to_account_id, created_by, created_at`

func scanTransaction(scanner interface{ Scan(...interface{}) error }) (*models.FinancialTransaction, error) {
	t := &models.FinancialTransaction{}
	var reference, fractionID, relatedID, transferTo sql.NullString
	var incomeEntryType, relatedType sql.NullString

	err := scanner.Scan(
		&t.ID, &t.CondominiumID, &t.BankAccountID, &t.Type, &t.Amount, &t.TransactionDate,
		&t.Description, &t.Category, &reference, &fractionID, &incomeEntryType,
		&relatedType, &relatedID, &transferTo, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reference.Valid {
		t.Reference = &reference.String
	}
	if fractionID.Valid {
		t.FractionID = &fractionID.String
	}
	if incomeEntryType.Valid {
		v := models.IncomeEntryType(incomeEntryType.String)
		t.IncomeEntryType = &v
	}
	if relatedType.Valid {
		v := models.RelatedType(relatedType.String)
		t.RelatedType = &v
	}
	if relatedID.Valid {
		t.RelatedID = &relatedID.String
	}
	if transferTo.Valid {
		t.TransferToAccountID = &transferTo.String
	}
	return t, nil
}

// AccountTransactions returns the full journal of one account in
// chronological (transaction_date, created_at, id) order.
func AccountTransactions(db DBTX, accountID string) ([]*models.FinancialTransaction, error) {
	query := `SELECT ` + transactionColumns + `
			  FROM financial_transactions
			  WHERE bank_account_id = $1
			  ORDER BY transaction_date ASC, created_at ASC, id ASC`
	rows, err := db.Query(query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*models.FinancialTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetTransactionByID fetches a single journal entry.
func GetTransactionByID(db DBTX, id string) (*models.FinancialTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions WHERE id = $1`
	t, err := scanTransaction(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TransactionInput is the caller-supplied part of a new journal entry.
type TransactionInput struct {
	CondominiumID       string                  `json:"condominium_id"`
	BankAccountID       string                  `json:"bank_account_id"`
	Type                models.TransactionType  `json:"type"`
	Amount              decimal.Decimal         `json:"amount"`
	TransactionDate     time.Time               `json:"transaction_date"`
	Description         string                  `json:"description"`
	Category            string                  `json:"category"`
	Reference           *string                 `json:"reference,omitempty"`
	FractionID          *string                 `json:"fraction_id,omitempty"`
	IncomeEntryType     *models.IncomeEntryType `json:"income_entry_type,omitempty"`
	TransferToAccountID *string                 `json:"transfer_to_account_id,omitempty"`
	CreatedBy           string                  `json:"created_by"`
}

func (in *TransactionInput) validate() error {
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description", "must not be empty")
	}
	switch in.Type {
	case models.TransactionIncome, models.TransactionExpense:
	case models.TransactionTransfer:
		if in.TransferToAccountID == nil || *in.TransferToAccountID == "" {
			return invalid("transfer_to_account_id", "required for transfers")
		}
		if *in.TransferToAccountID == in.BankAccountID {
			return invalid("transfer_to_account_id", "must differ from the source account")
		}
	default:
		return invalid("type", "must be income, expense or transfer")
	}
	if in.TransactionDate.IsZero() {
		return invalid("transaction_date", "must be set")
	}
	if in.CreatedBy == "" {
		return invalid("created_by", "must be set")
	}
	return nil
}

func insertTransactionRow(tx DBTX, t *models.FinancialTransaction) error {
	query := `INSERT INTO financial_transactions
			  (condominium_id, bank_account_id, type, amount, transaction_date, description,
			   category, reference, fraction_id, income_entry_type, related_type, related_id,
			   transfer_to_account_id, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING id, created_at`
	var incomeEntryType, relatedType interface{}
	if t.IncomeEntryType != nil {
		incomeEntryType = string(*t.IncomeEntryType)
	}
	if t.RelatedType != nil {
		relatedType = string(*t.RelatedType)
	}
	return tx.QueryRow(query,
		t.CondominiumID, t.BankAccountID, string(t.Type), t.Amount, t.TransactionDate,
		t.Description, t.Category, t.Reference, t.FractionID, incomeEntryType,
		relatedType, t.RelatedID, t.TransferToAccountID, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)
}

// InsertTransaction validates the input and writes the journal rows
// inside the caller's unit of work. The account and any referenced
// fraction must exist and belong to the given condominium. Expenses and
// transfers are rejected when the amount exceeds the source account's
// replayed balance; a transfer produces two mutually linked rows, both
// or neither. The returned entry is the created row, or the source
// (expense) leg for a transfer.
func InsertTransaction(tx DBTX, input *TransactionInput) (*models.FinancialTransaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	account, err := lockBankAccount(tx, input.BankAccountID)
	if err != nil {
		return nil, err
	}
	if account.CondominiumID != input.CondominiumID {
		return nil, ErrCondominiumMismatch
	}

	if input.FractionID != nil {
		fraction, err := GetFractionByID(tx, *input.FractionID)
		if err != nil {
			return nil, err
		}
		if fraction.CondominiumID != input.CondominiumID {
			return nil, ErrCondominiumMismatch
		}
	}

	if input.Type == models.TransactionExpense || input.Type == models.TransactionTransfer {
		balance, err := accountBalanceLocked(tx, account)
		if err != nil {
			return nil, err
		}
		if input.Amount.GreaterThan(balance) {
			return nil, ErrInsufficientFunds
		}
	}

	if input.Type == models.TransactionTransfer {
		return insertTransferPair(tx, input)
	}

	entry := &models.FinancialTransaction{
		CondominiumID:   input.CondominiumID,
		BankAccountID:   input.BankAccountID,
		Type:            input.Type,
		Amount:          input.Amount,
		TransactionDate: input.TransactionDate,
		Description:     input.Description,
		Category:        input.Category,
		Reference:       input.Reference,
		FractionID:      input.FractionID,
		IncomeEntryType: input.IncomeEntryType,
		CreatedBy:       input.CreatedBy,
	}
	if err := insertTransactionRow(tx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %v", err)
	}
	return entry, nil
}

// insertTransferPair writes the expense leg on the source account and
// the income leg on the destination, then links them via related_id.
func insertTransferPair(tx DBTX, input *TransactionInput) (*models.FinancialTransaction, error) {
	destination, err := lockBankAccount(tx, *input.TransferToAccountID)
	if err != nil {
		return nil, err
	}
	if destination.CondominiumID != input.CondominiumID {
		return nil, ErrCondominiumMismatch
	}

	relatedType := models.RelatedTransfer
	source := &models.FinancialTransaction{
		CondominiumID:       input.CondominiumID,
		BankAccountID:       input.BankAccountID,
		Type:                models.TransactionExpense,
		Amount:              input.Amount,
		TransactionDate:     input.TransactionDate,
		Description:         input.Description,
		Category:            input.Category,
		Reference:           input.Reference,
		TransferToAccountID: input.TransferToAccountID,
		CreatedBy:           input.CreatedBy,
	}
	if err := insertTransactionRow(tx, source); err != nil {
		return nil, fmt.Errorf("failed to insert transfer source leg: %v", err)
	}

	counterpart := &models.FinancialTransaction{
		CondominiumID:   input.CondominiumID,
		BankAccountID:   destination.ID,
		Type:            models.TransactionIncome,
		Amount:          input.Amount,
		TransactionDate: input.TransactionDate,
		Description:     input.Description,
		Category:        input.Category,
		Reference:       input.Reference,
		RelatedType:     &relatedType,
		RelatedID:       &source.ID,
		CreatedBy:       input.CreatedBy,
	}
	if err := insertTransactionRow(tx, counterpart); err != nil {
		return nil, fmt.Errorf("failed to insert transfer destination leg: %v", err)
	}

	_, err = tx.Exec(
		`UPDATE financial_transactions SET related_type = $1, related_id = $2 WHERE id = $3`,
		string(models.RelatedTransfer), counterpart.ID, source.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to link transfer legs: %v", err)
	}
	source.SetRelated(models.TransferLink(counterpart.ID))
	return source, nil
}

// TransactionUpdate carries the editable fields of a journal entry.
type TransactionUpdate struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Reference       *string          `json:"reference,omitempty"`
}

// UpdateTransaction edits an unlinked manual entry. Entries linked to a
// fee payment or a sub-ledger movement are immutable. A transfer's legs
// are not independently editable: shared fields are applied to both
// legs, and an amount change re-runs the source account's funds check.
func UpdateTransaction(db *sql.DB, id string, update *TransactionUpdate) error {
	if update.Description != nil && strings.TrimSpace(*update.Description) == "" {
		return invalid("description", "must not be empty")
	}
	if update.Amount != nil && !update.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entry, err := GetTransactionByID(tx, id)
	if err != nil {
		return err
	}
	if entry.IsLocked() {
		return ErrTransactionLocked
	}

	ids := []string{entry.ID}
	if entry.IsTransferLeg() {
		ids = append(ids, entry.Related().ID)
	}

	if update.Amount != nil && !update.Amount.Equal(entry.Amount) {
		outgoing := entry
		if entry.IsTransferLeg() && entry.Type == models.TransactionIncome {
			counterpart, err := GetTransactionByID(tx, entry.Related().ID)
			if err != nil {
				return err
			}
			outgoing = counterpart
		}
		if outgoing.Type == models.TransactionExpense {
			account, err := lockBankAccount(tx, outgoing.BankAccountID)
			if err != nil {
				return err
			}
			balance, err := accountBalanceLocked(tx, account)
			if err != nil {
				return err
			}
			// The old expense amount is already part of the replayed balance.
			available := balance.Add(outgoing.Amount)
			if update.Amount.GreaterThan(available) {
				return ErrInsufficientFunds
			}
		}
	}

	for _, rowID := range ids {
		query := `UPDATE financial_transactions SET
				  amount = COALESCE($1, amount),
				  transaction_date = COALESCE($2, transaction_date),
				  description = COALESCE($3, description),
				  category = COALESCE($4, category),
				  reference = COALESCE($5, reference)
				  WHERE id = $6`
		if _, err := tx.Exec(query,
			update.Amount, update.TransactionDate, update.Description,
			update.Category, update.Reference, rowID,
		); err != nil {
			return fmt.Errorf("failed to update transaction: %v", err)
		}
	}

	return tx.Commit()
}

// DeleteTransaction removes an unlinked manual entry. Linked entries
// are immutable, and a transfer always loses both legs together.
func DeleteTransaction(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entry, err := GetTransactionByID(tx, id)
	if err != nil {
		return err
	}
	if entry.IsLocked() {
		return ErrTransactionLocked
	}

	ids := []string{entry.ID}
	if entry.IsTransferLeg() {
		ids = append(ids, entry.Related().ID)
	}
	for _, rowID := range ids {
		if _, err := tx.Exec(`DELETE FROM financial_transactions WHERE id = $1`, rowID); err != nil {
			return fmt.Errorf("failed to delete transaction: %v", err)
		}
	}

	return tx.Commit()
}

// SetTransactionRelated writes a polymorphic link onto an existing
// entry, turning it immutable when the link points at a fee payment or
// sub-ledger movement.
func SetTransactionRelated(tx DBTX, id string, link models.RelatedLink) error {
	var relatedType, relatedID interface{}
	if !link.IsZero() {
		relatedType = string(link.Type)
		relatedID = link.ID
	}
	_, err := tx.Exec(
		`UPDATE financial_transactions SET related_type = $1, related_id = $2 WHERE id = $3`,
		relatedType, relatedID, id,
	)
	return err
}

// UpdateTransactionDescription rewrites only the description, used by
// the liquidation engine to leave a human-readable summary on the
// originating entry.
func UpdateTransactionDescription(tx DBTX, id, description string) error {
	_, err := tx.Exec(`UPDATE financial_transactions SET description = $1 WHERE id = $2`, description, id)
	return err
}

// TransactionFilters narrows the journal listing. Filtering never
// affects running balances, which are always computed over the full
// history.
type TransactionFilters struct {
	BankAccountID string
	Type          models.TransactionType
	Category      string
	FractionID    string
	DateFrom      *time.Time
	DateTo        *time.Time
}

func (f *TransactionFilters) matches(t *models.FinancialTransaction) bool {
	if f == nil {
		return true
	}
	if f.BankAccountID != "" && t.BankAccountID != f.BankAccountID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.FractionID != "" && (t.FractionID == nil || *t.FractionID != f.FractionID) {
		return false
	}
	if f.DateFrom != nil && t.TransactionDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.TransactionDate.After(*f.DateTo) {
		return false
	}
	return true
}

// ListTransactionsWithRunningBalance lists a condominium's journal
// newest-first, each entry annotated with its running balance. Two
// passes: every account's full history is replayed chronologically
// first, because a balance at any point depends on all prior entries,
// not just the filtered slice; only then is the filtered subset
// re-sorted for display.
func ListTransactionsWithRunningBalance(db DBTX, condominiumID string, filters *TransactionFilters) ([]*models.TransactionWithBalance, error) {
	accounts, err := ListActiveBankAccounts(db, condominiumID)
	if err != nil {
		return nil, err
	}

	var result []*models.TransactionWithBalance
	for _, account := range accounts {
		if filters != nil && filters.BankAccountID != "" && filters.BankAccountID != account.ID {
			continue
		}
		txs, err := AccountTransactions(db, account.ID)
		if err != nil {
			return nil, err
		}
		balances := RunningBalances(account.InitialBalance, txs)
		for i, t := range txs {
			if !filters.matches(t) {
				continue
			}
			result = append(result, &models.TransactionWithBalance{
				FinancialTransaction: *t,
				RunningBalance:       balances[i],
			})
		}
	}

	// Newest first for display; chronology already did its job.
	sort.SliceStable(result, func(i, j int) bool {
		return laterThan(result[i], result[j])
	})
	return result, nil
}

func laterThan(a, b *models.TransactionWithBalance) bool {
	if !a.TransactionDate.Equal(b.TransactionDate) {
		return a.TransactionDate.After(b.TransactionDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
