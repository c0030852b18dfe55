package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

// CreateBankAccount registers a bank or cash account for a condominium.
func CreateBankAccount(db DBTX, account *models.BankAccount) error {
	if account.Name == "" {
		return invalid("name", "must not be empty")
	}
	if account.CondominiumID == "" {
		return invalid("condominium_id", "must not be empty")
	}

	query := `INSERT INTO bank_accounts (condominium_id, name, initial_balance, is_active)
			  VALUES ($1, $2, $3, true)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, account.CondominiumID, account.Name, account.InitialBalance).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bank account: %v", err)
	}
	account.IsActive = true
	return nil
}

// GetBankAccountByID fetches a single account.
func GetBankAccountByID(db DBTX, id string) (*models.BankAccount, error) {
	account := &models.BankAccount{}
	query := `SELECT id, condominium_id, name, initial_balance, is_active, created_at, updated_at
			  FROM bank_accounts WHERE id = $1`
	err := db.QueryRow(query, id).Scan(
		&account.ID, &account.CondominiumID, &account.Name,
		&account.InitialBalance, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// lockBankAccount fetches an account with a row lock so concurrent
// writers against the same account serialize on it. Must run inside a
// transaction.
func lockBankAccount(tx DBTX, id string) (*models.BankAccount, error) {
	account := &models.BankAccount{}
	query := `SELECT id, condominium_id, name, initial_balance, is_active, created_at, updated_at
			  FROM bank_accounts WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(query, id).Scan(
		&account.ID, &account.CondominiumID, &account.Name,
		&account.InitialBalance, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListActiveBankAccounts returns the active accounts of a condominium.
func ListActiveBankAccounts(db DBTX, condominiumID string) ([]*models.BankAccount, error) {
	query := `SELECT id, condominium_id, name, initial_balance, is_active, created_at, updated_at
			  FROM bank_accounts
			  WHERE condominium_id = $1 AND is_active = true
			  ORDER BY name`
	rows, err := db.Query(query, condominiumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.BankAccount
	for rows.Next() {
		account := &models.BankAccount{}
		if err := rows.Scan(
			&account.ID, &account.CondominiumID, &account.Name,
			&account.InitialBalance, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// AccountBalance replays the account's full transaction history on top
// of its initial balance. Never cached: every caller gets a balance
// consistent with the journal as of its own snapshot.
func AccountBalance(db DBTX, accountID string) (decimal.Decimal, error) {
	account, err := GetBankAccountByID(db, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txs, err := AccountTransactions(db, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return ReplayBalance(account.InitialBalance, txs), nil
}

// accountBalanceLocked is AccountBalance against an already locked
// account row, used for sufficient-funds checks inside a unit of work.
func accountBalanceLocked(tx DBTX, account *models.BankAccount) (decimal.Decimal, error) {
	txs, err := AccountTransactions(tx, account.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return ReplayBalance(account.InitialBalance, txs), nil
}

// GetOrCreateCashAccount returns the condominium's cash account,
// creating it on first use.
func GetOrCreateCashAccount(tx DBTX, condominiumID string) (*models.BankAccount, error) {
	account := &models.BankAccount{}
	query := `SELECT id, condominium_id, name, initial_balance, is_active, created_at, updated_at
			  FROM bank_accounts WHERE condominium_id = $1 AND name = $2`
	err := tx.QueryRow(query, condominiumID, models.CashAccountName).Scan(
		&account.ID, &account.CondominiumID, &account.Name,
		&account.InitialBalance, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err == nil {
		return account, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	account = &models.BankAccount{
		CondominiumID:  condominiumID,
		Name:           models.CashAccountName,
		InitialBalance: decimal.Zero,
	}
	if err := CreateBankAccount(tx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteBankAccount removes an account the journal has never touched.
// An account referenced by transactions cannot be removed, only
// deactivated, so history stays replayable.
func DeleteBankAccount(db DBTX, id string) error {
	var used bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM financial_transactions WHERE bank_account_id = $1)`, id,
	).Scan(&used)
	if err != nil {
		return err
	}
	if used {
		return ErrAccountInUse
	}

	result, err := db.Exec(`DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateBankAccount flags the account inactive. Accounts are never
// hard-deleted while transactions reference them; deactivation keeps
// the journal and its balances replayable.
func DeactivateBankAccount(db DBTX, id string) error {
	result, err := db.Exec(`UPDATE bank_accounts SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
