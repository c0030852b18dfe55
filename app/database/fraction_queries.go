package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

const fractionAccountColumns = `id, fraction_id, condominium_id, balance, created_at, updated_at`

func scanFractionAccount(scanner interface{ Scan(...interface{}) error }) (*models.FractionAccount, error) {
	account := &models.FractionAccount{}
	err := scanner.Scan(
		&account.ID, &account.FractionID, &account.CondominiumID,
		&account.Balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetOrCreateFractionAccount returns the sub-ledger account of a
// fraction, creating it on first use. Idempotent: the unique
// (fraction_id, condominium_id) constraint guarantees concurrent
// callers converge on a single row.
func GetOrCreateFractionAccount(tx DBTX, fractionID, condominiumID string) (*models.FractionAccount, error) {
	if fractionID == "" {
		return nil, invalid("fraction_id", "must not be empty")
	}

	query := `SELECT ` + fractionAccountColumns + `
			  FROM fraction_accounts WHERE fraction_id = $1 AND condominium_id = $2`
	account, err := scanFractionAccount(tx.QueryRow(query, fractionID, condominiumID))
	if err == nil {
		return account, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	insert := `INSERT INTO fraction_accounts (fraction_id, condominium_id, balance)
			   VALUES ($1, $2, 0)
			   ON CONFLICT (fraction_id, condominium_id) DO UPDATE SET updated_at = NOW()
			   RETURNING ` + fractionAccountColumns
	account, err = scanFractionAccount(tx.QueryRow(insert, fractionID, condominiumID))
	if err != nil {
		return nil, fmt.Errorf("failed to create fraction account: %v", err)
	}
	return account, nil
}

// LockFractionAccount fetches the sub-ledger account with a row lock,
// serializing concurrent credits and liquidations on the same fraction.
func LockFractionAccount(tx DBTX, id string) (*models.FractionAccount, error) {
	query := `SELECT ` + fractionAccountColumns + ` FROM fraction_accounts WHERE id = $1 FOR UPDATE`
	account, err := scanFractionAccount(tx.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func insertMovement(tx DBTX, movement *models.FractionAccountMovement) error {
	query := `INSERT INTO fraction_account_movements
			  (fraction_account_id, amount, source_type, financial_transaction_id, description)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	err := tx.QueryRow(query,
		movement.FractionAccountID, movement.Amount, string(movement.SourceType),
		movement.FinancialTransactionID, movement.Description,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fraction account movement: %v", err)
	}

	update := `UPDATE fraction_accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`
	if _, err := tx.Exec(update, movement.Amount, movement.FractionAccountID); err != nil {
		return fmt.Errorf("failed to update fraction account balance: %v", err)
	}
	return nil
}

// AddCredit appends a positive movement to the sub-ledger and returns
// its id, so the liquidation engine can later rewrite the description
// with a summary of what the credit paid for.
func AddCredit(tx DBTX, accountID string, amount decimal.Decimal, source models.MovementSource, transactionID *string, description string) (string, error) {
	if !amount.IsPositive() {
		return "", invalid("amount", "must be greater than zero")
	}
	movement := &models.FractionAccountMovement{
		FractionAccountID:      accountID,
		Amount:                 amount,
		SourceType:             source,
		FinancialTransactionID: transactionID,
		Description:            description,
	}
	if err := insertMovement(tx, movement); err != nil {
		return "", err
	}
	return movement.ID, nil
}

// ConsumeCredit records consumption of sub-ledger credit as a negative
// movement, keeping balance = sum of movements exact. The account row
// must already be locked by the caller.
func ConsumeCredit(tx DBTX, account *models.FractionAccount, amount decimal.Decimal, transactionID *string, description string) (string, error) {
	if !amount.IsPositive() {
		return "", invalid("amount", "must be greater than zero")
	}
	if amount.GreaterThan(account.Balance) {
		return "", invalid("amount", "exceeds the fraction's unallocated credit")
	}
	movement := &models.FractionAccountMovement{
		FractionAccountID:      account.ID,
		Amount:                 amount.Neg(),
		SourceType:             models.MovementQuotaPayment,
		FinancialTransactionID: transactionID,
		Description:            description,
	}
	if err := insertMovement(tx, movement); err != nil {
		return "", err
	}
	account.Balance = account.Balance.Sub(amount)
	return movement.ID, nil
}

// FractionAccountBalance returns a fraction's unallocated credit. Zero
// when the fraction has no sub-ledger account yet.
func FractionAccountBalance(db DBTX, fractionID, condominiumID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM fraction_accounts WHERE fraction_id = $1 AND condominium_id = $2`,
		fractionID, condominiumID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// UpdateMovementDescription rewrites a movement's description after
// liquidation with a human-readable summary of the fees touched.
func UpdateMovementDescription(tx DBTX, movementID, description string) error {
	_, err := tx.Exec(`UPDATE fraction_account_movements SET description = $1 WHERE id = $2`, description, movementID)
	return err
}

// ListMovements returns a fraction account's statement, newest first.
func ListMovements(db DBTX, accountID string) ([]*models.FractionAccountMovement, error) {
	query := `SELECT id, fraction_account_id, amount, source_type, financial_transaction_id, description, created_at
			  FROM fraction_account_movements
			  WHERE fraction_account_id = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := db.Query(query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.FractionAccountMovement
	for rows.Next() {
		m := &models.FractionAccountMovement{}
		var transactionID sql.NullString
		var sourceType string
		if err := rows.Scan(
			&m.ID, &m.FractionAccountID, &m.Amount, &sourceType,
			&transactionID, &m.Description, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.SourceType = models.MovementSource(sourceType)
		if transactionID.Valid {
			m.FinancialTransactionID = &transactionID.String
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
