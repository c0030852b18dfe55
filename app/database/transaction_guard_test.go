package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

var bankAccountTestColumns = []string{
	"id", "condominium_id", "name", "initial_balance", "is_active", "created_at", "updated_at",
}

var fractionTestColumns = []string{
	"id", "condominium_id", "label", "owner_name", "permillage", "is_active", "created_at", "updated_at",
}

func fractionIncomeInput(fractionID string) *TransactionInput {
	entryType := models.IncomeEntryQuota
	input := validInput()
	input.Type = models.TransactionIncome
	input.FractionID = &fractionID
	input.IncomeEntryType = &entryType
	return input
}

func expectAccountLock(mock sqlmock.Sqlmock, accountID, condominiumID string) {
	now := time.Now()
	mock.ExpectQuery(`FROM bank_accounts WHERE id = \$1 FOR UPDATE`).
		WithArgs(accountID).
		WillReturnRows(sqlmock.NewRows(bankAccountTestColumns).
			AddRow(accountID, condominiumID, "Main account", "100.00", true, now, now))
}

func TestInsertTransactionRejectsForeignFraction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	expectAccountLock(mock, "account-1", "condo-1")
	mock.ExpectQuery(`FROM fractions WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs("fraction-9").
		WillReturnRows(sqlmock.NewRows(fractionTestColumns).
			AddRow("fraction-9", "condo-2", "3A", "Some Owner", int64(120), true, now, now))

	entry, err := InsertTransaction(db, fractionIncomeInput("fraction-9"))

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrCondominiumMismatch)
	assert.NoError(t, mock.ExpectationsWereMet(), "no row may be written after the rejection")
}

func TestInsertTransactionRejectsUnknownFraction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectAccountLock(mock, "account-1", "condo-1")
	mock.ExpectQuery(`FROM fractions WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs("fraction-missing").
		WillReturnError(sql.ErrNoRows)

	entry, err := InsertTransaction(db, fractionIncomeInput("fraction-missing"))

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTransactionRejectsForeignAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectAccountLock(mock, "account-1", "condo-2")

	entry, err := InsertTransaction(db, validInput())

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrCondominiumMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}
