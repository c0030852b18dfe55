package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteBankAccountRejectsAccountInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM financial_transactions WHERE bank_account_id = \$1\)`).
		WithArgs("account-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = DeleteBankAccount(db, "account-1")

	assert.ErrorIs(t, err, ErrAccountInUse)
	assert.NoError(t, mock.ExpectationsWereMet(), "no delete may run for a referenced account")
}

func TestDeleteBankAccountRemovesUnusedAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM financial_transactions WHERE bank_account_id = \$1\)`).
		WithArgs("account-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`DELETE FROM bank_accounts WHERE id = \$1`).
		WithArgs("account-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, DeleteBankAccount(db, "account-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBankAccountUnknownAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM financial_transactions WHERE bank_account_id = \$1\)`).
		WithArgs("account-missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`DELETE FROM bank_accounts WHERE id = \$1`).
		WithArgs("account-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, DeleteBankAccount(db, "account-missing"), ErrNotFound)
}
