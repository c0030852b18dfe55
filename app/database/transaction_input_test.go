package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func validInput() *TransactionInput {
	return &TransactionInput{
		CondominiumID:   "condo-1",
		BankAccountID:   "account-1",
		Type:            models.TransactionExpense,
		Amount:          d("25.00"),
		TransactionDate: day("2025-03-10"),
		Description:     "Elevator maintenance",
		Category:        "maintenance",
		CreatedBy:       "user-1",
	}
}

func TestTransactionInputValidate(t *testing.T) {
	assert.NoError(t, validInput().validate())
}

func TestTransactionInputValidateRejections(t *testing.T) {
	sameAccount := "account-1"

	cases := []struct {
		name   string
		mutate func(*TransactionInput)
		field  string
	}{
		{"zero amount", func(in *TransactionInput) { in.Amount = d("0") }, "amount"},
		{"negative amount", func(in *TransactionInput) { in.Amount = d("-5") }, "amount"},
		{"blank description", func(in *TransactionInput) { in.Description = "   " }, "description"},
		{"unknown type", func(in *TransactionInput) { in.Type = "refund" }, "type"},
		{"transfer without destination", func(in *TransactionInput) {
			in.Type = models.TransactionTransfer
		}, "transfer_to_account_id"},
		{"transfer to same account", func(in *TransactionInput) {
			in.Type = models.TransactionTransfer
			in.TransferToAccountID = &sameAccount
		}, "transfer_to_account_id"},
		{"zero date", func(in *TransactionInput) { in.TransactionDate = time.Time{} }, "transaction_date"},
		{"missing actor", func(in *TransactionInput) { in.CreatedBy = "" }, "created_by"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(input)
			err := input.validate()
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestTransactionInputValidateTransfer(t *testing.T) {
	destination := "account-2"
	input := validInput()
	input.Type = models.TransactionTransfer
	input.TransferToAccountID = &destination
	assert.NoError(t, input.validate())
}
