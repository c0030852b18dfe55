package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelatedLinkRoundTrip(t *testing.T) {
	entry := &FinancialTransaction{}
	assert.True(t, entry.Related().IsZero())

	entry.SetRelated(FeePaymentLink("payment-1"))
	link := entry.Related()
	assert.Equal(t, RelatedFeePayment, link.Type)
	assert.Equal(t, "payment-1", link.ID)

	entry.SetRelated(RelatedLink{})
	assert.True(t, entry.Related().IsZero())
	assert.Nil(t, entry.RelatedType)
	assert.Nil(t, entry.RelatedID)
}

func TestTransactionLocking(t *testing.T) {
	manual := &FinancialTransaction{}
	assert.False(t, manual.IsLocked())
	assert.False(t, manual.IsTransferLeg())

	transfer := &FinancialTransaction{}
	transfer.SetRelated(TransferLink("other-leg"))
	assert.False(t, transfer.IsLocked(), "transfer legs stay editable as a pair")
	assert.True(t, transfer.IsTransferLeg())

	paymentLinked := &FinancialTransaction{}
	paymentLinked.SetRelated(FeePaymentLink("payment-1"))
	assert.True(t, paymentLinked.IsLocked())

	subLedgerLinked := &FinancialTransaction{}
	subLedgerLinked.SetRelated(FractionAccountLink("movement-1"))
	assert.True(t, subLedgerLinked.IsLocked())
}

func TestTransactionSigned(t *testing.T) {
	income := &FinancialTransaction{Type: TransactionIncome, Amount: d("12.30")}
	assert.True(t, income.Signed().Equal(d("12.30")))

	expense := &FinancialTransaction{Type: TransactionExpense, Amount: d("12.30")}
	assert.True(t, expense.Signed().Equal(d("-12.30")))
}
