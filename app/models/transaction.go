package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransaction is a journal entry: every movement of money in
// or out of a bank account. Amount is always stored positive; the sign
// is implied by Type. A transfer is stored as two rows, an expense on
// the source account and an income on the destination, linked to each
// other through RelatedType/RelatedID.
type FinancialTransaction struct {
	ID                  string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CondominiumID       string           `json:"condominium_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	BankAccountID       string           `json:"bank_account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Type                TransactionType  `json:"type" gorm:"not null;type:varchar(20)" validate:"required,oneof=income expense"`
	Amount              decimal.Decimal  `json:"amount" gorm:"not null;type:numeric(14,2)" validate:"required"`
	TransactionDate     time.Time        `json:"transaction_date" gorm:"not null;index;type:date" validate:"required"`
	Description         string           `json:"description" gorm:"not null" validate:"required"`
	Category            string           `json:"category,omitempty" gorm:"type:varchar(100)"`
	Reference           *string          `json:"reference,omitempty"`
	FractionID          *string          `json:"fraction_id,omitempty" gorm:"index;type:uuid"`
	IncomeEntryType     *IncomeEntryType `json:"income_entry_type,omitempty" gorm:"type:varchar(30)"`
	RelatedType         *RelatedType     `json:"related_type,omitempty" gorm:"type:varchar(30);index"`
	RelatedID           *string          `json:"related_id,omitempty" gorm:"type:uuid;index"`
	TransferToAccountID *string          `json:"transfer_to_account_id,omitempty" gorm:"type:uuid"`
	CreatedBy           string           `json:"created_by" gorm:"not null;type:uuid" validate:"required,uuid"`
	CreatedAt           time.Time        `json:"created_at" gorm:"autoCreateTime"`

	BankAccount *BankAccount `json:"bank_account,omitempty" gorm:"foreignKey:BankAccountID;references:ID"`
	Fraction    *Fraction    `json:"fraction,omitempty" gorm:"foreignKey:FractionID;references:ID"`
}

// RelatedLink is the application-level view of the polymorphic
// related_type/related_id columns. The zero value means "not linked".
type RelatedLink struct {
	Type RelatedType
	ID   string
}

// TransferLink links a transfer leg to its counterpart transaction.
func TransferLink(transactionID string) RelatedLink {
	return RelatedLink{Type: RelatedTransfer, ID: transactionID}
}

// FeePaymentLink links a transaction to the fee payment it settles.
func FeePaymentLink(paymentID string) RelatedLink {
	return RelatedLink{Type: RelatedFeePayment, ID: paymentID}
}

// FractionAccountLink links a transaction to the sub-ledger movement
// it credited.
func FractionAccountLink(movementID string) RelatedLink {
	return RelatedLink{Type: RelatedFractionAccount, ID: movementID}
}

func (l RelatedLink) IsZero() bool {
	return l.Type == "" && l.ID == ""
}

// Related reconstructs the tagged link from the flat nullable columns.
func (t *FinancialTransaction) Related() RelatedLink {
	if t.RelatedType == nil || t.RelatedID == nil {
		return RelatedLink{}
	}
	return RelatedLink{Type: *t.RelatedType, ID: *t.RelatedID}
}

// SetRelated writes the tagged link back into the flat columns.
func (t *FinancialTransaction) SetRelated(l RelatedLink) {
	if l.IsZero() {
		t.RelatedType = nil
		t.RelatedID = nil
		return
	}
	rt, id := l.Type, l.ID
	t.RelatedType = &rt
	t.RelatedID = &id
}

// IsLocked reports whether the transaction is immutable. Entries linked
// to a fee payment or to a fraction account movement protect ledger
// integrity and reject edits and deletes.
func (t *FinancialTransaction) IsLocked() bool {
	switch t.Related().Type {
	case RelatedFeePayment, RelatedFractionAccount:
		return true
	}
	return false
}

// IsTransferLeg reports whether the transaction is one half of a
// transfer pair.
func (t *FinancialTransaction) IsTransferLeg() bool {
	return t.Related().Type == RelatedTransfer
}

// Signed returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t *FinancialTransaction) Signed() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionWithBalance pairs a journal entry with its running
// balance, computed over the account's full chronological history.
type TransactionWithBalance struct {
	FinancialTransaction
	RunningBalance decimal.Decimal `json:"running_balance"`
}
