package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePayment is one allocation of money to one fee. A fee can carry
// several partial payments; their sum never exceeds the fee amount.
// FinancialTransactionID points at the journal entry the money came
// from, so every payment is traceable to a movement on an account.
type FeePayment struct {
	ID                     string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FeeID                  string          `json:"fee_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FinancialTransactionID *string         `json:"financial_transaction_id,omitempty" gorm:"type:uuid;index"`
	Amount                 decimal.Decimal `json:"amount" gorm:"not null;type:numeric(14,2)" validate:"required"`
	PaymentMethod          PaymentMethod   `json:"payment_method" gorm:"not null;type:varchar(30)" validate:"required"`
	PaymentDate            time.Time       `json:"payment_date" gorm:"not null;index;type:date" validate:"required"`
	Reference              *string         `json:"reference,omitempty"`
	Notes                  *string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy              string          `json:"created_by" gorm:"not null;type:uuid" validate:"required,uuid"`
	CreatedAt              time.Time       `json:"created_at" gorm:"autoCreateTime"`

	Fee *Fee `json:"fee,omitempty" gorm:"foreignKey:FeeID;references:ID"`
}
