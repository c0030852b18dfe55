package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FractionAccount is the per-fraction sub-ledger: a holding area for
// money received from a unit that has not yet been matched to a
// specific fee. Balance is kept equal to the sum of the account's
// movements.
type FractionAccount struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FractionID    string          `json:"fraction_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CondominiumID string          `json:"condominium_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Balance       decimal.Decimal `json:"balance" gorm:"not null;type:numeric(14,2);default:0"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Fraction *Fraction `json:"fraction,omitempty" gorm:"foreignKey:FractionID;references:ID"`
}

// FractionAccountMovement is one entry in a fraction's sub-ledger.
// Credits are positive; consumption by liquidation is recorded as a
// negative movement, so the account balance is always the running sum.
type FractionAccountMovement struct {
	ID                     string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FractionAccountID      string          `json:"fraction_account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount                 decimal.Decimal `json:"amount" gorm:"not null;type:numeric(14,2)"`
	SourceType             MovementSource  `json:"source_type" gorm:"not null;type:varchar(30)" validate:"required"`
	FinancialTransactionID *string         `json:"financial_transaction_id,omitempty" gorm:"type:uuid;index"`
	Description            string          `json:"description" gorm:"not null"`
	CreatedAt              time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
