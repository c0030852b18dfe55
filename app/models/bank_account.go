package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccountName is the name of the lazily created cash account of a
// condominium, used whenever a payment is recorded in cash without an
// explicit bank account.
const CashAccountName = "Caixa"

// BankAccount is a bank or cash account of a condominium. The current
// balance is never stored; it is replayed from the transaction journal
// starting at InitialBalance.
type BankAccount struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CondominiumID  string          `json:"condominium_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name           string          `json:"name" gorm:"not null" validate:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance" gorm:"not null;type:numeric(14,2)"`
	IsActive       bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Condominium *Condominium `json:"condominium,omitempty" gorm:"foreignKey:CondominiumID;references:ID"`
}
