package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Fee is a charge owed by a fraction: an ordinary periodic quota, an
// extraordinary quota, or a historical debt predating system adoption.
// Status stores only the coarse pending/paid flag; the status shown to
// users is derived at read time, see DeriveFeeStatus.
type Fee struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CondominiumID string          `json:"condominium_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FractionID    string          `json:"fraction_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PeriodType    PeriodType      `json:"period_type" gorm:"not null;type:varchar(10)" validate:"required,oneof=monthly yearly"`
	PeriodYear    int             `json:"period_year" gorm:"not null" validate:"required"`
	PeriodMonth   *int            `json:"period_month,omitempty"`
	FeeType       FeeType         `json:"fee_type" gorm:"not null;type:varchar(10);default:'ordinary'" validate:"required,oneof=ordinary extra"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:numeric(14,2)" validate:"required"`
	BaseAmount    decimal.Decimal `json:"base_amount" gorm:"not null;type:numeric(14,2)"`
	DueDate       time.Time       `json:"due_date" gorm:"not null;index;type:date" validate:"required"`
	Status        FeeStatus       `json:"status" gorm:"not null;type:varchar(10);default:'pending'"`
	IsHistorical  bool            `json:"is_historical" gorm:"default:false;index"`
	Reference     *string         `json:"reference,omitempty"`
	Notes         *string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Fraction *Fraction `json:"fraction,omitempty" gorm:"foreignKey:FractionID;references:ID"`
}

// PeriodLabel renders the fee's billing period for descriptions and
// receipts: "03/2025" for monthly fees, "2025" for yearly ones.
func (f *Fee) PeriodLabel() string {
	if f.PeriodType == PeriodMonthly && f.PeriodMonth != nil {
		return fmt.Sprintf("%02d/%d", *f.PeriodMonth, f.PeriodYear)
	}
	return fmt.Sprintf("%d", f.PeriodYear)
}

// DeriveFeeStatus computes the effective status of a fee from its
// amount, the sum already paid and the due date. It is a pure function
// so the displayed status can never drift out of sync with payments.
func DeriveFeeStatus(amount, paid decimal.Decimal, dueDate, today time.Time) FeeStatus {
	if paid.GreaterThanOrEqual(amount) {
		return FeePaid
	}
	if dueDate.Before(truncateToDay(today)) {
		return FeeOverdue
	}
	if paid.IsPositive() {
		return FeePartial
	}
	return FeePending
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FeeWithPaid pairs a fee with the sum of its payments and the status
// derived from them.
type FeeWithPaid struct {
	Fee
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	EffectiveStatus FeeStatus       `json:"effective_status"`
}

// PendingAmount is what remains to be paid on the fee.
func (f *FeeWithPaid) PendingAmount() decimal.Decimal {
	return f.Amount.Sub(f.PaidAmount)
}
