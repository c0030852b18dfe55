package models

// TransactionType defines the kind of a financial transaction.
// A transfer is accepted as input but stored as an expense/income pair.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// IncomeEntryType classifies what an income transaction is for.
type IncomeEntryType string

const (
	IncomeEntryQuota            IncomeEntryType = "quota"
	IncomeEntrySpaceReservation IncomeEntryType = "space_reservation"
	IncomeEntryOther            IncomeEntryType = "other"
)

// RelatedType defines the possible polymorphic links of a transaction.
type RelatedType string

const (
	RelatedTransfer        RelatedType = "transfer"
	RelatedFeePayment      RelatedType = "fee_payment"
	RelatedFractionAccount RelatedType = "fraction_account"
)

// MovementSource classifies the origin of a fraction account movement.
type MovementSource string

const (
	MovementQuotaPayment     MovementSource = "quota_payment"
	MovementSpaceReservation MovementSource = "space_reservation"
	MovementOther            MovementSource = "other"
)

// PeriodType defines the billing period of a fee.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodYearly  PeriodType = "yearly"
)

// FeeType distinguishes ordinary quotas from extraordinary ones.
type FeeType string

const (
	FeeOrdinary FeeType = "ordinary"
	FeeExtra    FeeType = "extra"
)

// FeeStatus is the effective state of a fee, derived at read time
// from amount, paid amount and due date. Only "pending" and "paid"
// are ever stored.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePaid    FeeStatus = "paid"
	FeeOverdue FeeStatus = "overdue"
	FeePartial FeeStatus = "partial"
)

// PaymentMethod defines how a fee payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodOther        PaymentMethod = "other"
)
