package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

// RecordTransactionResult is what recording a journal entry produced:
// the entry itself and, for fraction quota income, the liquidation run
// it triggered.
type RecordTransactionResult struct {
	Transaction *models.FinancialTransaction `json:"transaction"`
	Liquidation *LiquidationResult           `json:"liquidation,omitempty"`
}

// RecordTransaction is the entry point operators go through to move
// money: it records the journal entry and, when the income belongs to
// a fraction, routes the money through the sub-ledger and liquidation
// inside the same unit of work. Collaborators fire only after the
// commit succeeds.
func RecordTransaction(
	db *sql.DB,
	log zerolog.Logger,
	receipts ReceiptGenerator,
	audit AuditSink,
	input *database.TransactionInput,
) (*RecordTransactionResult, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := database.InsertTransaction(tx, input)
	if err != nil {
		return nil, err
	}
	result := &RecordTransactionResult{Transaction: entry}

	if creditsFraction(entry) {
		liquidation, err := creditAndLiquidate(tx, entry)
		if err != nil {
			return nil, err
		}
		result.Liquidation = liquidation
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if audit != nil {
		err := audit.Log("transaction_created", "financial_transaction", entry.ID,
			entry.CreatedBy, entry.Amount, entry.Description)
		if err != nil {
			log.Error().Err(err).Str("transaction_id", entry.ID).Msg("audit sink failed for transaction")
		}
	}
	NotifyLiquidation(log, receipts, audit, entry.CreatedBy, result.Liquidation)
	return result, nil
}

// creditsFraction reports whether the entry routes money through a
// fraction's sub-ledger: a fraction-tagged income with an entry type.
func creditsFraction(entry *models.FinancialTransaction) bool {
	return entry.Type == models.TransactionIncome &&
		entry.FractionID != nil &&
		entry.IncomeEntryType != nil
}

func movementSource(entryType models.IncomeEntryType) models.MovementSource {
	switch entryType {
	case models.IncomeEntryQuota:
		return models.MovementQuotaPayment
	case models.IncomeEntrySpaceReservation:
		return models.MovementSpaceReservation
	default:
		return models.MovementOther
	}
}

// creditAndLiquidate parks the income on the fraction's sub-ledger and,
// for quota payments, immediately liquidates the just-added credit
// against the fraction's outstanding fees.
func creditAndLiquidate(tx database.DBTX, entry *models.FinancialTransaction) (*LiquidationResult, error) {
	account, err := database.GetOrCreateFractionAccount(tx, *entry.FractionID, entry.CondominiumID)
	if err != nil {
		return nil, err
	}
	account, err = database.LockFractionAccount(tx, account.ID)
	if err != nil {
		return nil, err
	}

	movementID, err := database.AddCredit(
		tx, account.ID, entry.Amount, movementSource(*entry.IncomeEntryType),
		&entry.ID, entry.Description,
	)
	if err != nil {
		return nil, err
	}
	account.Balance = account.Balance.Add(entry.Amount)

	if err := database.SetTransactionRelated(tx, entry.ID, models.FractionAccountLink(movementID)); err != nil {
		return nil, fmt.Errorf("failed to link transaction to sub-ledger movement: %v", err)
	}
	entry.SetRelated(models.FractionAccountLink(movementID))

	if *entry.IncomeEntryType != models.IncomeEntryQuota {
		// Reservations and other income park on the sub-ledger but
		// only quota payments trigger liquidation.
		return nil, nil
	}

	return Liquidate(tx, account, entry.CreatedBy, entry.TransactionDate,
		&entry.ID, movementID, entry.Amount, models.MethodBankTransfer)
}

// LiquidateFractionBalance drains a fraction's entire unallocated
// sub-ledger credit against its outstanding fees. This is the explicit
// administrative action; the automatic path triggered by an incoming
// payment only ever consumes the credit it just added.
func LiquidateFractionBalance(
	db *sql.DB,
	log zerolog.Logger,
	receipts ReceiptGenerator,
	audit AuditSink,
	fractionID, condominiumID, actorID string,
	asOfDate time.Time,
) (*LiquidationResult, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	account, err := database.GetOrCreateFractionAccount(tx, fractionID, condominiumID)
	if err != nil {
		return nil, err
	}
	account, err = database.LockFractionAccount(tx, account.ID)
	if err != nil {
		return nil, err
	}

	result, err := Liquidate(tx, account, actorID, asOfDate, nil, "", account.Balance, models.MethodOther)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	NotifyLiquidation(log, receipts, audit, actorID, result)
	return result, nil
}

// FeePaymentInput is a manual payment entry against a specific fee.
type FeePaymentInput struct {
	FeeID         string               `json:"fee_id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	PaymentDate   time.Time            `json:"payment_date"`
	BankAccountID *string              `json:"bank_account_id,omitempty"`
	Reference     *string              `json:"reference,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	CreatedBy     string               `json:"created_by"`
}

// RecordFeePayment records a manual payment against a fee together
// with its journal entry, atomically. Cash payments without an account
// fall back to the condominium's cash account, created on first use.
// The journal entry and the payment link to each other, which makes
// the entry immutable from then on.
func RecordFeePayment(
	db *sql.DB,
	log zerolog.Logger,
	receipts ReceiptGenerator,
	audit AuditSink,
	input *FeePaymentInput,
) (*models.FeePayment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	fee, err := database.GetFeeByID(tx, input.FeeID)
	if err != nil {
		return nil, err
	}

	accountID := ""
	if input.BankAccountID != nil && *input.BankAccountID != "" {
		accountID = *input.BankAccountID
	} else {
		if input.PaymentMethod != models.MethodCash {
			return nil, &database.ValidationError{Field: "bank_account_id", Message: "required unless paying in cash"}
		}
		cash, err := database.GetOrCreateCashAccount(tx, fee.CondominiumID)
		if err != nil {
			return nil, err
		}
		accountID = cash.ID
	}

	entryType := models.IncomeEntryQuota
	entry, err := database.InsertTransaction(tx, &database.TransactionInput{
		CondominiumID:   fee.CondominiumID,
		BankAccountID:   accountID,
		Type:            models.TransactionIncome,
		Amount:          input.Amount,
		TransactionDate: input.PaymentDate,
		Description:     fmt.Sprintf("Payment of fee %s", fee.PeriodLabel()),
		Category:        "quotas",
		Reference:       input.Reference,
		FractionID:      &fee.FractionID,
		IncomeEntryType: &entryType,
		CreatedBy:       input.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	payment := &models.FeePayment{
		FeeID:                  input.FeeID,
		FinancialTransactionID: &entry.ID,
		Amount:                 input.Amount,
		PaymentMethod:          input.PaymentMethod,
		PaymentDate:            input.PaymentDate,
		Reference:              input.Reference,
		Notes:                  input.Notes,
		CreatedBy:              input.CreatedBy,
	}
	if err := database.InsertFeePayment(tx, payment); err != nil {
		return nil, err
	}
	if err := database.SetTransactionRelated(tx, entry.ID, models.FeePaymentLink(payment.ID)); err != nil {
		return nil, fmt.Errorf("failed to link transaction to fee payment: %v", err)
	}

	paid, err := database.TotalPaid(tx, fee.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if audit != nil {
		err := audit.Log("fee_payment_recorded", "fee", fee.ID, input.CreatedBy, input.Amount,
			fmt.Sprintf("Payment of fee %s", fee.PeriodLabel()))
		if err != nil {
			log.Error().Err(err).Str("fee_id", fee.ID).Msg("audit sink failed for fee payment")
		}
	}
	if receipts != nil && paid.GreaterThanOrEqual(fee.Amount) {
		err := receipts.GenerateForFullyPaidFee(fee.ID, payment.ID, fee.CondominiumID, input.CreatedBy)
		if err != nil {
			log.Error().Err(err).Str("fee_id", fee.ID).Msg("receipt generation failed")
		}
	}
	return payment, nil
}
