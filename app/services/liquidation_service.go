package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

// PlannedPayment is one allocation the liquidation walk decided on.
type PlannedPayment struct {
	Fee       *models.FeeWithPaid
	Amount    decimal.Decimal
	FullyPays bool
}

// AllocationPlan is the outcome of walking a fraction's outstanding
// fees with an incoming credit.
type AllocationPlan struct {
	Payments  []PlannedPayment
	Allocated decimal.Decimal
	Remainder decimal.Decimal
}

// PlanAllocation walks the fees in the given order (callers pass them
// oldest due date first) and splits the credit across their pending
// amounts: full payments while the credit covers them, then at most
// one partial payment when it runs out. Fees with nothing pending are
// skipped. Pure function; the database writes happen in Liquidate.
func PlanAllocation(fees []*models.FeeWithPaid, credit decimal.Decimal) *AllocationPlan {
	plan := &AllocationPlan{Allocated: decimal.Zero, Remainder: credit}
	remaining := credit

	for _, fee := range fees {
		if !remaining.IsPositive() {
			break
		}
		pending := fee.PendingAmount()
		if !pending.IsPositive() {
			continue
		}
		if remaining.GreaterThanOrEqual(pending) {
			plan.Payments = append(plan.Payments, PlannedPayment{Fee: fee, Amount: pending, FullyPays: true})
			remaining = remaining.Sub(pending)
			continue
		}
		plan.Payments = append(plan.Payments, PlannedPayment{Fee: fee, Amount: remaining, FullyPays: false})
		remaining = decimal.Zero
	}

	plan.Remainder = remaining
	plan.Allocated = credit.Sub(remaining)
	return plan
}

// Summary renders the human-readable recap written back onto the
// originating journal entry and sub-ledger movement, e.g.
// "Fee 03/2025, Fee 04/2025 (partial)".
func (p *AllocationPlan) Summary() string {
	if len(p.Payments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Payments))
	for _, payment := range p.Payments {
		label := fmt.Sprintf("Fee %s", payment.Fee.PeriodLabel())
		if payment.Fee.FeeType == models.FeeExtra {
			label = fmt.Sprintf("Extra fee %s", payment.Fee.PeriodLabel())
		}
		if !payment.FullyPays {
			label += " (partial)"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}

// LiquidationResult reports what a liquidation run touched.
type LiquidationResult struct {
	CondominiumID string                   `json:"condominium_id"`
	FractionID    string                   `json:"fraction_id"`
	FullyPaid     []string                 `json:"fully_paid"`
	PartiallyPaid map[string]string        `json:"partially_paid"`
	Payments      []*models.FeePayment     `json:"payments"`
	Allocated     decimal.Decimal          `json:"allocated"`
	Remainder     decimal.Decimal          `json:"remainder"`
	Summary       string                   `json:"summary"`
	receipts      []receiptRequest
}

type receiptRequest struct {
	feeID     string
	paymentID string
}

// Liquidate applies a credit of the given amount against the
// fraction's outstanding fees, oldest due date first. It runs inside
// the caller's unit of work: fee payments, the sub-ledger debit and
// the description rewrites all commit or roll back together. The
// fraction account row must already be locked by the caller.
//
// Only the triggering credit is consumed, never the fraction's whole
// unallocated balance: a remainder stays on the sub-ledger and carries
// forward to the next liquidation.
func Liquidate(
	tx database.DBTX,
	account *models.FractionAccount,
	actorID string,
	asOfDate time.Time,
	sourceTransactionID *string,
	creditMovementID string,
	credit decimal.Decimal,
	method models.PaymentMethod,
) (*LiquidationResult, error) {
	result := &LiquidationResult{
		CondominiumID: account.CondominiumID,
		FractionID:    account.FractionID,
		PartiallyPaid: make(map[string]string),
		Allocated:     decimal.Zero,
		Remainder:     credit,
	}
	if !credit.IsPositive() {
		return result, nil
	}

	fees, err := database.PendingFeesForLiquidation(tx, account.FractionID, asOfDate)
	if err != nil {
		return nil, err
	}

	plan := PlanAllocation(fees, credit)
	if len(plan.Payments) == 0 {
		// Nothing outstanding: the whole credit stays on the
		// sub-ledger for future use.
		return result, nil
	}

	for _, planned := range plan.Payments {
		payment := &models.FeePayment{
			FeeID:                  planned.Fee.ID,
			FinancialTransactionID: sourceTransactionID,
			Amount:                 planned.Amount,
			PaymentMethod:          method,
			PaymentDate:            asOfDate,
			CreatedBy:              actorID,
		}
		if err := database.InsertFeePayment(tx, payment); err != nil {
			return nil, err
		}
		result.Payments = append(result.Payments, payment)
		if planned.FullyPays {
			result.FullyPaid = append(result.FullyPaid, planned.Fee.ID)
			result.receipts = append(result.receipts, receiptRequest{feeID: planned.Fee.ID, paymentID: payment.ID})
		} else {
			result.PartiallyPaid[planned.Fee.ID] = payment.ID
		}
	}

	summary := plan.Summary()
	if _, err := database.ConsumeCredit(tx, account, plan.Allocated, sourceTransactionID, "Liquidation: "+summary); err != nil {
		return nil, err
	}
	if creditMovementID != "" {
		if err := database.UpdateMovementDescription(tx, creditMovementID, summary); err != nil {
			return nil, err
		}
	}
	if sourceTransactionID != nil {
		if err := database.UpdateTransactionDescription(tx, *sourceTransactionID, summary); err != nil {
			return nil, err
		}
	}

	result.Allocated = plan.Allocated
	result.Remainder = plan.Remainder
	result.Summary = summary
	return result, nil
}

// NotifyLiquidation fires the post-commit collaborators: an audit
// event for the run and a receipt per fully paid fee. Failures are
// logged and swallowed; the ledger write is already durable and must
// not be undone by a notification problem.
func NotifyLiquidation(log zerolog.Logger, receipts ReceiptGenerator, audit AuditSink, actorID string, result *LiquidationResult) {
	if result == nil || len(result.Payments) == 0 {
		return
	}

	if audit != nil {
		err := audit.Log("liquidation", "fraction", result.FractionID, actorID, result.Allocated, result.Summary)
		if err != nil {
			log.Error().Err(err).Str("fraction_id", result.FractionID).Msg("audit sink failed for liquidation")
		}
	}
	if receipts != nil {
		for _, request := range result.receipts {
			err := receipts.GenerateForFullyPaidFee(request.feeID, request.paymentID, result.CondominiumID, actorID)
			if err != nil {
				log.Error().Err(err).Str("fee_id", request.feeID).Msg("receipt generation failed")
			}
		}
	}
}
