package services

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReceiptGenerator produces a receipt for a fully paid fee. It runs
// only after the ledger commit; a failure is logged and never undoes
// the financial write.
type ReceiptGenerator interface {
	GenerateForFullyPaidFee(feeID, paymentID, condominiumID, actorID string) error
}

// AuditSink records ledger events for the audit trail. Best-effort: a
// failing sink must never abort the ledger transaction.
type AuditSink interface {
	Log(eventType, entityType, entityID, actorID string, amount decimal.Decimal, description string) error
}

// LogReceiptGenerator is the default receipt collaborator: it only
// writes a log line. Real receipt generation plugs in behind the same
// interface.
type LogReceiptGenerator struct {
	Logger zerolog.Logger
}

func (g *LogReceiptGenerator) GenerateForFullyPaidFee(feeID, paymentID, condominiumID, actorID string) error {
	g.Logger.Info().
		Str("fee_id", feeID).
		Str("payment_id", paymentID).
		Str("condominium_id", condominiumID).
		Str("actor_id", actorID).
		Msg("receipt requested for fully paid fee")
	return nil
}

// LogAuditSink is the default audit collaborator, logging events
// instead of persisting them.
type LogAuditSink struct {
	Logger zerolog.Logger
}

func (s *LogAuditSink) Log(eventType, entityType, entityID, actorID string, amount decimal.Decimal, description string) error {
	s.Logger.Info().
		Str("event", eventType).
		Str("entity_type", entityType).
		Str("entity_id", entityID).
		Str("actor_id", actorID).
		Str("amount", amount.String()).
		Str("description", description).
		Msg("audit event")
	return nil
}
