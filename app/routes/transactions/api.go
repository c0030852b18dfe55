package transactions

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/config"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/logger"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/services"
)

var (
	appLog   = logger.New()
	receipts services.ReceiptGenerator = &services.LogReceiptGenerator{Logger: appLog}
	audit    services.AuditSink        = &services.LogAuditSink{Logger: appLog}
)

const dateLayout = "2006-01-02"

// GetTransactionsAPI lists a condominium's journal with running
// balances, newest first.
func GetTransactionsAPI(c *fiber.Ctx) error {
	condominiumID := c.Query("condominium_id")
	if condominiumID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "condominium_id is required")
	}

	filters := &database.TransactionFilters{
		BankAccountID: c.Query("bank_account_id"),
		Type:          models.TransactionType(c.Query("type")),
		Category:      c.Query("category"),
		FractionID:    c.Query("fraction_id"),
	}
	if from := c.Query("date_from"); from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		filters.DateFrom = &parsed
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := time.Parse(dateLayout, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		filters.DateTo = &parsed
	}

	entries, err := database.ListTransactionsWithRunningBalance(config.GetDB(), condominiumID, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": entries})
}

type transactionRequest struct {
	CondominiumID       string                  `json:"condominium_id"`
	BankAccountID       string                  `json:"bank_account_id"`
	Type                models.TransactionType  `json:"type"`
	Amount              decimal.Decimal         `json:"amount"`
	TransactionDate     string                  `json:"transaction_date"`
	Description         string                  `json:"description"`
	Category            string                  `json:"category"`
	Reference           *string                 `json:"reference,omitempty"`
	FractionID          *string                 `json:"fraction_id,omitempty"`
	IncomeEntryType     *models.IncomeEntryType `json:"income_entry_type,omitempty"`
	TransferToAccountID *string                 `json:"transfer_to_account_id,omitempty"`
}

// CreateTransactionAPI records an income, expense or transfer. Fraction
// quota income flows through the sub-ledger and liquidation; the
// response carries the liquidation outcome when one ran.
func CreateTransactionAPI(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	date, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "transaction_date must be YYYY-MM-DD")
	}

	result, err := services.RecordTransaction(config.GetDB(), appLog, receipts, audit, &database.TransactionInput{
		CondominiumID:       req.CondominiumID,
		BankAccountID:       req.BankAccountID,
		Type:                req.Type,
		Amount:              req.Amount,
		TransactionDate:     date,
		Description:         req.Description,
		Category:            req.Category,
		Reference:           req.Reference,
		FractionID:          req.FractionID,
		IncomeEntryType:     req.IncomeEntryType,
		TransferToAccountID: req.TransferToAccountID,
		CreatedBy:           auth.CurrentUser(c).ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": result})
}

func UpdateTransactionAPI(c *fiber.Ctx) error {
	var update database.TransactionUpdate
	if err := c.BodyParser(&update); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := database.UpdateTransaction(config.GetDB(), c.Params("id"), &update); err != nil {
		return err
	}
	entry, err := database.GetTransactionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": entry})
}

func DeleteTransactionAPI(c *fiber.Ctx) error {
	if err := database.DeleteTransaction(config.GetDB(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
