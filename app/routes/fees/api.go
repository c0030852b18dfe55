package fees

import (
	"strconv"
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

// GetFeesAPI returns a condominium's fees with optional filtering
func GetFeesAPI(c *fiber.Ctx) error {
	condominiumID := c.Query("condominium_id")
	if condominiumID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "condominium_id is required")
	}

	filters := &database.FeeFilters{
		FractionID:        c.Query("fraction_id"),
		FeeType:           models.FeeType(c.Query("fee_type")),
		Status:            models.FeeStatus(c.Query("status")),
		IncludeHistorical: c.Query("include_historical") == "true",
	}
	if year := c.Query("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "year must be a number")
		}
		filters.Year = &parsed
	}
	if month := c.Query("month"); month != "" {
		parsed, err := strconv.Atoi(month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be a number")
		}
		filters.Month = &parsed
	}

	fees, err := database.ListFees(config.GetDB(), condominiumID, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fees})
}

func GetFeeAPI(c *fiber.Ctx) error {
	fee, err := database.GetFeeByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	paid, err := database.TotalPaid(config.GetDB(), fee.ID)
	if err != nil {
		return err
	}
	payments, err := database.ListFeePayments(config.GetDB(), fee.ID)
	if err != nil {
		return err
	}

	status := models.DeriveFeeStatus(fee.Amount, paid, fee.DueDate, time.Now())
	if fee.Status == models.FeePaid {
		status = models.FeePaid
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"fee":              fee,
			"paid_amount":      paid,
			"effective_status": status,
			"payments":         payments,
		},
	})
}

type feeRequest struct {
	CondominiumID string            `json:"condominium_id"`
	FractionID    string            `json:"fraction_id"`
	PeriodType    models.PeriodType `json:"period_type"`
	PeriodYear    int               `json:"period_year"`
	PeriodMonth   *int              `json:"period_month,omitempty"`
	FeeType       models.FeeType    `json:"fee_type"`
	Amount        decimal.Decimal   `json:"amount"`
	DueDate       string            `json:"due_date"`
	IsHistorical  bool              `json:"is_historical"`
	Reference     *string           `json:"reference,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

// CreateFeeAPI registers a single fee: an extraordinary quota or a
// manually entered historical debt.
func CreateFeeAPI(c *fiber.Ctx) error {
	var req feeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	fee := &models.Fee{
		CondominiumID: req.CondominiumID,
		FractionID:    req.FractionID,
		PeriodType:    req.PeriodType,
		PeriodYear:    req.PeriodYear,
		PeriodMonth:   req.PeriodMonth,
		FeeType:       req.FeeType,
		Amount:        req.Amount,
		BaseAmount:    req.Amount,
		DueDate:       dueDate,
		IsHistorical:  req.IsHistorical,
		Reference:     req.Reference,
		Notes:         req.Notes,
	}
	if err := database.CreateFee(config.GetDB(), fee); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fee})
}

func UpdateFeeAPI(c *fiber.Ctx) error {
	var update database.FeeUpdate
	if err := c.BodyParser(&update); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := database.UpdateFee(config.GetDB(), c.Params("id"), &update); err != nil {
		return err
	}
	fee, err := database.GetFeeByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fee})
}

func DeleteFeeAPI(c *fiber.Ctx) error {
	if err := database.DeleteFee(config.GetDB(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

type feePaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	PaymentDate   string               `json:"payment_date"`
	BankAccountID *string              `json:"bank_account_id,omitempty"`
	Reference     *string              `json:"reference,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
}

// RecordFeePaymentAPI records a manual payment against a specific fee.
func RecordFeePaymentAPI(c *fiber.Ctx) error {
	var req feePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "payment_date must be YYYY-MM-DD")
	}

	payment, err := services.RecordFeePayment(config.GetDB(), appLog, receipts, audit, &services.FeePaymentInput{
		FeeID:         c.Params("id"),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		BankAccountID: req.BankAccountID,
		Reference:     req.Reference,
		Notes:         req.Notes,
		CreatedBy:     auth.CurrentUser(c).ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

// MarkFeeAsPaidAPI is the administrative override for debts settled
// outside the system.
func MarkFeeAsPaidAPI(c *fiber.Ctx) error {
	feeID := c.Params("id")
	if err := database.MarkFeeAsPaid(config.GetDB(), feeID); err != nil {
		return err
	}
	if err := audit.Log("fee_marked_paid", "fee", feeID, auth.CurrentUser(c).ID, decimal.Zero, "administrative override"); err != nil {
		appLog.Error().Err(err).Str("fee_id", feeID).Msg("audit sink failed for fee override")
	}
	return c.JSON(fiber.Map{"success": true})
}

type generateFeesRequest struct {
	CondominiumID string          `json:"condominium_id"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	DueDate       string          `json:"due_date"`
}

// GenerateFeesAPI creates the ordinary fees of a billing period, one
// per active fraction, split by permillage.
func GenerateFeesAPI(c *fiber.Ctx) error {
	var req generateFeesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	created, err := services.GenerateMonthlyFees(config.GetDB(), appLog,
		req.CondominiumID, req.Year, req.Month, req.MonthlyBudget, dueDate)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"created": created}})
}
