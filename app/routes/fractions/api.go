package fractions

import (
	"time"

	"github.com/gofiber/fiber/v2"

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

func GetFractionsAPI(c *fiber.Ctx) error {
	condominiumID := c.Query("condominium_id")
	if condominiumID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "condominium_id is required")
	}

	fractions, err := database.ListFractions(config.GetDB(), condominiumID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fractions})
}

type fractionRequest struct {
	CondominiumID string `json:"condominium_id"`
	Label         string `json:"label"`
	OwnerName     string `json:"owner_name"`
	Permillage    int64  `json:"permillage"`
}

func CreateFractionAPI(c *fiber.Ctx) error {
	var req fractionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	fraction := &models.Fraction{
		CondominiumID: req.CondominiumID,
		Label:         req.Label,
		OwnerName:     req.OwnerName,
		Permillage:    req.Permillage,
	}
	if err := database.CreateFraction(config.GetDB(), fraction); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fraction})
}

type fractionUpdateRequest struct {
	Label      string `json:"label"`
	OwnerName  string `json:"owner_name"`
	Permillage int64  `json:"permillage"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func UpdateFractionAPI(c *fiber.Ctx) error {
	fraction, err := database.GetFractionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}

	var req fractionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Label != "" {
		fraction.Label = req.Label
	}
	if req.OwnerName != "" {
		fraction.OwnerName = req.OwnerName
	}
	if req.Permillage > 0 {
		fraction.Permillage = req.Permillage
	}
	if req.IsActive != nil {
		fraction.IsActive = *req.IsActive
	}

	if err := database.UpdateFraction(config.GetDB(), fraction); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fraction})
}

// GetFractionAccountAPI returns the fraction's sub-ledger: current
// unallocated credit and the movement statement.
func GetFractionAccountAPI(c *fiber.Ctx) error {
	fraction, err := database.GetFractionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}

	db := config.GetDB()
	account, err := database.GetOrCreateFractionAccount(db, fraction.ID, fraction.CondominiumID)
	if err != nil {
		return err
	}
	movements, err := database.ListMovements(db, account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"account":   account,
			"movements": movements,
		},
	})
}

// GetFractionBalanceAPI returns just the fraction's unallocated credit,
// without materializing a sub-ledger account for fractions that never
// received money.
func GetFractionBalanceAPI(c *fiber.Ctx) error {
	fraction, err := database.GetFractionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}

	balance, err := database.FractionAccountBalance(config.GetDB(), fraction.ID, fraction.CondominiumID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"balance": balance}})
}

// LiquidateFractionAPI drains the fraction's whole unallocated credit
// against its outstanding fees, oldest first.
func LiquidateFractionAPI(c *fiber.Ctx) error {
	fraction, err := database.GetFractionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}

	result, err := services.LiquidateFractionBalance(config.GetDB(), appLog, receipts, audit,
		fraction.ID, fraction.CondominiumID, auth.CurrentUser(c).ID, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}
