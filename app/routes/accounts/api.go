package accounts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/config"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func GetAccountsAPI(c *fiber.Ctx) error {
	condominiumID := c.Query("condominium_id")
	if condominiumID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "condominium_id is required")
	}

	accounts, err := database.ListActiveBankAccounts(config.GetDB(), condominiumID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": accounts})
}

type accountRequest struct {
	CondominiumID  string          `json:"condominium_id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

func CreateAccountAPI(c *fiber.Ctx) error {
	var req accountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if _, err := database.GetCondominiumByID(config.GetDB(), req.CondominiumID); err != nil {
		return err
	}

	account := &models.BankAccount{
		CondominiumID:  req.CondominiumID,
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
	}
	if err := database.CreateBankAccount(config.GetDB(), account); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": account})
}

func GetAccountBalanceAPI(c *fiber.Ctx) error {
	balance, err := database.AccountBalance(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"account_id": c.Params("id"), "balance": balance},
	})
}

// DeleteAccountAPI removes an account that was never used; accounts
// with journal history are rejected and can only be deactivated.
func DeleteAccountAPI(c *fiber.Ctx) error {
	if err := database.DeleteBankAccount(config.GetDB(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func DeactivateAccountAPI(c *fiber.Ctx) error {
	if err := database.DeactivateBankAccount(config.GetDB(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
