package condominiums

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/config"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func GetCondominiumsAPI(c *fiber.Ctx) error {
	condominiums, err := database.ListCondominiums(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": condominiums})
}

func GetCondominiumAPI(c *fiber.Ctx) error {
	condominium, err := database.GetCondominiumByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": condominium})
}

type condominiumRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

func CreateCondominiumAPI(c *fiber.Ctx) error {
	var req condominiumRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	condominium := &models.Condominium{Name: req.Name, Address: req.Address}
	if err := database.CreateCondominium(config.GetDB(), condominium); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": condominium})
}

func GetCondominiumSummaryAPI(c *fiber.Ctx) error {
	condominium, err := database.GetCondominiumByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	summary, err := database.GetFinancialSummary(config.GetDB(), condominium.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": summary})
}
