package fractions

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
)

// SetupFractionsRoutes sets up the fraction registry and sub-ledger routes
func SetupFractionsRoutes(app *fiber.App) {
	api := app.Group("/api/fractions")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetFractionsAPI)
	api.Post("/", CreateFractionAPI)
	api.Put("/:id", UpdateFractionAPI)
	api.Get("/:id/account", GetFractionAccountAPI)
	api.Get("/:id/balance", GetFractionBalanceAPI)
	api.Post("/:id/liquidate", LiquidateFractionAPI)
}
