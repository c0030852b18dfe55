package accounts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
)

// SetupAccountsRoutes sets up the bank account routes
func SetupAccountsRoutes(app *fiber.App) {
	api := app.Group("/api/accounts")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetAccountsAPI)
	api.Post("/", CreateAccountAPI)
	api.Get("/:id/balance", GetAccountBalanceAPI)
	api.Delete("/:id", DeleteAccountAPI)
	api.Post("/:id/deactivate", DeactivateAccountAPI)
}
