package transactions

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
)

// SetupTransactionsRoutes sets up the financial journal routes
func SetupTransactionsRoutes(app *fiber.App) {
	api := app.Group("/api/transactions")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetTransactionsAPI)
	api.Post("/", CreateTransactionAPI)
	api.Put("/:id", UpdateTransactionAPI)
	api.Delete("/:id", DeleteTransactionAPI)
}
