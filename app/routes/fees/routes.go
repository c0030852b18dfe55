package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
)

// SetupFeesRoutes sets up the fee ledger routes
func SetupFeesRoutes(app *fiber.App) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetFeesAPI)
	api.Post("/", CreateFeeAPI)
	api.Post("/generate", GenerateFeesAPI)
	api.Get("/:id", GetFeeAPI)
	api.Put("/:id", UpdateFeeAPI)
	api.Delete("/:id", DeleteFeeAPI)
	api.Post("/:id/payments", RecordFeePaymentAPI)
	api.Post("/:id/mark-paid", MarkFeeAsPaidAPI)
}
