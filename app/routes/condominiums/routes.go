package condominiums

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
)

// SetupCondominiumsRoutes sets up the condominium registry routes
func SetupCondominiumsRoutes(app *fiber.App) {
	api := app.Group("/api/condominiums")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetCondominiumsAPI)
	api.Post("/", CreateCondominiumAPI)
	api.Get("/:id", GetCondominiumAPI)
	api.Get("/:id/summary", GetCondominiumSummaryAPI)
}
