package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/config"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/accounts"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/condominiums"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/fees"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/fractions"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/transactions"
)

// customErrorHandler maps ledger errors onto HTTP statuses: validation
// problems are 400, unknown records 404, integrity conflicts 409.
// Anything unrecognized stays a generic 500 so storage failures never
// leak internals.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	var validationErr *database.ValidationError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.As(err, &validationErr):
		code = fiber.StatusBadRequest
		message = validationErr.Error()
	case errors.Is(err, database.ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, database.ErrInsufficientFunds),
		errors.Is(err, database.ErrFeeOverpaid),
		errors.Is(err, database.ErrTransactionLocked),
		errors.Is(err, database.ErrFeeHasPayments),
		errors.Is(err, database.ErrCondominiumMismatch),
		errors.Is(err, database.ErrAccountInUse):
		code = fiber.StatusConflict
		message = err.Error()
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	auth.SetupAuthRoutes(app)
	condominiums.SetupCondominiumsRoutes(app)
	fractions.SetupFractionsRoutes(app)
	accounts.SetupAccountsRoutes(app)
	transactions.SetupTransactionsRoutes(app)
	fees.SetupFeesRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Printf("Server starting on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
