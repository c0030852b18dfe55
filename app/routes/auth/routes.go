package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/config"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/me", MeAPI)
	auth.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and sets the acting user on the
// request context. Every ledger handler reads the actor from here.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string
	if cookie := c.Cookies("jwt_token"); cookie != "" {
		tokenString = cookie
	} else if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing authentication token")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	user, err := database.GetUserByID(config.GetDB(), claims.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
	}

	c.Locals("user", user)
	return c.Next()
}

// CurrentUser returns the authenticated operator set by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
