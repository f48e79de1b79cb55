package authRoutes

import (
	controllers "seb/controllers/auth"
	validators "seb/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/exchange", validators.ExchangeCode(), controllers.ExchangeCode)
	authGroup.Post("/dev-login", controllers.DevLogin)
}
