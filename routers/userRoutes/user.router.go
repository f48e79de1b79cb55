package userRoutes

import (
	controllers "seb/controllers/userControllers"
	"seb/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the profile and upload routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, controllers.UpdateProfile)
	userGroup.Post("/avatar", middleware.JWTMiddleware, controllers.UploadAvatar)

	app.Post("/upload", middleware.JWTMiddleware, controllers.UploadImage)
}
