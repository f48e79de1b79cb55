package notificationRoutes

import (
	controllers "seb/controllers/notification"
	"seb/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications")

	notificationGroup.Get("/", middleware.JWTMiddleware, controllers.GetNotifications)
	notificationGroup.Post("/mark-read", middleware.JWTMiddleware, controllers.MarkNotificationsRead)
}
