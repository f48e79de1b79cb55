package main

import (
	"log"

	"seb/config"
	"seb/database"
	authRoutes "seb/routers/authRoutes"
	communityRoutes "seb/routers/communityRoutes"
	courseRoutes "seb/routers/courseRoutes"
	notificationRoutes "seb/routers/notificationRoutes"
	userRoutes "seb/routers/userRoutes"
	"seb/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded images
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	communityRoutes.SetupCommunityRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.StartReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
