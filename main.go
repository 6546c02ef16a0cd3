package main

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"photodesk/config"
	"photodesk/middleware"
	"photodesk/routes"
	"photodesk/utils"
)

func main() {
	appLogger := logrus.New()
	appLogger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		appLogger.Fatalf("Failed to load configuration: %v", err)
	}
	if config.AppConfig.Environment == "development" {
		appLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	defer sentry.Flush(2 * time.Second)

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		appLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// External collaborators
	identity := utils.NewIdentityClient(
		config.AppConfig.Identity.URL,
		config.AppConfig.Identity.AnonKey,
		config.AppConfig.Identity.ServiceKey,
		appLogger,
	)
	storage := utils.NewStorageClient(
		config.AppConfig.Storage.URL,
		config.AppConfig.Storage.Bucket,
		config.AppConfig.Identity.ServiceKey,
		appLogger,
	)

	app := fiber.New()
	app.Use(middleware.CORS())

	routes.SetupRoutes(app, config.DB, appLogger, identity, storage)

	appLogger.Infof("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		appLogger.Fatalf("Failed to start server: %v", err)
	}
}
