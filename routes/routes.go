package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "photodesk/controllers"
	"photodesk/middleware"
	"photodesk/utils"
)

// Console sections that exist in the navigation but have no backend yet.
var unimplementedSections = []string{
	"/map",
	"/payments",
	"/integrations",
	"/portfolio",
	"/reviews",
}

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, appLogger *logrus.Logger, identity *utils.IdentityClient) {
	authController := controller.NewAuthController(db, appLogger, identity)

	auth := app.Group("/api/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	auth.Post("/login", middleware.LoginRateLimiter(), authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", middleware.Protected(db), authController.Me)

	appLogger.Info("Authentication routes initialized successfully")
}

func SetupConsoleRoutes(app *fiber.App, db *gorm.DB, appLogger *logrus.Logger, identity *utils.IdentityClient, storage *utils.StorageClient) {
	dashboardController := controller.NewDashboardController(db, appLogger)
	projectController := controller.NewProjectController(db, appLogger, storage)
	photoController := controller.NewPhotoController(db, appLogger, storage)
	checklistController := controller.NewChecklistController(db, appLogger)
	reportController := controller.NewReportController(db, appLogger)
	groupController := controller.NewGroupController(db, appLogger)
	userController := controller.NewUserController(db, appLogger, identity)
	templateController := controller.NewTemplateController(db, appLogger)

	// Read side: page-shaped view models behind the session guard.
	admin := app.Group("/admin", middleware.Protected(db), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	admin.Get("/dashboard", dashboardController.Overview)
	admin.Get("/projects", projectController.List)
	admin.Get("/projects/:id", projectController.Detail)
	admin.Get("/photos", photoController.List)
	admin.Get("/checklists", checklistController.List)
	admin.Get("/checklists/:id", checklistController.Detail)
	admin.Get("/reports", reportController.List)
	admin.Get("/reports/:id", reportController.Detail)
	admin.Get("/groups", groupController.List)
	admin.Get("/templates", templateController.Catalog)
	admin.Get("/users", middleware.RequireElevated(), userController.List)

	for _, path := range unimplementedSections {
		admin.Get(path, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
				"error": "This section is not available yet",
			})
		})
	}

	// Write side: mutations under /api/admin.
	api := app.Group("/api/admin", middleware.Protected(db), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	api.Patch("/photos/:id", photoController.Patch)
	api.Delete("/photos/:id", photoController.Delete)

	elevated := api.Group("", middleware.RequireElevated())
	elevated.Post("/projects", projectController.Create)
	elevated.Post("/reports", reportController.Create)
	elevated.Post("/groups", groupController.Create)
	elevated.Post("/users", userController.Invite)
	elevated.Post("/templates/checklists", templateController.CreateChecklistTemplate)
	elevated.Post("/labels", templateController.CreateLabel)
	elevated.Post("/pages", templateController.CreatePage)
	elevated.Post("/documents", templateController.CreateDocument)

	appLogger.Info("Console routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, appLogger *logrus.Logger, identity *utils.IdentityClient, storage *utils.StorageClient) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, db, appLogger, identity)
	SetupConsoleRoutes(app, db, appLogger, identity, storage)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
