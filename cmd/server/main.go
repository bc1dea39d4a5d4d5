package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/recipedb/internal/config"
	"github.com/localnerve/recipedb/internal/database"
	"github.com/localnerve/recipedb/internal/handlers"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/storage"
	"github.com/localnerve/recipedb/internal/utils"

	_ "github.com/localnerve/recipedb/docs/api" // Swagger docs
)

// @title RecipeDB API
// @version 1.0.0
// @description Recipe sharing service with ingredients, steps, media and feedback
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/recipedb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3001
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalw("Failed to run migrations", "error", err)
	}

	uploads, err := storage.NewUploads(cfg.UploadsDir, cfg.UploadsPrefix, cfg.MaxUploadBytes, logger)
	if err != nil {
		logger.Fatalw("Failed to prepare uploads directory", "dir", cfg.UploadsDir, "error", err)
	}

	deps := handlers.Deps{
		Config:  cfg,
		DB:      db,
		Auth:    services.NewAuthService(cfg),
		Uploads: uploads,
		Log:     logger,
	}

	app := handlers.NewApp(deps, func(app *fiber.App) {
		// Prometheus metrics
		prometheus := fiberprometheus.New("recipedb")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)

		// Swagger documentation
		app.Get("/swagger/*", swagger.HandlerDefault)
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	logger.Infow("Starting server", "port", cfg.Port, "env", cfg.Env, "db", cfg.DBType)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalw("Failed to start server", "error", err)
	}

	logger.Info("Server stopped")
}
