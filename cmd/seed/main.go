package main

import (
	"log"
	"os"
	"strings"

	"github.com/localnerve/recipedb/internal/config"
	"github.com/localnerve/recipedb/internal/database"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/utils"
)

// Provisions the admin account from ADMIN_USERNAME (or ADMIN_EMAIL) and ADMIN_PASSWORD.
// Rerunning rotates the password and restores the admin flag.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if username == "" {
		username = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.Fatal("ADMIN_USERNAME (or ADMIN_EMAIL) and ADMIN_PASSWORD are required")
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalw("Failed to run migrations", "error", err)
	}

	user, err := services.NewAuthService(cfg).ProvisionAdmin(db, username, password)
	if err != nil {
		logger.Fatalw("Failed to provision admin", "username", username, "error", err)
	}

	logger.Infow("Admin ready", "id", user.ID, "username", user.Username)
}
