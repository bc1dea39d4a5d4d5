package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/recipedb/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Uploads      string            `json:"uploads"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// WritableStore is satisfied by an upload store that can self-test
type WritableStore interface {
	Writable() error
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, files WritableStore, log *zap.SugaredLogger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	fail := func(msg string) {
		result.Status = "unhealthy"
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		fail(fmt.Sprintf("Database connection error: %v", err))
		log.Errorw("Health check failed - database connection", "error", err)
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			fail(fmt.Sprintf("Database ping failed: %v", err))
			log.Errorw("Health check failed - database ping", "error", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the upload directory accepts writes
	if files != nil {
		if err := files.Writable(); err != nil {
			result.Uploads = "unwritable"
			result.Details["uploads_error"] = err.Error()
			fail(fmt.Sprintf("Uploads check failed: %v", err))
			log.Errorw("Health check failed - uploads", "error", err)
		} else {
			result.Uploads = "ok"
			result.Details["uploads_dir"] = cfg.UploadsDir
		}
	}

	if result.Healthy() {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}
