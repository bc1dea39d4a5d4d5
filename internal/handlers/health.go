package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/config"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and dependency health
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Files  services.WritableStore
	Log    *zap.SugaredLogger
}

// Health handles GET /health
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.OKResponseStruct
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.OKResponse(c)
}

// Details handles GET /health/details
// @Summary Dependency health report
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health/details [get]
func (h *HealthHandler) Details(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Files, h.Log)
	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}
	return utils.SuccessResponse(c, result, status)
}
