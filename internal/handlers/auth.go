package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	DB   *gorm.DB
	Auth *services.AuthService
}

// Register handles POST /auth/register
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.Credentials true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.Credentials
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	user, err := h.Auth.Register(scopedDB(c, h.DB), in)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}, fiber.StatusCreated)
}

// Login handles POST /auth/login
// @Summary Log in and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.Credentials true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in services.Credentials
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	res, err := h.Auth.Login(scopedDB(c, h.DB), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}
