package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/utils"
)

func stepID(c *fiber.Ctx) (uint64, error) {
	return parseID(c, "stepId", "Bad stepId")
}

// AddMedia handles POST /recipes/:id/media
// @Summary Attach media by URL
// @Description media_type photo is stored as image
// @Tags Media
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.MediaInput true "Media"
// @Success 201 {object} models.RecipeMedia
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/media [post]
func (h *RecipeHandler) AddMedia(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	var in services.MediaInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	media, err := services.AddRecipeMedia(scopedDB(c, h.DB), principal(c), id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, media, fiber.StatusCreated)
}

// UploadMedia handles POST /recipes/:id/media/upload
// @Summary Upload a media file
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param id path int true "Recipe ID"
// @Param file formData file true "Image or video"
// @Param media_type formData string false "photo, image or video"
// @Param caption formData string false "Caption"
// @Param is_primary formData string false "true to make primary"
// @Param sort_order formData int false "Sort order"
// @Success 201 {object} models.RecipeMedia
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/media/upload [post]
func (h *RecipeHandler) UploadMedia(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	media, err := services.UploadRecipeMedia(scopedDB(c, h.DB), principal(c), id, uploadInput(c, true), h.Files)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, media, fiber.StatusCreated)
}

// UpdateMedia handles PATCH /recipes/:id/media/:mediaId
// @Summary Change caption or primary flag
// @Tags Media
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param mediaId path int true "Media ID"
// @Success 200 {object} models.RecipeMedia
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/media/{mediaId} [patch]
func (h *RecipeHandler) UpdateMedia(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	mediaID, err := parseID(c, "mediaId", "Bad id")
	if err != nil {
		return err
	}
	var patch services.MediaPatch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}
	media, err := services.UpdateRecipeMedia(scopedDB(c, h.DB), principal(c), id, mediaID, patch)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, media, fiber.StatusOK)
}

// DeleteMedia handles DELETE /recipes/:id/media/:mediaId
// @Summary Delete media
// @Description Hosted files are removed best effort
// @Tags Media
// @Produce json
// @Param id path int true "Recipe ID"
// @Param mediaId path int true "Media ID"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/media/{mediaId} [delete]
func (h *RecipeHandler) DeleteMedia(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	mediaID, err := parseID(c, "mediaId", "Bad id")
	if err != nil {
		return err
	}
	if err := services.DeleteRecipeMedia(scopedDB(c, h.DB), principal(c), id, mediaID, h.Files); err != nil {
		return err
	}
	return utils.OKResponse(c)
}

// AddStepMedia handles POST /recipes/steps/:stepId/media
// @Summary Attach media to a step by URL
// @Tags Media
// @Accept json
// @Produce json
// @Param stepId path int true "Step ID"
// @Param body body services.StepMediaInput true "Media"
// @Success 201 {object} models.RecipeStepMedia
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/steps/{stepId}/media [post]
func (h *RecipeHandler) AddStepMedia(c *fiber.Ctx) error {
	id, err := stepID(c)
	if err != nil {
		return err
	}
	var in services.StepMediaInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	media, err := services.AddStepMedia(scopedDB(c, h.DB), principal(c), id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, media, fiber.StatusCreated)
}

// UploadStepMedia handles POST /recipes/steps/:stepId/media/upload
// @Summary Upload a media file for a step
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param stepId path int true "Step ID"
// @Param file formData file true "Image or video"
// @Param media_type formData string false "photo, image or video"
// @Param caption formData string false "Caption"
// @Param sort_order formData int false "Sort order"
// @Success 201 {object} models.RecipeStepMedia
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/steps/{stepId}/media/upload [post]
func (h *RecipeHandler) UploadStepMedia(c *fiber.Ctx) error {
	id, err := stepID(c)
	if err != nil {
		return err
	}
	media, err := services.UploadStepMedia(scopedDB(c, h.DB), principal(c), id, uploadInput(c, false), h.Files)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, media, fiber.StatusCreated)
}
