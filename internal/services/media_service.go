package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/storage"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/localnerve/recipedb/internal/utils"
	"gorm.io/gorm"
)

const maxCaption = 255

// FileStore persists uploads and removes them again
type FileStore interface {
	Save(fh *multipart.FileHeader) (*storage.StoredFile, error)
	FileRemover
}

// MediaInput is the add recipe media body for an external URL
type MediaInput struct {
	MediaType string  `json:"media_type" validate:"required,oneof=photo image video"`
	URL       string  `json:"url" validate:"required,url"`
	Caption   *string `json:"caption" validate:"omitempty,max=255"`
	IsPrimary *bool   `json:"is_primary"`
	SortOrder *int    `json:"sort_order"`
}

// StepMediaInput is the add step media body for an external URL
type StepMediaInput struct {
	MediaType string  `json:"media_type" validate:"required,oneof=photo image video"`
	URL       string  `json:"url" validate:"required,url"`
	Caption   *string `json:"caption" validate:"omitempty,max=255"`
	SortOrder *int    `json:"sort_order"`
}

// UploadInput carries the multipart fields of a media upload
type UploadInput struct {
	File      *multipart.FileHeader
	MediaType string
	Caption   string
	IsPrimary bool
	SortOrder *int
}

// MediaPatch is the update media body
type MediaPatch struct {
	Caption   types.Optional[string] `json:"caption"`
	IsPrimary types.Optional[bool]   `json:"is_primary"`
}

// parseUpload checks the upload fields, defaulting media_type to photo
func parseUpload(in UploadInput) (models.MediaType, *string, error) {
	if in.File == nil {
		return "", nil, types.NewValidationError("Missing file")
	}
	raw := in.MediaType
	if strings.TrimSpace(raw) == "" {
		raw = "photo"
	}
	mediaType, ok := models.ParseMediaType(raw)
	if !ok {
		return "", nil, types.NewValidationError("Invalid media_type")
	}
	caption := trimmedOrNil(&in.Caption)
	if caption != nil && len(*caption) > maxCaption {
		return "", nil, fieldError("caption", "caption must be at most 255 characters long")
	}
	return mediaType, caption, nil
}

// saveUpload stores the file, mapping storage failures to the error taxonomy
func saveUpload(files FileStore, fh *multipart.FileHeader) (*storage.StoredFile, error) {
	if files == nil {
		return nil, errors.New("uploads are not configured")
	}
	stored, err := files.Save(fh)
	switch {
	case errors.Is(err, storage.ErrMissingFile):
		return nil, types.NewValidationError("Missing file")
	case errors.Is(err, storage.ErrFileTooLarge):
		return nil, types.NewValidationError("File too large")
	case err != nil:
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	return stored, nil
}

// insertRecipeMedia appends media to a recipe, unsetting any other primary first
func insertRecipeMedia(tx *gorm.DB, media *models.RecipeMedia, sortOrder *int) error {
	if sortOrder != nil {
		media.SortOrder = *sortOrder
	} else {
		next, err := nextSortOrder(tx, &models.RecipeMedia{}, "recipe_id", media.RecipeID)
		if err != nil {
			return err
		}
		media.SortOrder = next
	}

	if media.IsPrimary {
		if err := unsetPrimary(tx, media.RecipeID); err != nil {
			return err
		}
	}
	return tx.Create(media).Error
}

func unsetPrimary(tx *gorm.DB, recipeID uint64) error {
	err := tx.Model(&models.RecipeMedia{}).
		Where("recipe_id = ? AND is_primary = ?", recipeID, true).
		Update("is_primary", false).Error
	if err != nil {
		return fmt.Errorf("failed to unset primary media: %w", err)
	}
	return nil
}

func insertStepMedia(tx *gorm.DB, media *models.RecipeStepMedia, sortOrder *int) error {
	if sortOrder != nil {
		media.SortOrder = *sortOrder
	} else {
		next, err := nextSortOrder(tx, &models.RecipeStepMedia{}, "step_id", media.StepID)
		if err != nil {
			return err
		}
		media.SortOrder = next
	}
	return tx.Create(media).Error
}

// AddRecipeMedia attaches an externally hosted image or video to a recipe
func AddRecipeMedia(db *gorm.DB, p *Principal, recipeID uint64, in MediaInput) (*models.RecipeMedia, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}
	mediaType, _ := models.ParseMediaType(in.MediaType)

	media := models.RecipeMedia{
		RecipeID:  recipeID,
		MediaType: mediaType,
		URL:       in.URL,
		Caption:   trimmedOrNil(in.Caption),
		IsPrimary: in.IsPrimary != nil && *in.IsPrimary,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}
		return insertRecipeMedia(tx, &media, in.SortOrder)
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// UploadRecipeMedia stores an uploaded file and attaches it to a recipe
func UploadRecipeMedia(db *gorm.DB, p *Principal, recipeID uint64, in UploadInput, files FileStore) (*models.RecipeMedia, error) {
	if err := authorizeRecipe(db, p, recipeID); err != nil {
		return nil, err
	}
	mediaType, caption, err := parseUpload(in)
	if err != nil {
		return nil, err
	}
	stored, err := saveUpload(files, in.File)
	if err != nil {
		return nil, err
	}

	media := models.RecipeMedia{
		RecipeID:  recipeID,
		MediaType: mediaType,
		URL:       stored.URL,
		Caption:   caption,
		IsPrimary: in.IsPrimary,
		Meta:      stored.Meta,
	}
	// Checked again under the row lock, the recipe may have changed during the upload
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}
		return insertRecipeMedia(tx, &media, in.SortOrder)
	})
	if err != nil {
		files.RemoveBestEffort(stored.URL)
		return nil, err
	}
	return &media, nil
}

// UpdateRecipeMedia changes the caption or primary flag of a recipe's media
func UpdateRecipeMedia(db *gorm.DB, p *Principal, recipeID, mediaID uint64, patch MediaPatch) (*models.RecipeMedia, error) {
	updates := make(map[string]interface{})
	if patch.Caption.Set {
		caption := trimmedOrNil(&patch.Caption.Value)
		switch {
		case patch.Caption.Null || caption == nil:
			updates["caption"] = nil
		case len(*caption) > maxCaption:
			return nil, fieldError("caption", "caption must be at most 255 characters long")
		default:
			updates["caption"] = *caption
		}
	}
	makePrimary := patch.IsPrimary.Present() && patch.IsPrimary.Value
	if patch.IsPrimary.Set {
		updates["is_primary"] = makePrimary
	}

	var media models.RecipeMedia
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}

		err := quiet(tx).Where("id = ? AND recipe_id = ?", mediaID, recipeID).First(&media).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Media not found")
		}
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		if makePrimary {
			if err := unsetPrimary(tx, recipeID); err != nil {
				return err
			}
		}
		if err := tx.Model(&models.RecipeMedia{}).Where("id = ?", mediaID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", mediaID).First(&media).Error
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// DeleteRecipeMedia removes a recipe's media row, then its hosted file if any
func DeleteRecipeMedia(db *gorm.DB, p *Principal, recipeID, mediaID uint64, files FileRemover) error {
	var media models.RecipeMedia
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}

		err := quiet(tx).Where("id = ? AND recipe_id = ?", mediaID, recipeID).First(&media).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Media not found")
		}
		if err != nil {
			return err
		}
		return tx.Delete(&models.RecipeMedia{}, media.ID).Error
	})
	if err != nil {
		return err
	}

	if files != nil {
		files.RemoveBestEffort(media.URL)
	}
	return nil
}

// AddStepMedia attaches an externally hosted image or video to a step
func AddStepMedia(db *gorm.DB, p *Principal, stepID uint64, in StepMediaInput) (*models.RecipeStepMedia, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}
	mediaType, _ := models.ParseMediaType(in.MediaType)

	media := models.RecipeStepMedia{
		StepID:    stepID,
		MediaType: mediaType,
		URL:       in.URL,
		Caption:   trimmedOrNil(in.Caption),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := authorizeStep(tx, p, stepID); err != nil {
			return err
		}
		return insertStepMedia(tx, &media, in.SortOrder)
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// UploadStepMedia stores an uploaded file and attaches it to a step
func UploadStepMedia(db *gorm.DB, p *Principal, stepID uint64, in UploadInput, files FileStore) (*models.RecipeStepMedia, error) {
	if _, err := authorizeStep(db, p, stepID); err != nil {
		return nil, err
	}
	mediaType, caption, err := parseUpload(in)
	if err != nil {
		return nil, err
	}
	stored, err := saveUpload(files, in.File)
	if err != nil {
		return nil, err
	}

	media := models.RecipeStepMedia{
		StepID:    stepID,
		MediaType: mediaType,
		URL:       stored.URL,
		Caption:   caption,
		Meta:      stored.Meta,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := authorizeStep(tx, p, stepID); err != nil {
			return err
		}
		return insertStepMedia(tx, &media, in.SortOrder)
	})
	if err != nil {
		files.RemoveBestEffort(stored.URL)
		return nil, err
	}
	return &media, nil
}
