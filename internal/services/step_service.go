package services

import (
	"fmt"
	"strings"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/utils"
	"gorm.io/gorm"
)

// FileRemover deletes stored upload files after their rows are gone
type FileRemover interface {
	RemoveBestEffort(urls ...string)
}

// StepsInput is the replace steps body, the full ordered instruction list
type StepsInput struct {
	Steps []string `json:"steps" validate:"required,min=1,dive,required"`
}

// stepMediaURLs collects the urls of every step media row under recipeID
func stepMediaURLs(tx *gorm.DB, recipeID uint64) ([]string, error) {
	var urls []string
	err := tx.Model(&models.RecipeStepMedia{}).
		Where("step_id IN (?)", tx.Model(&models.RecipeStep{}).Select("id").Where("recipe_id = ?", recipeID)).
		Pluck("url", &urls).Error
	return urls, err
}

// deleteSteps removes every step of a recipe, step media first
func deleteSteps(tx *gorm.DB, recipeID uint64) error {
	stepIDs := tx.Model(&models.RecipeStep{}).Select("id").Where("recipe_id = ?", recipeID)
	if err := tx.Where("step_id IN (?)", stepIDs).Delete(&models.RecipeStepMedia{}).Error; err != nil {
		return fmt.Errorf("failed to delete step media: %w", err)
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeStep{}).Error; err != nil {
		return fmt.Errorf("failed to delete steps: %w", err)
	}
	return nil
}

// ReplaceSteps atomically swaps a recipe's steps for the given list, numbered 1..n.
// Media attached to the old steps goes with them.
func ReplaceSteps(db *gorm.DB, p *Principal, recipeID uint64, in StepsInput, files FileRemover) ([]models.RecipeStep, error) {
	for i := range in.Steps {
		in.Steps[i] = strings.TrimSpace(in.Steps[i])
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	var removed []string
	steps := make([]models.RecipeStep, len(in.Steps))
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}

		urls, err := stepMediaURLs(tx, recipeID)
		if err != nil {
			return fmt.Errorf("failed to collect step media: %w", err)
		}
		if err := deleteSteps(tx, recipeID); err != nil {
			return err
		}

		for i, instruction := range in.Steps {
			steps[i] = models.RecipeStep{
				RecipeID:    recipeID,
				StepNumber:  i + 1,
				Instruction: instruction,
			}
		}
		if err := tx.Create(&steps).Error; err != nil {
			return fmt.Errorf("failed to insert steps: %w", err)
		}

		removed = urls
		return nil
	})
	if err != nil {
		return nil, err
	}

	if files != nil && len(removed) > 0 {
		files.RemoveBestEffort(removed...)
	}

	for i := range steps {
		steps[i].Media = []models.RecipeStepMedia{}
	}
	return steps, nil
}
