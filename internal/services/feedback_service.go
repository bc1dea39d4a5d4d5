package services

import (
	"fmt"
	"time"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/localnerve/recipedb/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedbackInput is the add feedback body
type FeedbackInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}

// UpsertFeedback records the caller's rating of a recipe.
// A second submission replaces the first.
func UpsertFeedback(db *gorm.DB, p *Principal, recipeID uint64, in FeedbackInput) (*models.RecipeFeedback, error) {
	if p == nil {
		return nil, types.NewAuthError(msgMissingToken)
	}
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	var comment interface{}
	if in.Comment != nil {
		comment = *in.Comment
	}

	var feedback models.RecipeFeedback
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := recipeOwner(tx, recipeID); err != nil {
			return err
		}

		row := models.RecipeFeedback{
			RecipeID: recipeID,
			UserID:   p.UserID,
			Rating:   in.Rating,
			Comment:  in.Comment,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"rating":     in.Rating,
				"comment":    comment,
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to save feedback: %w", err)
		}

		// The conflict path does not return the existing id on every dialect
		return tx.Where("recipe_id = ? AND user_id = ?", recipeID, p.UserID).First(&feedback).Error
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
