// recipe_delete.go
//
// A recipe sharing data service on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of recipedb.
// recipedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// recipedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with recipedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"fmt"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/types"
	"gorm.io/gorm"
)

// DeleteRecipe removes a recipe and all of its descendants in one transaction,
// children before parents. Hosted files are removed after commit, best effort.
func DeleteRecipe(db *gorm.DB, p *Principal, recipeID uint64, files FileRemover) error {
	if p == nil || !p.IsAdmin {
		return types.NewForbiddenError(msgAdminOnly)
	}

	var urls []string
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := recipeOwner(tx, recipeID); err != nil {
			return err
		}

		// Gather the files to remove once the rows are gone
		stepURLs, err := stepMediaURLs(tx, recipeID)
		if err != nil {
			return fmt.Errorf("failed to collect step media: %w", err)
		}
		var mediaURLs []string
		if err := tx.Model(&models.RecipeMedia{}).Where("recipe_id = ?", recipeID).Pluck("url", &mediaURLs).Error; err != nil {
			return fmt.Errorf("failed to collect media: %w", err)
		}

		// step media -> steps -> ingredients -> feedback -> media -> recipe
		if err := deleteSteps(tx, recipeID); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeFeedback{}).Error; err != nil {
			return fmt.Errorf("failed to delete feedback: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeMedia{}).Error; err != nil {
			return fmt.Errorf("failed to delete media: %w", err)
		}

		result := tx.Delete(&models.Recipe{}, recipeID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return types.NewNotFoundError(msgRecipeNotFound)
		}

		urls = append(stepURLs, mediaURLs...)
		return nil
	})
	if err != nil {
		return err
	}

	if files != nil && len(urls) > 0 {
		files.RemoveBestEffort(urls...)
	}
	return nil
}
