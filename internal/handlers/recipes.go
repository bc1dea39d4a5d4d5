// recipes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/utils"
	"gorm.io/gorm"
)

// RecipeHandler handles the recipe aggregate routes
type RecipeHandler struct {
	DB    *gorm.DB
	Files services.FileStore
}

// List handles GET /recipes
// @Summary List recipes
// @Description Newest recipes first, at most 50, each with its primary media
// @Tags Recipes
// @Produce json
// @Success 200 {array} services.RecipeCard
// @Router /recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	cards, err := services.ListRecipes(scopedDB(c, h.DB))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, cards, fiber.StatusOK)
}

// Search handles GET /recipes/search?q=onion,tomato
// @Summary Search recipes by ingredient
// @Description Every token must match an ingredient name, case insensitive
// @Tags Recipes
// @Produce json
// @Param q query string false "Comma or space separated ingredient tokens"
// @Success 200 {object} services.SearchResult
// @Router /recipes/search [get]
func (h *RecipeHandler) Search(c *fiber.Ctx) error {
	res, err := services.SearchRecipes(scopedDB(c, h.DB), c.Query("q"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Get handles GET /recipes/:id
// @Summary Get a recipe with all of its children
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	recipe, err := services.GetRecipe(scopedDB(c, h.DB), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, recipe, fiber.StatusOK)
}

// Create handles POST /recipes
// @Summary Create a recipe
// @Tags Recipes
// @Accept json
// @Produce json
// @Param body body services.RecipeInput true "Recipe"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in services.RecipeInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	recipe, err := services.CreateRecipe(scopedDB(c, h.DB), principal(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, recipe, fiber.StatusCreated)
}

// Delete handles DELETE /recipes/:id
// @Summary Delete a recipe and everything under it
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	if err := services.DeleteRecipe(scopedDB(c, h.DB), principal(c), id, h.Files); err != nil {
		return err
	}
	return utils.OKResponse(c)
}

// AddIngredient handles POST /recipes/:id/ingredients
// @Summary Add an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.IngredientInput true "Ingredient"
// @Success 201 {object} models.RecipeIngredient
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/ingredients [post]
func (h *RecipeHandler) AddIngredient(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	var in services.IngredientInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	ingredient, err := services.AddIngredient(scopedDB(c, h.DB), principal(c), id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, ingredient, fiber.StatusCreated)
}

// UpdateIngredient handles PATCH /recipes/:id/ingredients/:ingredientId
// @Summary Patch an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param ingredientId path int true "Ingredient ID"
// @Success 200 {object} models.RecipeIngredient
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/ingredients/{ingredientId} [patch]
func (h *RecipeHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	ingredientID, err := parseID(c, "ingredientId", "Bad id")
	if err != nil {
		return err
	}
	var patch services.IngredientPatch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}
	ingredient, err := services.UpdateIngredient(scopedDB(c, h.DB), principal(c), id, ingredientID, patch)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, ingredient, fiber.StatusOK)
}

// ReplaceSteps handles POST /recipes/:id/steps
// @Summary Replace all steps
// @Description The body is the full ordered list, existing steps are discarded
// @Tags Steps
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.StepsInput true "Steps"
// @Success 201 {array} models.RecipeStep
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/steps [post]
func (h *RecipeHandler) ReplaceSteps(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	var in services.StepsInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	steps, err := services.ReplaceSteps(scopedDB(c, h.DB), principal(c), id, in, h.Files)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, steps, fiber.StatusCreated)
}

// AddFeedback handles POST /recipes/:id/feedback
// @Summary Rate a recipe
// @Description One rating per user and recipe, resubmitting replaces it
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.FeedbackInput true "Feedback"
// @Success 201 {object} models.RecipeFeedback
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/feedback [post]
func (h *RecipeHandler) AddFeedback(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	var in services.FeedbackInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	feedback, err := services.UpsertFeedback(scopedDB(c, h.DB), principal(c), id, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, feedback, fiber.StatusCreated)
}
