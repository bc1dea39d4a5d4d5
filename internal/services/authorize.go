package services

import (
	"errors"
	"fmt"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	msgRecipeNotFound = "Recipe not found"
	msgStepNotFound   = "Step not found"
	msgForbidden      = "Forbidden"
	msgAdminOnly      = "Admin only"
)

// CanMutate is the single ownership rule for recipe scoped writes
func CanMutate(p *Principal, ownerID uint64) bool {
	return p != nil && (p.IsAdmin || p.UserID == ownerID)
}

// quiet silences gorm's record-not-found logging on existence lookups
func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// lockRecipeRow makes a recipe lookup hold the row for update until the
// transaction ends, so writers to one recipe's children run one at a time
func lockRecipeRow(db *gorm.DB) *gorm.DB {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	case "sqlserver":
		return db.Table("recipes WITH (UPDLOCK, ROWLOCK)")
	}
	// sqlite has a single writer
	return db
}

// recipeOwner returns the owner of a recipe, or a NotFoundError.
// Inside a transaction the recipe row stays locked.
func recipeOwner(db *gorm.DB, recipeID uint64) (uint64, error) {
	var recipe models.Recipe
	err := lockRecipeRow(quiet(db)).Select("id", "user_id").Where("id = ?", recipeID).Take(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, types.NewNotFoundError(msgRecipeNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load recipe: %w", err)
	}
	return recipe.UserID, nil
}

// authorizeRecipe fails unless the recipe exists and p may mutate it
func authorizeRecipe(db *gorm.DB, p *Principal, recipeID uint64) error {
	ownerID, err := recipeOwner(db, recipeID)
	if err != nil {
		return err
	}
	if !CanMutate(p, ownerID) {
		return types.NewForbiddenError(msgForbidden)
	}
	return nil
}

// authorizeStep resolves a step's parent recipe and checks its owner
func authorizeStep(db *gorm.DB, p *Principal, stepID uint64) (*models.RecipeStep, error) {
	var step models.RecipeStep
	err := quiet(db).Where("id = ?", stepID).First(&step).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(msgStepNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load step: %w", err)
	}

	ownerID, err := recipeOwner(db, step.RecipeID)
	if err != nil {
		return nil, err
	}
	if !CanMutate(p, ownerID) {
		return nil, types.NewForbiddenError(msgForbidden)
	}
	return &step, nil
}

// nextSortOrder is one past the current maximum sort_order of a child collection
func nextSortOrder(db *gorm.DB, model interface{}, column string, parentID uint64) (int, error) {
	var last int
	err := db.Model(model).
		Select("COALESCE(MAX(sort_order), 0)").
		Where(column+" = ?", parentID).
		Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute sort order: %w", err)
	}
	return last + 1, nil
}
