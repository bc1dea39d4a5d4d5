package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/localnerve/recipedb/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxIngredientName = 120
	maxUnit           = 20
	maxNote           = 255
	maxStageName      = 80

	// amounts fit a decimal(12,3) column exactly
	amountScale     = 3
	amountIntDigits = 9
)

var amountLimit = decimal.New(1, amountIntDigits)

// IngredientInput is the add ingredient body.
// Amount accepts a number or a numeric string, null or "" leave it empty.
type IngredientInput struct {
	IngredientName string            `json:"ingredient_name" validate:"required,min=1,max=120"`
	Amount         types.FlexDecimal `json:"amount" validate:"-"`
	Unit           *string           `json:"unit" validate:"omitempty,max=20"`
	Note           *string           `json:"note" validate:"omitempty,max=255"`
	SortOrder      *int              `json:"sort_order"`
	StageNumber    *int              `json:"stage_number"`
	StageName      *string           `json:"stage_name" validate:"omitempty,max=80"`
}

// IngredientPatch is the partial update body, absent keys are left unchanged
type IngredientPatch struct {
	IngredientName types.Optional[string]            `json:"ingredient_name"`
	Amount         types.Optional[types.FlexDecimal] `json:"amount"`
	Unit           types.Optional[string]            `json:"unit"`
	Note           types.Optional[string]            `json:"note"`
	SortOrder      types.Optional[int]               `json:"sort_order"`
	StageNumber    types.Optional[int]               `json:"stage_number"`
	StageName      types.Optional[string]            `json:"stage_name"`
}

// Empty reports that no field was supplied
func (p IngredientPatch) Empty() bool {
	return !p.IngredientName.Set && !p.Amount.Set && !p.Unit.Set && !p.Note.Set &&
		!p.SortOrder.Set && !p.StageNumber.Set && !p.StageName.Set
}

// trimmedOrNil trims s and maps the empty result to nil
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// checkAmount rejects amounts the column would round or overflow
func checkAmount(amount decimal.NullDecimal) error {
	if !amount.Valid {
		return nil
	}
	if amount.Decimal.Abs().GreaterThanOrEqual(amountLimit) {
		return fieldError("amount", "amount must be less than 1000000000")
	}
	if !amount.Decimal.Equal(amount.Decimal.Truncate(amountScale)) {
		return fieldError("amount", "amount must have at most 3 decimal places")
	}
	return nil
}

func fieldError(field, message string) error {
	return types.NewValidationError(message).WithDetails([]utils.ValidationError{
		{Field: field, Tag: "invalid", Message: message},
	})
}

// AddIngredient appends an ingredient to a recipe the caller may edit
func AddIngredient(db *gorm.DB, p *Principal, recipeID uint64, in IngredientInput) (*models.RecipeIngredient, error) {
	in.IngredientName = strings.TrimSpace(in.IngredientName)
	in.Unit = trimmedOrNil(in.Unit)
	in.Note = trimmedOrNil(in.Note)
	in.StageName = trimmedOrNil(in.StageName)
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}
	if in.StageNumber != nil && *in.StageNumber < 1 {
		return nil, fieldError("stage_number", "stage_number must be at least 1")
	}
	if err := checkAmount(in.Amount.NullDecimalValue()); err != nil {
		return nil, err
	}

	ingredient := models.RecipeIngredient{
		RecipeID:       recipeID,
		IngredientName: in.IngredientName,
		Amount:         in.Amount.NullDecimalValue(),
		Unit:           in.Unit,
		Note:           in.Note,
		StageNumber:    1,
		StageName:      in.StageName,
	}
	if in.StageNumber != nil {
		ingredient.StageNumber = *in.StageNumber
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}

		if in.SortOrder != nil {
			ingredient.SortOrder = *in.SortOrder
		} else {
			next, err := nextSortOrder(tx, &models.RecipeIngredient{}, "recipe_id", recipeID)
			if err != nil {
				return err
			}
			ingredient.SortOrder = next
		}

		return tx.Create(&ingredient).Error
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ingredientUpdates validates a patch and converts it to column updates
func ingredientUpdates(patch IngredientPatch) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if patch.IngredientName.Set {
		name := strings.TrimSpace(patch.IngredientName.Value)
		if patch.IngredientName.Null || name == "" || len(name) > maxIngredientName {
			return nil, fieldError("ingredient_name", "ingredient_name must be 1 to 120 characters")
		}
		updates["ingredient_name"] = name
	}

	if patch.Amount.Set {
		if patch.Amount.Null {
			updates["amount"] = nil
		} else {
			amount := patch.Amount.Value.NullDecimalValue()
			if err := checkAmount(amount); err != nil {
				return nil, err
			}
			updates["amount"] = amount
		}
	}

	optionalText := func(field string, o types.Optional[string], limit int) error {
		if !o.Set {
			return nil
		}
		if o.Null {
			updates[field] = nil
			return nil
		}
		v := trimmedOrNil(&o.Value)
		if v == nil {
			updates[field] = nil
			return nil
		}
		if len(*v) > limit {
			return fieldError(field, fmt.Sprintf("%s must be at most %d characters long", field, limit))
		}
		updates[field] = *v
		return nil
	}
	if err := optionalText("unit", patch.Unit, maxUnit); err != nil {
		return nil, err
	}
	if err := optionalText("note", patch.Note, maxNote); err != nil {
		return nil, err
	}
	if err := optionalText("stage_name", patch.StageName, maxStageName); err != nil {
		return nil, err
	}

	if patch.SortOrder.Set {
		if patch.SortOrder.Null {
			return nil, fieldError("sort_order", "sort_order cannot be null")
		}
		updates["sort_order"] = patch.SortOrder.Value
	}

	if patch.StageNumber.Set {
		if patch.StageNumber.Null || patch.StageNumber.Value < 1 {
			return nil, fieldError("stage_number", "stage_number must be at least 1")
		}
		updates["stage_number"] = patch.StageNumber.Value
	}

	return updates, nil
}

// UpdateIngredient applies a partial patch to an ingredient of the addressed recipe
func UpdateIngredient(db *gorm.DB, p *Principal, recipeID, ingredientID uint64, patch IngredientPatch) (*models.RecipeIngredient, error) {
	if patch.Empty() {
		return nil, types.NewValidationError("No fields provided to update.")
	}
	updates, err := ingredientUpdates(patch)
	if err != nil {
		return nil, err
	}

	var ingredient models.RecipeIngredient
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := authorizeRecipe(tx, p, recipeID); err != nil {
			return err
		}

		err := quiet(tx).Where("id = ? AND recipe_id = ?", ingredientID, recipeID).First(&ingredient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Ingredient not found")
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.RecipeIngredient{}).Where("id = ?", ingredientID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", ingredientID).First(&ingredient).Error
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}
