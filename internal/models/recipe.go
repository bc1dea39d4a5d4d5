package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountryNotKnown is stored when a recipe is created without a country
const CountryNotKnown = "Not known"

// Category is the culinary category of a recipe
type Category string

const (
	CategoryEntree   Category = "ENTREE"
	CategorySnack    Category = "SNACK"
	CategorySoup     Category = "SOUP"
	CategoryStarter  Category = "STARTER"
	CategoryMain     Category = "MAIN"
	CategoryDessert  Category = "DESSERT"
	CategoryCake     Category = "CAKE"
	CategorySweet    Category = "SWEET"
	CategoryConserve Category = "CONSERVE"
)

// Categories lists every accepted category in display order
var Categories = []Category{
	CategoryEntree,
	CategorySnack,
	CategorySoup,
	CategoryStarter,
	CategoryMain,
	CategoryDessert,
	CategoryCake,
	CategorySweet,
	CategoryConserve,
}

// Valid reports whether c is one of Categories
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Recipe is the aggregate root. Every child row hangs off RecipeID.
type Recipe struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description *string   `json:"description"`
	Source      *string   `json:"source"`
	Country     string    `gorm:"size:80;not null" json:"country"`
	Category    *Category `gorm:"size:20" json:"category"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	User        *User              `gorm:"foreignKey:UserID" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients"`
	Media       []RecipeMedia      `gorm:"foreignKey:RecipeID" json:"recipe_media"`
	Steps       []RecipeStep       `gorm:"foreignKey:RecipeID" json:"recipe_steps"`
	Feedback    []RecipeFeedback   `gorm:"foreignKey:RecipeID" json:"recipe_feedback"`
}

// RecipeIngredient is one ingredient line. Amount is an exact decimal.
type RecipeIngredient struct {
	ID             uint64              `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID       uint64              `gorm:"not null;index" json:"recipe_id"`
	IngredientName string              `gorm:"size:120;not null" json:"ingredient_name"`
	Amount         decimal.NullDecimal `gorm:"type:decimal(12,3)" json:"amount"`
	Unit           *string             `gorm:"size:20" json:"unit"`
	Note           *string             `gorm:"size:255" json:"note"`
	SortOrder      int                 `gorm:"not null;default:0" json:"sort_order"`
	StageNumber    int                 `gorm:"not null;default:1" json:"stage_number"`
	StageName      *string             `gorm:"size:80" json:"stage_name"`
	CreatedAt      time.Time           `json:"created_at"`
}

// RecipeStep is one ordered instruction. StepNumber is 1-based and contiguous.
type RecipeStep struct {
	ID          uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID    uint64            `gorm:"not null;index:idx_recipe_step_number,unique" json:"recipe_id"`
	StepNumber  int               `gorm:"not null;index:idx_recipe_step_number,unique" json:"step_number"`
	Instruction string            `gorm:"not null" json:"instruction"`
	CreatedAt   time.Time         `json:"created_at"`
	Media       []RecipeStepMedia `gorm:"foreignKey:StepID" json:"recipe_step_media"`
}

// RecipeFeedback is a rating left by a user, at most one per recipe and user
type RecipeFeedback struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID  uint64    `gorm:"not null;uniqueIndex:idx_feedback_recipe_user" json:"recipe_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_feedback_recipe_user" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"size:1000" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TableName overrides the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// TableName overrides the table name for RecipeStep
func (RecipeStep) TableName() string {
	return "recipe_steps"
}

// TableName overrides the table name for RecipeFeedback
func (RecipeFeedback) TableName() string {
	return "recipe_feedback"
}

// EnsureCollections replaces nil child slices with empty ones so the
// aggregate always renders every collection as a JSON array
func (r *Recipe) EnsureCollections() {
	if r.Ingredients == nil {
		r.Ingredients = []RecipeIngredient{}
	}
	if r.Media == nil {
		r.Media = []RecipeMedia{}
	}
	if r.Steps == nil {
		r.Steps = []RecipeStep{}
	}
	for i := range r.Steps {
		if r.Steps[i].Media == nil {
			r.Steps[i].Media = []RecipeStepMedia{}
		}
	}
	if r.Feedback == nil {
		r.Feedback = []RecipeFeedback{}
	}
}
