package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/localnerve/recipedb/internal/utils"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const (
	// ResultCap bounds list and search results
	ResultCap = 50
	// MaxSearchTokens bounds the ingredient tokens in one search
	MaxSearchTokens = 10
)

// MediaSummary is the primary media shown on a recipe card
type MediaSummary struct {
	URL       string           `json:"url"`
	Caption   *string          `json:"caption"`
	MediaType models.MediaType `json:"media_type,omitempty"`
}

// RecipeCard is the lightweight list view of a recipe
type RecipeCard struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Source      *string          `json:"source"`
	CreatedAt   time.Time        `json:"created_at"`
	UserID      uint64           `json:"user_id"`
	Category    *models.Category `json:"category"`
	Media       []MediaSummary   `json:"recipe_media"`
}

// SearchCard is the search result view of a recipe
type SearchCard struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Source      *string        `json:"source"`
	Description *string        `json:"description"`
	Media       []MediaSummary `json:"recipe_media"`
}

// SearchResult is the search response body
type SearchResult struct {
	Query   string       `json:"query"`
	Tokens  []string     `json:"tokens"`
	Count   int          `json:"count"`
	Recipes []SearchCard `json:"recipes"`
}

// RecipeInput is the create recipe body
type RecipeInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Description *string `json:"description"`
	Source      *string `json:"source"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
	Category    *string `json:"category" validate:"omitempty,oneof=ENTREE SNACK SOUP STARTER MAIN DESSERT CAKE SWEET CONSERVE"`
}

func primaryMedia(db *gorm.DB) *gorm.DB {
	return db.Where("is_primary = ?", true).Order("sort_order ASC, id ASC")
}

// firstMedia keeps at most one summary, the list cards show a single cover
func firstMedia(media []models.RecipeMedia, withType bool) []MediaSummary {
	out := []MediaSummary{}
	if len(media) == 0 {
		return out
	}
	m := media[0]
	s := MediaSummary{URL: m.URL, Caption: m.Caption}
	if withType {
		s.MediaType = m.MediaType
	}
	return append(out, s)
}

// ListRecipes returns the newest recipes with their primary media
func ListRecipes(db *gorm.DB) ([]RecipeCard, error) {
	var recipes []models.Recipe
	err := db.Clauses(hints.Comment("select", "recipe_list")).
		Preload("Media", primaryMedia).
		Order("created_at DESC").Order("id DESC").
		Limit(ResultCap).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	cards := make([]RecipeCard, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, RecipeCard{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Source:      r.Source,
			CreatedAt:   r.CreatedAt,
			UserID:      r.UserID,
			Category:    r.Category,
			Media:       firstMedia(r.Media, true),
		})
	}
	return cards, nil
}

// Tokenize splits a search query on commas and whitespace, dropping
// case-insensitive repeats and keeping at most MaxSearchTokens
func Tokenize(q string) []string {
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	tokens := []string{}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		key := strings.ToLower(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, f)
		if len(tokens) == MaxSearchTokens {
			break
		}
	}
	return tokens
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern matching s anywhere, literal wildcards escaped with '!'
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// SearchRecipes returns recipes having, for every token, an ingredient whose name contains it
func SearchRecipes(db *gorm.DB, q string) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	tokens := Tokenize(q)

	query := db.Clauses(hints.Comment("select", "recipe_search")).Model(&models.Recipe{})
	for _, t := range tokens {
		query = query.Where(
			"EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id AND LOWER(ri.ingredient_name) LIKE ? ESCAPE '!')",
			containsPattern(t),
		)
	}

	var recipes []models.Recipe
	err := query.
		Preload("Media", primaryMedia).
		Order("created_at DESC").Order("id DESC").
		Limit(ResultCap).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}

	cards := make([]SearchCard, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, SearchCard{
			ID:          r.ID,
			Name:        r.Name,
			Source:      r.Source,
			Description: r.Description,
			Media:       firstMedia(r.Media, false),
		})
	}

	return &SearchResult{
		Query:   q,
		Tokens:  tokens,
		Count:   len(cards),
		Recipes: cards,
	}, nil
}

// GetRecipe loads the full aggregate with every child collection in display order
func GetRecipe(db *gorm.DB, id uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := quiet(db).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Preload("Steps.Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("id = ?", id).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError("Not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	recipe.EnsureCollections()
	return &recipe, nil
}

// CreateRecipe stores a new recipe owned by the caller
func CreateRecipe(db *gorm.DB, p *Principal, in RecipeInput) (*models.Recipe, error) {
	if p == nil {
		return nil, types.NewAuthError(msgMissingToken)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimmedOrNil(in.Description)
	in.Source = trimmedOrNil(in.Source)
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		UserID:      p.UserID,
		Name:        in.Name,
		Description: in.Description,
		Source:      in.Source,
		Country:     models.CountryNotKnown,
	}
	if in.Country != nil {
		if c := strings.TrimSpace(*in.Country); c != "" {
			recipe.Country = c
		}
	}
	if in.Category != nil && *in.Category != "" {
		c := models.Category(*in.Category)
		recipe.Category = &c
	}

	if err := db.Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	recipe.EnsureCollections()
	return &recipe, nil
}
