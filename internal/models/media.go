package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// MediaType is the stored media kind
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"

	// mediaPhotoAlias is accepted at the API boundary and stored as MediaImage
	mediaPhotoAlias = "photo"
)

// ParseMediaType normalizes an API media type, mapping "photo" to image
func ParseMediaType(s string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case mediaPhotoAlias, string(MediaImage):
		return MediaImage, true
	case string(MediaVideo):
		return MediaVideo, true
	}
	return "", false
}

// RecipeMedia is an image or video attached to a recipe.
// At most one row per recipe has IsPrimary set.
type RecipeMedia struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID  uint64            `gorm:"not null;index" json:"recipe_id"`
	MediaType MediaType         `gorm:"size:10;not null" json:"media_type"`
	URL       string            `gorm:"size:2048;not null" json:"url"`
	Caption   *string           `gorm:"size:255" json:"caption"`
	IsPrimary bool              `gorm:"not null;default:false;index" json:"is_primary"`
	SortOrder int               `gorm:"not null;default:0" json:"sort_order"`
	Meta      datatypes.JSONMap `json:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// RecipeStepMedia is an image or video attached to a single step
type RecipeStepMedia struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	StepID    uint64            `gorm:"not null;index" json:"step_id"`
	MediaType MediaType         `gorm:"size:10;not null" json:"media_type"`
	URL       string            `gorm:"size:2048;not null" json:"url"`
	Caption   *string           `gorm:"size:255" json:"caption"`
	SortOrder int               `gorm:"not null;default:0" json:"sort_order"`
	Meta      datatypes.JSONMap `json:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableName overrides the table name for RecipeMedia
func (RecipeMedia) TableName() string {
	return "recipe_media"
}

// TableName overrides the table name for RecipeStepMedia
func (RecipeStepMedia) TableName() string {
	return "recipe_step_media"
}

// All returns every model in dependency order for migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeStep{},
		&RecipeStepMedia{},
		&RecipeMedia{},
		&RecipeFeedback{},
	}
}
