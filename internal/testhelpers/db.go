// db.go
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

package testhelpers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/recipedb/internal/config"
	"github.com/localnerve/recipedb/internal/database"
	"github.com/localnerve/recipedb/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSecret signs tokens in tests
const TestSecret = "test-secret"

// NewTestDB opens a migrated in-memory database private to the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err, "open test database")

	// Every connection to :memory: is a new empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "migrate test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// TestConfig returns a valid configuration for tests rooted at uploadsDir
func TestConfig(uploadsDir string) *config.Config {
	return &config.Config{
		Port:              "3001",
		Env:               "test",
		CORSOrigins:       "*",
		DBType:            "sqlite",
		DBDatabase:        ":memory:",
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
		JWTSecret:         TestSecret,
		TokenTTL:          7 * 24 * time.Hour,
		BcryptCost:        bcrypt.MinCost,
		UploadsDir:        uploadsDir,
		UploadsPrefix:     "/uploads",
		MaxUploadBytes:    1 << 20,
	}
}

// NopLogger discards log output
func NopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// CreateUser inserts a user directly, bypassing registration
func CreateUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: string(hash), IsAdmin: admin}
	require.NoError(t, db.Create(user).Error, "create user %s", username)
	return user
}

// CreateRecipe inserts a recipe owned by ownerID with the given ingredient names
func CreateRecipe(t *testing.T, db *gorm.DB, ownerID uint64, name string, ingredients ...string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{UserID: ownerID, Name: name, Country: models.CountryNotKnown}
	require.NoError(t, db.Create(recipe).Error, "create recipe %s", name)

	for i, ing := range ingredients {
		row := models.RecipeIngredient{
			RecipeID:       recipe.ID,
			IngredientName: ing,
			SortOrder:      i + 1,
			StageNumber:    1,
		}
		require.NoError(t, db.Create(&row).Error, "create ingredient %s", ing)
	}
	return recipe
}
