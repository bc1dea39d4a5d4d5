package handlers_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/handlers"
	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/storage"
	"github.com/localnerve/recipedb/internal/testhelpers"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// pngHeader is enough of a PNG for content sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type testServer struct {
	app  *fiber.App
	db   *gorm.DB
	auth *services.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	cfg := testhelpers.TestConfig(t.TempDir())
	log := testhelpers.NopLogger()

	uploads, err := storage.NewUploads(cfg.UploadsDir, cfg.UploadsPrefix, cfg.MaxUploadBytes, log)
	require.NoError(t, err)

	auth := services.NewAuthService(cfg)
	app := handlers.NewApp(handlers.Deps{
		Config:  cfg,
		DB:      db,
		Auth:    auth,
		Uploads: uploads,
		Log:     log,
	})
	return &testServer{app: app, db: db, auth: auth}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err, "execute request")
	return resp
}

func (s *testServer) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := s.auth.IssueToken(services.Principal{UserID: user.ID, IsAdmin: user.IsAdmin})
	require.NoError(t, err)
	return token
}

func assertError(t *testing.T, resp *http.Response, status int, errType, message string) {
	t.Helper()
	testhelpers.AssertStatus(t, resp, status)
	var body map[string]interface{}
	testhelpers.ParseJSON(t, resp, &body)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, float64(status), body["status"])
	assert.Equal(t, errType, body["type"])
	if message != "" {
		assert.Equal(t, message, body["message"])
		assert.Equal(t, message, body["error"])
	}
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["url"])
}

func TestRegisterLoginCreateRecipe(t *testing.T) {
	s := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "secret123"}

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/auth/register", creds, ""))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var user map[string]interface{}
	testhelpers.ParseJSON(t, resp, &user)
	assert.Equal(t, "alice", user["username"])
	assert.NotZero(t, user["id"])
	assert.NotEmpty(t, user["created_at"])
	assert.NotContains(t, user, "password_hash")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/auth/register", creds, ""))
	assertError(t, resp, fiber.StatusConflict, types.TypeConflict, "Username already taken")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/auth/login", creds, ""))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var login services.LoginResult
	testhelpers.ParseJSON(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/recipes", map[string]string{"name": "Soup"}, login.Token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var recipe map[string]interface{}
	testhelpers.ParseJSON(t, resp, &recipe)
	assert.Equal(t, "Soup", recipe["name"])
	assert.Equal(t, user["id"], recipe["user_id"])
	assert.Equal(t, models.CountryNotKnown, recipe["country"])

	resp = s.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/recipes/%v", recipe["id"]), nil))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var full map[string]interface{}
	testhelpers.ParseJSON(t, resp, &full)
	for _, key := range []string{"recipe_ingredients", "recipe_media", "recipe_steps", "recipe_feedback"} {
		assert.Equal(t, []interface{}{}, full[key], key)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	testhelpers.CreateUser(t, s.db, "bob", false)

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "bob", "password": "wrongpass"}, ""))
	assertError(t, resp, fiber.StatusUnauthorized, types.TypeAuth, "Invalid credentials")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "nobody", "password": "password123"}, ""))
	assertError(t, resp, fiber.StatusUnauthorized, types.TypeAuth, "Invalid credentials")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/auth/register",
		map[string]string{"username": "al", "password": "secret123"}, ""))
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)
	var body map[string]interface{}
	testhelpers.ParseJSON(t, resp, &body)
	assert.Equal(t, types.TypeValidation, body["type"])
	assert.NotEmpty(t, body["details"])

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	assertError(t, s.do(t, req), fiber.StatusBadRequest, types.TypeValidation, "Invalid request body")
}

func TestMutationsRequireToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/recipes", map[string]string{"name": "Soup"}, ""))
	assertError(t, resp, fiber.StatusUnauthorized, types.TypeAuth, "Missing token")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/recipes", map[string]string{"name": "Soup"}, "garbage"))
	assertError(t, resp, fiber.StatusUnauthorized, types.TypeAuth, "Invalid token")
}

func TestBadIDIsValidationError(t *testing.T) {
	s := newTestServer(t)

	assertError(t, s.do(t, httptest.NewRequest(http.MethodGet, "/recipes/abc", nil)),
		fiber.StatusBadRequest, types.TypeValidation, "Bad id")

	assertError(t, s.do(t, httptest.NewRequest(http.MethodGet, "/recipes/999", nil)),
		fiber.StatusNotFound, types.TypeNotFound, "Not found")
	assertError(t, s.do(t, httptest.NewRequest(http.MethodGet, "/recipes/0", nil)),
		fiber.StatusNotFound, types.TypeNotFound, "Not found")

	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	req := testhelpers.JSONRequest(t, http.MethodDelete, fmt.Sprintf("/recipes/%d/media/0", recipe.ID), nil, s.token(t, owner))
	assertError(t, s.do(t, req), fiber.StatusNotFound, types.TypeNotFound, "Media not found")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	assertError(t, s.do(t, httptest.NewRequest(http.MethodGet, "/nope", nil)),
		fiber.StatusNotFound, types.TypeNotFound, "[404] Resource Not Found")
}

func TestIngredientAppendAndPatch(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	token := s.token(t, owner)
	url := fmt.Sprintf("/recipes/%d/ingredients", recipe.ID)

	var first, second models.RecipeIngredient
	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url,
		map[string]interface{}{"ingredient_name": "Flour", "amount": "1.5", "unit": "kg"}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	testhelpers.ParseJSON(t, resp, &first)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url,
		map[string]interface{}{"ingredient_name": "Water", "amount": 2}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	testhelpers.ParseJSON(t, resp, &second)

	assert.Equal(t, 1, first.SortOrder)
	assert.Equal(t, 2, second.SortOrder)
	assert.Equal(t, "1.5", first.Amount.Decimal.String())

	patchURL := fmt.Sprintf("%s/%d", url, first.ID)
	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPatch, patchURL,
		map[string]interface{}{"unit": nil, "note": "sifted"}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var patched models.RecipeIngredient
	testhelpers.ParseJSON(t, resp, &patched)
	assert.Nil(t, patched.Unit)
	require.NotNil(t, patched.Note)
	assert.Equal(t, "sifted", *patched.Note)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPatch, patchURL, map[string]interface{}{}, token))
	assertError(t, resp, fiber.StatusBadRequest, types.TypeValidation, "No fields provided to update.")
}

func TestNonOwnerIsForbidden(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	other := testhelpers.CreateUser(t, s.db, "other", false)
	admin := testhelpers.CreateUser(t, s.db, "admin", true)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	url := fmt.Sprintf("/recipes/%d/ingredients", recipe.ID)
	body := map[string]interface{}{"ingredient_name": "Salt"}

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url, body, s.token(t, other)))
	assertError(t, resp, fiber.StatusForbidden, types.TypeForbidden, "Forbidden")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url, body, s.token(t, admin)))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
}

func TestSearchRoute(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	salad := testhelpers.CreateRecipe(t, s.db, owner.ID, "Salad", "Red Onion", "Tomato")
	testhelpers.CreateRecipe(t, s.db, owner.ID, "Soup", "Onion", "Carrot")

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/recipes/search?q=onion,tomato", nil))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var res services.SearchResult
	testhelpers.ParseJSON(t, resp, &res)
	assert.Equal(t, []string{"onion", "tomato"}, res.Tokens)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, salad.ID, res.Recipes[0].ID)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/recipes", nil))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var cards []services.RecipeCard
	testhelpers.ParseJSON(t, resp, &cards)
	assert.Len(t, cards, 2)
}

func TestStepsAndStepMedia(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	other := testhelpers.CreateUser(t, s.db, "other", false)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	token := s.token(t, owner)

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, fmt.Sprintf("/recipes/%d/steps", recipe.ID),
		map[string]interface{}{"steps": []string{"Mix", "Knead", "Bake"}}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var steps []models.RecipeStep
	testhelpers.ParseJSON(t, resp, &steps)
	require.Len(t, steps, 3)
	assert.Equal(t, 3, steps[2].StepNumber)

	url := fmt.Sprintf("/recipes/steps/%d/media", steps[0].ID)
	media := map[string]interface{}{"media_type": "photo", "url": "https://example.com/mix.jpg"}

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url, media, s.token(t, other)))
	assertError(t, resp, fiber.StatusForbidden, types.TypeForbidden, "Forbidden")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url, media, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var created models.RecipeStepMedia
	testhelpers.ParseJSON(t, resp, &created)
	assert.Equal(t, models.MediaImage, created.MediaType)
	assert.Equal(t, steps[0].ID, created.StepID)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/recipes/steps/x/media", media, token))
	assertError(t, resp, fiber.StatusBadRequest, types.TypeValidation, "Bad stepId")
}

func TestUploadIsServedStatically(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	token := s.token(t, owner)
	url := fmt.Sprintf("/recipes/%d/media/upload", recipe.ID)

	resp := s.do(t, testhelpers.MultipartRequest(t, url, "loaf.png", pngHeader,
		map[string]string{"caption": "Golden", "is_primary": "true"}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var media models.RecipeMedia
	testhelpers.ParseJSON(t, resp, &media)
	assert.True(t, media.IsPrimary)
	assert.Equal(t, models.MediaImage, media.MediaType)
	assert.True(t, strings.HasPrefix(media.URL, "/uploads/"), media.URL)
	assert.True(t, strings.HasSuffix(media.URL, "-loaf.png"), media.URL)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, media.URL, nil))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, served)

	resp = s.do(t, testhelpers.MultipartRequest(t, url, "", nil, map[string]string{"caption": "x"}, token))
	assertError(t, resp, fiber.StatusBadRequest, types.TypeValidation, "Missing file")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodDelete,
		fmt.Sprintf("/recipes/%d/media/%d", recipe.ID, media.ID), nil, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, media.URL, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMediaPatchRoute(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	token := s.token(t, owner)
	url := fmt.Sprintf("/recipes/%d/media", recipe.ID)

	var a, b models.RecipeMedia
	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url,
		map[string]interface{}{"media_type": "image", "url": "https://example.com/a.jpg", "is_primary": true}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	testhelpers.ParseJSON(t, resp, &a)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url,
		map[string]interface{}{"media_type": "video", "url": "https://example.com/b.mp4"}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	testhelpers.ParseJSON(t, resp, &b)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPatch, fmt.Sprintf("%s/%d", url, b.ID),
		map[string]interface{}{"is_primary": true}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	var primaries int64
	require.NoError(t, s.db.Model(&models.RecipeMedia{}).
		Where("recipe_id = ? AND is_primary = ?", recipe.ID, true).Count(&primaries).Error)
	assert.Equal(t, int64(1), primaries)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url,
		map[string]interface{}{"media_type": "gif", "url": "https://example.com/c.gif"}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestFeedbackUpsertRoute(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	rater := testhelpers.CreateUser(t, s.db, "rater", false)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread")
	token := s.token(t, rater)
	url := fmt.Sprintf("/recipes/%d/feedback", recipe.ID)

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url, map[string]interface{}{"rating": 3}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url,
		map[string]interface{}{"rating": 5, "comment": "Great"}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var fb models.RecipeFeedback
	testhelpers.ParseJSON(t, resp, &fb)
	assert.Equal(t, 5, fb.Rating)

	var count int64
	require.NoError(t, s.db.Model(&models.RecipeFeedback{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, url, map[string]interface{}{"rating": 6}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodPost, "/recipes/999/feedback",
		map[string]interface{}{"rating": 4}, token))
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestDeleteRecipeIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	owner := testhelpers.CreateUser(t, s.db, "owner", false)
	admin := testhelpers.CreateUser(t, s.db, "admin", true)
	recipe := testhelpers.CreateRecipe(t, s.db, owner.ID, "Bread", "Flour")
	url := fmt.Sprintf("/recipes/%d", recipe.ID)

	resp := s.do(t, testhelpers.JSONRequest(t, http.MethodDelete, url, nil, s.token(t, owner)))
	assertError(t, resp, fiber.StatusForbidden, types.TypeForbidden, "Admin only")

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodDelete, url, nil, s.token(t, admin)))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var body map[string]interface{}
	testhelpers.ParseJSON(t, resp, &body)
	assert.Equal(t, true, body["ok"])

	assert.Equal(t, fiber.StatusNotFound, s.do(t, httptest.NewRequest(http.MethodGet, url, nil)).StatusCode)

	resp = s.do(t, testhelpers.JSONRequest(t, http.MethodDelete, url, nil, s.token(t, admin)))
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestHealthRoutes(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var ok map[string]interface{}
	testhelpers.ParseJSON(t, resp, &ok)
	assert.Equal(t, true, ok["ok"])

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/health/details", nil))
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var report services.HealthCheckResult
	testhelpers.ParseJSON(t, resp, &report)
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "ok", report.Database)
	assert.Equal(t, "ok", report.Uploads)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	for _, tc := range []struct {
		expose  bool
		message string
	}{
		{expose: false, message: "Internal Server Error"},
		{expose: true, message: "db exploded"},
	} {
		app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(testhelpers.NopLogger(), tc.expose)})
		app.Get("/boom", func(c *fiber.Ctx) error {
			return errors.New("db exploded")
		})
		app.Get("/teapot", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusConflict, "busy")
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
		require.NoError(t, err)
		assertError(t, resp, fiber.StatusInternalServerError, types.TypeInternal, tc.message)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
		require.NoError(t, err)
		assertError(t, resp, fiber.StatusConflict, types.TypeConflict, "busy")
	}
}
