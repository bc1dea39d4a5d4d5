package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubVerifier map[string]*services.Principal

func (v stubVerifier) VerifyToken(raw string) (*services.Principal, error) {
	if p, ok := v[raw]; ok {
		return p, nil
	}
	return nil, types.NewAuthError("Invalid token")
}

// statusOnly renders just the status so tests can assert on it
func statusOnly(c *fiber.Ctx, err error) error {
	if ce, ok := types.AsCustomError(err); ok {
		return c.Status(ce.Code).SendString(ce.Message)
	}
	return fiber.DefaultErrorHandler(c, err)
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: statusOnly})
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p := Principal(c)
		if p == nil {
			return c.SendString("anonymous")
		}
		return c.JSON(p)
	})
	app.Get("/", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireAuth(t *testing.T) {
	verifier := stubVerifier{
		"user":  {UserID: 7},
		"admin": {UserID: 1, IsAdmin: true},
	}
	app := newApp(RequireAuth(verifier))

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "user").StatusCode, "scheme is required")
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "Bearer ").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "Bearer nope").StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "Bearer user").StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	verifier := stubVerifier{
		"user":  {UserID: 7},
		"admin": {UserID: 1, IsAdmin: true},
	}
	app := newApp(RequireAuth(verifier), RequireAdmin())

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "Bearer user").StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "Bearer admin").StatusCode)

	// Without RequireAuth there is no principal
	bare := newApp(RequireAdmin())
	assert.Equal(t, fiber.StatusUnauthorized, get(t, bare, "Bearer admin").StatusCode)
}

func TestRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core).Sugar()

	app := fiber.New(fiber.Config{ErrorHandler: statusOnly})
	app.Use(RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return types.NewNotFoundError("Not found") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, int64(404), entries[1].ContextMap()["status"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(500), entries[2].ContextMap()["status"])
	assert.Equal(t, "/boom", entries[2].ContextMap()["path"])
}
