package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/localnerve/recipedb/internal/config"
	"github.com/localnerve/recipedb/internal/middleware"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process wide collaborators the routes need
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Auth    *services.AuthService
	Uploads *storage.Uploads
	Log     *zap.SugaredLogger
}

// NewApp builds the fiber app with the global middleware chain and every route.
// Each mount runs after the global middleware and before the routes.
func NewApp(d Deps, mounts ...func(*fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "recipedb",
		ErrorHandler: ErrorHandler(d.Log, d.Config.ExposeErrors),
		// Room for the largest upload plus multipart framing
		BodyLimit:             int(d.Config.MaxUploadBytes) + 1<<20,
		DisableStartupMessage: d.Config.IsProduction(),
	})

	app.Use(middleware.RequestLogger(d.Log))
	app.Use(recover.New(recover.Config{EnableStackTrace: !d.Config.IsProduction()}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(compress.New())

	for _, mount := range mounts {
		mount(app)
	}

	Setup(app, d)
	return app
}

// Setup registers every route and the 404 fallback
func Setup(app *fiber.App, d Deps) {
	// fiber rejects a typed nil inside the interface, keep it untyped
	var files services.FileStore
	var writable services.WritableStore
	if d.Uploads != nil {
		files = d.Uploads
		writable = d.Uploads
		app.Static(d.Config.UploadsPrefix, d.Config.UploadsDir)
	}

	health := &HealthHandler{Config: d.Config, DB: d.DB, Files: writable, Log: d.Log}
	app.Get("/health", health.Health)
	app.Get("/health/details", health.Details)

	authHandler := &AuthHandler{DB: d.DB, Auth: d.Auth}
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	h := &RecipeHandler{DB: d.DB, Files: files}
	requireAuth := middleware.RequireAuth(d.Auth)

	recipes := app.Group("/recipes")
	recipes.Get("/", h.List)
	recipes.Post("/", requireAuth, h.Create)

	// Literal segments before /:id
	recipes.Get("/search", h.Search)
	recipes.Post("/steps/:stepId/media/upload", requireAuth, h.UploadStepMedia)
	recipes.Post("/steps/:stepId/media", requireAuth, h.AddStepMedia)

	recipes.Get("/:id", h.Get)
	recipes.Delete("/:id", requireAuth, middleware.RequireAdmin(), h.Delete)
	recipes.Post("/:id/ingredients", requireAuth, h.AddIngredient)
	recipes.Patch("/:id/ingredients/:ingredientId", requireAuth, h.UpdateIngredient)
	recipes.Post("/:id/steps", requireAuth, h.ReplaceSteps)
	recipes.Post("/:id/media/upload", requireAuth, h.UploadMedia)
	recipes.Post("/:id/media", requireAuth, h.AddMedia)
	recipes.Patch("/:id/media/:mediaId", requireAuth, h.UpdateMedia)
	recipes.Delete("/:id/media/:mediaId", requireAuth, h.DeleteMedia)
	recipes.Post("/:id/feedback", requireAuth, h.AddFeedback)

	app.Use(NotFound)
}
