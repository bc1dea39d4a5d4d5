package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/types"
)

const principalKey = "principal"

// TokenVerifier validates a bearer token
type TokenVerifier interface {
	VerifyToken(raw string) (*services.Principal, error)
}

// RequireAuth validates the bearer token and stores the caller's principal in context
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return types.NewAuthError("Missing token")
		}

		principal, err := verifier.VerifyToken(token)
		if err != nil {
			return err
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireAdmin rejects callers whose token lacks the admin flag.
// It must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := Principal(c)
		if p == nil {
			return types.NewAuthError("Missing token")
		}
		if !p.IsAdmin {
			return types.NewForbiddenError("Admin only")
		}
		return c.Next()
	}
}

// Principal returns the authenticated caller, or nil
func Principal(c *fiber.Ctx) *services.Principal {
	p, _ := c.Locals(principalKey).(*services.Principal)
	return p
}
