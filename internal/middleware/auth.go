package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/internal/models"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/token"
	"marketplace-api/internal/utils"
)

// localsUserKey is where Authenticate stores the resolved identity.
const localsUserKey = "auth_user"

// Authenticate extracts the bearer token, verifies it, and resolves the
// subject to a live account. Every failure mode (missing header, bad
// signature, expired token, deleted subject) answers 401 without saying
// which one it was. The sanitized user is attached for downstream stages;
// this middleware never mutates state.
func Authenticate(tm *token.Manager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token.")
		}

		userID, err := tm.VerifyAccess(parts[1])
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token.")
		}
		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token.")
		}
		// Token may outlive its subject.
		u, err := users.FindByID(c.Context(), oid)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token.")
		}

		c.Locals(localsUserKey, u.Sanitized())
		return c.Next()
	}
}

// CurrentUser returns the identity attached by Authenticate.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals(localsUserKey).(*models.User)
	return u, ok
}

// RequireRoles permits the request iff the authenticated role is in the
// set. It must be registered after Authenticate; a missing identity here
// is a route-wiring bug, answered as 401 rather than special-cased.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Access denied. No token provided.")
		}
		for _, r := range roles {
			if u.Role == r {
				return c.Next()
			}
		}
		return utils.JSONError(c, fiber.StatusForbidden, "Access denied. Insufficient permissions.")
	}
}
