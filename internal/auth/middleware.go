package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/session"
)

// sessionUser reads the session cookie and returns the logged-in user, or
// nil when the request carries no valid session.
func sessionUser(c *fiber.Ctx) *models.User {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return nil
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return nil
	}

	if sessionData.User.ID == 0 {
		return nil
	}

	return &sessionData.User
}

// CurrentUser returns the logged-in user for the request, or nil. Handlers
// use it for ownership checks such as a customer viewing their own invoice.
func CurrentUser(c *fiber.Ctx) *models.User {
	return sessionUser(c)
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sessionUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasPermission(user.ID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Str("permission", permission).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", user.ID).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sessionUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasAnyPermission(user.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// HasPermissionInContext checks if the current user in the Fiber context has a permission.
// Useful for conditional rendering in handlers.
func HasPermissionInContext(c *fiber.Ctx, authService *Service, permission string) bool {
	user := sessionUser(c)
	if user == nil {
		return false
	}

	hasPermission, err := authService.HasPermission(user.ID, permission)
	if err != nil {
		return false
	}

	return hasPermission
}

// AddPermissionsToLocals is a Fiber middleware that adds user permissions to fiber.Locals.
// This allows templates to access permissions for conditional rendering.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sessionUser(c)
		if user == nil {
			return c.Next()
		}

		permissions, err := authService.GetUserPermissions(user.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).
				Msg("Failed to get user permissions")

			return c.Next()
		}

		c.Locals("permissions", permissions)
		c.Locals("hasPermission", func(perm string) bool {
			if has, errHas := authService.HasPermission(user.ID, perm); errHas == nil {
				return has
			}

			return false
		})

		return c.Next()
	}
}
