package middleware

import (
	"github.com/gofiber/fiber/v2"

	"examhub/backend/config"
	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/utils"
)

const userLocalsKey = "user"

// Authenticate verifies the bearer token and loads the account behind it
// into the request context.
func Authenticate(cfg *config.Config, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := utils.ExtractBearerToken(c)
		if err != nil {
			return utils.Unauthorized(c, "Missing authorization token")
		}

		userID, err := utils.ParseToken(token, cfg.JWTSecret)
		if err != nil {
			return utils.Unauthorized(c, "Invalid token")
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return utils.ServiceError(c, err)
		}
		if user == nil {
			return utils.Unauthorized(c, "Invalid token")
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated account, or nil outside an
// authenticated route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// RequireRoles rejects requests from accounts outside the given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Unauthorized(c, "Missing authorization token")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient permissions")
	}
}

func AdminOnly() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}

func TeacherOrAdmin() fiber.Handler {
	return RequireRoles(models.RoleTeacher, models.RoleAdmin)
}

func StudentOnly() fiber.Handler {
	return RequireRoles(models.RoleStudent)
}
