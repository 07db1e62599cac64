package middleware

import (
	"errors"
	"strings"

	"inventori/internal/models"
	"inventori/internal/repositories"
	"inventori/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the locals key under which AuthRequired stores the resolved
// *models.User.
const UserKey = "user"

// AuthRequired gates a route behind a valid bearer token. The token subject
// is resolved against the user store on every request, so a token for a
// deleted account is rejected even though the signature still verifies. The
// resolved user is stored in c.Locals(UserKey) for downstream handlers.
func AuthRequired(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. No token provided.",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. No token provided.",
			})
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Token expired. Please login again.",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Token is not valid.",
			})
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Token is not valid. User not found.",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// AdminRequired rejects requests whose resolved user does not hold the admin
// role. Must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. Admin privileges required.",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
