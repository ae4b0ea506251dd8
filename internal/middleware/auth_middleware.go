package middleware

import (
	"strings"

	"go-inventory-pos/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Cookie names shared with the auth handler.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// RequireAuth validates the access token from the httpOnly cookie (or a
// Bearer header for non-browser clients) and stores the caller's identity
// on the request context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AccessCookie)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				tokenString = after
			}
		}
		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Access denied. No token provided."})
		}

		claims, err := token.ValidateAccessToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Role)
		return c.Next()
	}
}

// RequireRole gates a route on the role carried by the access token.
// Must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("user_role").(string)
		if !ok || userRole != role {
			return c.Status(403).JSON(fiber.Map{"error": "Access denied. Insufficient permissions."})
		}
		return c.Next()
	}
}
