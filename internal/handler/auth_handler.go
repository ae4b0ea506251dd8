package handler

import (
	"os"
	"time"

	"go-inventory-pos/internal/middleware"
	"go-inventory-pos/internal/service"
	"go-inventory-pos/pkg/token"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}

func setAuthCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   secureCookies(),
		SameSite: "Lax",
	})
}

func clearAuthCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secureCookies(),
		SameSite: "Lax",
	})
}

// Register handles account creation
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

// Login authenticates and sets the two httpOnly auth cookies
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	user, pair, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	setAuthCookie(c, middleware.AccessCookie, pair.AccessToken, token.AccessTokenTTL)
	setAuthCookie(c, middleware.RefreshCookie, pair.RefreshToken, token.RefreshTokenTTL)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user.ToResponse(),
	})
}

// Logout revokes the stored refresh token and clears both cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refresh := c.Cookies(middleware.RefreshCookie)
	if err := h.authService.Logout(refresh); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log out", "detail": err.Error()})
	}

	clearAuthCookie(c, middleware.AccessCookie)
	clearAuthCookie(c, middleware.RefreshCookie)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Refresh mints a new access cookie from a valid refresh cookie
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refresh := c.Cookies(middleware.RefreshCookie)
	if refresh == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No refresh token"})
	}

	accessToken, err := h.authService.Refresh(refresh)
	if err != nil {
		return c.Status(403).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}

	setAuthCookie(c, middleware.AccessCookie, accessToken, token.AccessTokenTTL)
	return c.JSON(fiber.Map{"message": "Token refreshed"})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(currentUserID(c))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user.ToResponse())
}
