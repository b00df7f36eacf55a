package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/pkg/jwt"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID  = "user_id"
	LocalStoreID = "store_id"
	LocalRole    = "role"
)

// AuthMiddleware validates the Bearer token and stores the caller's identity
// in c.Locals. The store identity from the token scopes every query below.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header wajib diisi")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "format: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token kosong")
		}
		userID, storeID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token tidak valid atau kedaluwarsa")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalStoreID, storeID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireOwner gates owner-only routes. Runs after AuthMiddleware.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleOwner {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "hanya pemilik toko"})
		}
		return c.Next()
	}
}

// Limiter is the rate-limit backend; a nil-backed implementation allows all.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimitMiddleware enforces a fixed-window budget per client IP. The name
// keys separate budgets, so auth can be stricter than the rest of the API.
func RateLimitMiddleware(limiter Limiter, name string, perMinute int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ratelimit:" + name + ":" + c.IP()
		if !limiter.Allow(c.Context(), key, perMinute, time.Minute) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "terlalu banyak permintaan, coba lagi nanti",
			})
		}
		return c.Next()
	}
}

// GetUserID returns the authenticated user id set by AuthMiddleware.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetStoreID returns the caller's store identity set by AuthMiddleware.
func GetStoreID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalStoreID).(string)
	return s
}

// GetRole returns the caller's role set by AuthMiddleware.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
