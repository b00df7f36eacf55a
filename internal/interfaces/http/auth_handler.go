package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/auth"
	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/pkg/logger"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	uc  *auth.UseCase
	log *logger.Logger
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register creates a store owner account and returns a token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Register(c.Context(), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Login(c.Context(), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}
