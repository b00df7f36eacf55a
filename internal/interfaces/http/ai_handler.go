package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/usecase"
	"github.com/iknmuh/mypos/pkg/logger"
)

// AIHandler serves /api/tanya-ai.
type AIHandler struct {
	uc  *usecase.AIUseCase
	log *logger.Logger
}

// NewAIHandler builds the handler.
func NewAIHandler(uc *usecase.AIUseCase, log *logger.Logger) *AIHandler {
	return &AIHandler{uc: uc, log: log}
}

// Ask forwards a business question to the assistant.
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	var in dto.AskAIRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Ask(c.Context(), GetStoreID(c), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}
