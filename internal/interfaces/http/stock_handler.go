package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/pkg/logger"
)

// StockHandler serves /api/stok.
type StockHandler struct {
	uc  *inventory.UseCase
	log *logger.Logger
}

// NewStockHandler builds the handler.
func NewStockHandler(uc *inventory.UseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// Adjust applies a manual stock change.
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Adjust(c.Context(), GetStoreID(c), GetUserID(c), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Movements lists recent ledger entries, optionally for one product.
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	resp, err := h.uc.Movements(c.Context(), GetStoreID(c), c.Query("produk_id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"items": resp})
}
