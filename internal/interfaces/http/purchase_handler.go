package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/purchasing"
	"github.com/iknmuh/mypos/pkg/logger"
)

// PurchaseHandler serves /api/pembelian.
type PurchaseHandler struct {
	uc  *purchasing.UseCase
	log *logger.Logger
}

// NewPurchaseHandler builds the handler.
func NewPurchaseHandler(uc *purchasing.UseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Create records a supplier order.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetStoreID(c), GetUserID(c), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Receive books the ordered goods into stock.
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	resp, err := h.uc.Receive(c.Context(), GetStoreID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Get returns one purchase with items.
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// List pages purchases.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var q dto.PurchaseListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(c.Context(), GetStoreID(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}
