package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/usecase"
	"github.com/iknmuh/mypos/pkg/logger"
)

// ProductHandler serves /api/produk.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create adds a product.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetStoreID(c), GetUserID(c), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get returns one product.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// List pages products with search and category filters.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(c.Context(), GetStoreID(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// LowStock lists products at or below their minimum stock.
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	resp, err := h.uc.ListLowStock(c.Context(), GetStoreID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"items": resp})
}

// Update rewrites a product's descriptive fields.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), GetStoreID(c), GetUserID(c), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Delete soft-deletes a product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetStoreID(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "produk dihapus"})
}
