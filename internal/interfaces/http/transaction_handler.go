package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/pos"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/pkg/logger"
)

// ReceiptGenerator renders a transaction as a printable PDF.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, storeName string, t *dto.SaleDetailResponse) ([]byte, error)
}

// TransactionHandler serves /api/transaksi.
type TransactionHandler struct {
	sale      *pos.SaleUseCase
	void      *pos.VoidUseCase
	query     *pos.QueryUseCase
	receipts  ReceiptGenerator
	storeName string
	log       *logger.Logger
}

// NewTransactionHandler builds the handler.
func NewTransactionHandler(sale *pos.SaleUseCase, void *pos.VoidUseCase, query *pos.QueryUseCase, receipts ReceiptGenerator, storeName string, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		sale:      sale,
		void:      void,
		query:     query,
		receipts:  receipts,
		storeName: storeName,
		log:       log,
	}
}

// Create processes a sale. An X-Idempotency-Key replay answers 200 instead
// of 201 and charges nothing.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.IdempotencyKey = c.Get("X-Idempotency-Key")

	resp, err := h.sale.Create(c.Context(), GetStoreID(c), GetUserID(c), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if resp.Duplicate {
		return c.JSON(resp)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Void cancels a transaction (PATCH with status=dibatalkan).
func (h *TransactionHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.void.Void(c.Context(), GetStoreID(c), GetUserID(c), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Delete voids the transaction without a body, the shorthand the cashier UI
// uses for a plain cancel.
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	in := dto.VoidSaleRequest{Status: entity.TxStatusVoided}
	resp, err := h.void.Void(c.Context(), GetStoreID(c), GetUserID(c), c.Params("id"), &in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Get returns one transaction with items.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	resp, err := h.query.Get(c.Context(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// List pages transactions.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	resp, err := h.query.List(c.Context(), GetStoreID(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Receipt returns the printable PDF of a transaction.
func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	t, err := h.query.Get(c.Context(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	pdfBytes, err := h.receipts.GenerateReceipt(c.Context(), h.storeName, t)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="struk-`+t.Nomor+`.pdf"`)
	return c.Send(pdfBytes)
}
