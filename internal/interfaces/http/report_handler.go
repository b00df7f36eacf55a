package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/usecase"
	"github.com/iknmuh/mypos/pkg/logger"
)

// ReportHandler serves /api/dashboard and /api/laporan.
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	log *logger.Logger
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *usecase.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Dashboard returns today's headline figures.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context(), GetStoreID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Sales returns the sales report for a date range.
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.SalesReport(c.Context(), GetStoreID(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}
