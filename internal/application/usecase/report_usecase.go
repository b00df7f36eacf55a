package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

const dashboardTTL = 60 * time.Second

// ReportUseCase serves the dashboard and the sales report. Voided
// transactions never count toward revenue.
type ReportUseCase struct {
	reports repository.ReportRepository
	cache   Cache
}

// NewReportUseCase wires the reporting use case.
func NewReportUseCase(reports repository.ReportRepository, cache Cache) *ReportUseCase {
	return &ReportUseCase{reports: reports, cache: cache}
}

// Dashboard returns today's headline figures, cached briefly.
func (uc *ReportUseCase) Dashboard(ctx context.Context, storeID string) (*dto.DashboardResponse, error) {
	key := "dashboard:" + storeID
	var cached dto.DashboardResponse
	if uc.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	stats, err := uc.reports.DashboardStats(ctx, storeID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	resp := dto.NewDashboardResponse(stats)
	uc.cache.SetJSON(ctx, key, &resp, dashboardTTL)
	return &resp, nil
}

// SalesReport aggregates completed sales between two dates, inclusive. An
// empty range defaults to the last 30 days.
func (uc *ReportUseCase) SalesReport(ctx context.Context, storeID string, q dto.ReportQuery) (*dto.SalesReportResponse, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if q.From != "" {
		from, err = time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, domain.NewValidationError("tanggal from tidak valid: %s", q.From)
		}
	}
	if q.To != "" {
		to, err = time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, domain.NewValidationError("tanggal to tidak valid: %s", q.To)
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		return nil, domain.NewValidationError("rentang tanggal tidak valid")
	}

	summary, err := uc.reports.SalesSummary(ctx, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	resp := dto.NewSalesReportResponse(summary)
	return &resp, nil
}
