package repository

import (
	"context"
	"time"
)

// DashboardStats aggregates today's figures for the dashboard screen.
type DashboardStats struct {
	RevenueToday      int64
	TransactionsToday int
	ProductCount      int
	LowStockCount     int
}

// SalesSummary aggregates completed sales between two dates.
type SalesSummary struct {
	Revenue          int64
	TransactionCount int
	ItemsSold        int
	PerDay           []SalesPerDay
}

// SalesPerDay is one day's revenue bucket.
type SalesPerDay struct {
	Date     time.Time
	Revenue  int64
	TxCount  int
}

// ReportRepository runs read-only aggregate queries; voided transactions are
// always excluded.
type ReportRepository interface {
	DashboardStats(ctx context.Context, storeID string, now time.Time) (*DashboardStats, error)
	SalesSummary(ctx context.Context, storeID string, from, to time.Time) (*SalesSummary, error)
}
