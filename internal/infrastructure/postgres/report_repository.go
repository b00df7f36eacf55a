package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo runs the aggregate queries behind the dashboard and reports.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter. Pass pool or tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DashboardStats aggregates today's figures. Voided transactions never count.
func (r *ReportRepo) DashboardStats(ctx context.Context, storeID string, now time.Time) (*repository.DashboardStats, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var s repository.DashboardStats
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(sum(grand_total), 0), count(*)
		FROM transaksi
		WHERE store_id = $1 AND status = $2 AND created_at >= $3`,
		storeID, entity.TxStatusCompleted, dayStart,
	).Scan(&s.RevenueToday, &s.TransactionsToday)
	if err != nil {
		return nil, fmt.Errorf("today stats: %w", err)
	}

	err = r.q.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE stok <= stok_minimal)
		FROM produk WHERE store_id = $1 AND aktif = true`,
		storeID,
	).Scan(&s.ProductCount, &s.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	return &s, nil
}

// SalesSummary aggregates completed sales in [from, to], bucketed per day.
func (r *ReportRepo) SalesSummary(ctx context.Context, storeID string, from, to time.Time) (*repository.SalesSummary, error) {
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(sum(t.grand_total), 0), count(DISTINCT t.id), COALESCE(sum(i.jumlah), 0)
		FROM transaksi t
		LEFT JOIN transaksi_item i ON i.transaksi_id = t.id
		WHERE t.store_id = $1 AND t.status = $2 AND t.created_at BETWEEN $3 AND $4`,
		storeID, entity.TxStatusCompleted, from, to,
	).Scan(&s.Revenue, &s.TransactionCount, &s.ItemsSold)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', created_at) AS hari, COALESCE(sum(grand_total), 0), count(*)
		FROM transaksi
		WHERE store_id = $1 AND status = $2 AND created_at BETWEEN $3 AND $4
		GROUP BY hari ORDER BY hari`,
		storeID, entity.TxStatusCompleted, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("sales per day: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d repository.SalesPerDay
		if err := rows.Scan(&d.Date, &d.Revenue, &d.TxCount); err != nil {
			return nil, fmt.Errorf("scan sales per day: %w", err)
		}
		s.PerDay = append(s.PerDay, d)
	}
	return &s, rows.Err()
}
