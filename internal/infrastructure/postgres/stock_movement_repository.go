package postgres

import (
	"context"
	"fmt"

	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implements the append-only stock ledger over PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter. Pass pool or tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends one ledger entry.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stok_adjustment (id, store_id, produk_id, tipe, jumlah, stok_akhir, referensi, catatan, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StoreID, m.ProductID, m.Kind, m.Quantity,
		m.ResultingStock, m.Reference, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByStore returns the newest entries, optionally scoped to one product.
func (r *StockMovementRepo) ListByStore(ctx context.Context, storeID, productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, store_id, produk_id, tipe, jumlah, stok_akhir, referensi, catatan, created_at
		FROM stok_adjustment WHERE store_id = $1`
	args := []any{storeID}
	if productID != "" {
		query += ` AND produk_id = $2`
		args = append(args, productID)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.StoreID, &m.ProductID, &m.Kind, &m.Quantity,
			&m.ResultingStock, &m.Reference, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
