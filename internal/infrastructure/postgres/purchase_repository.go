package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, store_id, nomor, supplier, status, total, catatan, received_at, created_at`

// PurchaseRepo implements PurchaseRepository over PostgreSQL (usable with
// pool or tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the adapter. Pass pool or tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserts the order header.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO pembelian (id, store_id, nomor, supplier, status, total, catatan, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.StoreID, p.Number, p.Supplier, p.Status, p.Total, p.Note, p.ReceivedAt, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// CreateItem inserts one order line.
func (r *PurchaseRepo) CreateItem(ctx context.Context, item *entity.PurchaseItem) error {
	query := `
		INSERT INTO pembelian_item (id, pembelian_id, produk_id, nama, harga, jumlah, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.PurchaseID, item.ProductID, item.ProductName,
		item.UnitCost, item.Quantity, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create purchase item: %w", err)
	}
	return nil
}

// GetByID returns the header or (nil, nil) when absent for the store.
func (r *PurchaseRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM pembelian WHERE store_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, id))
}

// GetForUpdate loads the header and locks the row until the surrounding
// transaction ends.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, storeID, id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM pembelian WHERE store_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, id))
}

// GetItems returns the order lines.
func (r *PurchaseRepo) GetItems(ctx context.Context, purchaseID string) ([]entity.PurchaseItem, error) {
	query := `
		SELECT id, pembelian_id, produk_id, nama, harga, jumlah, subtotal
		FROM pembelian_item WHERE pembelian_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(
			&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName,
			&it.UnitCost, &it.Quantity, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkReceived flips the status to diterima, guarded so a purchase can only
// be received once.
func (r *PurchaseRepo) MarkReceived(ctx context.Context, storeID, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE pembelian SET status = $4, received_at = $3
		WHERE store_id = $1 AND id = $2 AND status <> $4`,
		storeID, id, at, entity.PurchaseReceived)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM pembelian WHERE store_id = $1 AND id = $2)`,
			storeID, id).Scan(&exists); err != nil {
			return fmt.Errorf("check purchase: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyReceived
	}
	return nil
}

// List pages headers newest first, optionally filtered by status.
func (r *PurchaseRepo) List(ctx context.Context, storeID string, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	where := ` FROM pembelian WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	query := `SELECT ` + purchaseColumns + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.Number, &p.Supplier, &p.Status,
			&p.Total, &p.Note, &p.ReceivedAt, &p.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PurchaseRepo) scanOne(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.StoreID, &p.Number, &p.Supplier, &p.Status,
		&p.Total, &p.Note, &p.ReceivedAt, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}
