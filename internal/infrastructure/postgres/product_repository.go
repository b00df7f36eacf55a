package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, store_id, nama, kode, kategori_id, satuan, harga_beli, harga_jual, stok, stok_minimal, aktif, created_at, updated_at`

// ProductRepo implements ProductRepository over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserts a product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO produk (id, store_id, nama, kode, kategori_id, satuan, harga_beli, harga_jual, stok, stok_minimal, aktif, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.StoreID, p.Name, p.Code, p.CategoryID, p.Unit,
		p.PurchasePrice, p.SalePrice, p.Stock, p.MinStock, p.Active,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID returns the product or (nil, nil) when absent for the store.
func (r *ProductRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produk WHERE store_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, id))
}

// GetByCode returns the active product with the code or (nil, nil).
func (r *ProductRepo) GetByCode(ctx context.Context, storeID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produk WHERE store_id = $1 AND kode = $2 AND aktif = true`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, code))
}

// List pages active products, optionally filtered by search text or category.
func (r *ProductRepo) List(ctx context.Context, storeID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ` FROM produk WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if !f.IncludeInactive {
		where += ` AND aktif = true`
	}
	if f.Search != "" {
		where += fmt.Sprintf(" AND (nama ILIKE $%d OR kode ILIKE $%d)", pos, pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.CategoryID != "" {
		where += fmt.Sprintf(" AND kategori_id = $%d", pos)
		args = append(args, f.CategoryID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + where +
		fmt.Sprintf(" ORDER BY nama LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list, err := r.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListLowStock returns active products at or below their minimum stock.
func (r *ProductRepo) ListLowStock(ctx context.Context, storeID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM produk WHERE store_id = $1 AND aktif = true AND stok <= stok_minimal
		ORDER BY stok ASC`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// Update rewrites the descriptive columns. Stock is deliberately excluded.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE produk
		SET nama = $3, kode = $4, kategori_id = $5, satuan = $6,
		    harga_beli = $7, harga_jual = $8, stok_minimal = $9, updated_at = $10
		WHERE store_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.StoreID, p.ID, p.Name, p.Code, p.CategoryID, p.Unit,
		p.PurchasePrice, p.SalePrice, p.MinStock, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete deactivates the product, keeping history intact.
func (r *ProductRepo) SoftDelete(ctx context.Context, storeID, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE produk SET aktif = false, updated_at = now() WHERE store_id = $1 AND id = $2 AND aktif = true`,
		storeID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock subtracts qty only when enough stock exists. The guard and
// the write are one statement, so concurrent sales can never oversell.
func (r *ProductRepo) DecrementStock(ctx context.Context, storeID, id string, qty int) (int, error) {
	var newStock int
	err := r.q.QueryRow(ctx, `
		UPDATE produk SET stok = stok - $3, updated_at = now()
		WHERE store_id = $1 AND id = $2 AND stok >= $3
		RETURNING stok`,
		storeID, id, qty).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing product from an insufficient balance.
		var exists bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM produk WHERE store_id = $1 AND id = $2)`,
			storeID, id).Scan(&exists); err != nil {
			return 0, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrInsufficientStock
	}
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return newStock, nil
}

// IncrementStock adds qty and returns the new balance.
func (r *ProductRepo) IncrementStock(ctx context.Context, storeID, id string, qty int) (int, error) {
	var newStock int
	err := r.q.QueryRow(ctx, `
		UPDATE produk SET stok = stok + $3, updated_at = now()
		WHERE store_id = $1 AND id = $2
		RETURNING stok`,
		storeID, id, qty).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return newStock, nil
}

// SetStock restates the absolute balance and returns it.
func (r *ProductRepo) SetStock(ctx context.Context, storeID, id string, qty int) (int, error) {
	var newStock int
	err := r.q.QueryRow(ctx, `
		UPDATE produk SET stok = $3, updated_at = now()
		WHERE store_id = $1 AND id = $2
		RETURNING stok`,
		storeID, id, qty).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("set stock: %w", err)
	}
	return newStock, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Code, &p.CategoryID, &p.Unit,
		&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinStock, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanRows(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.Name, &p.Code, &p.CategoryID, &p.Unit,
			&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinStock, &p.Active,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
