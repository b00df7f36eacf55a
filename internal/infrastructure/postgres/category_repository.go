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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements CategoryRepository over PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the adapter. Pass pool or tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create inserts a category.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO kategori (id, store_id, nama, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.StoreID, c.Name, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetByID returns the category or (nil, nil).
func (r *CategoryRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, store_id, nama, created_at FROM kategori WHERE store_id = $1 AND id = $2`,
		storeID, id).Scan(&c.ID, &c.StoreID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List returns all categories of the store, alphabetically.
func (r *CategoryRepo) List(ctx context.Context, storeID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, store_id, nama, created_at FROM kategori WHERE store_id = $1 ORDER BY nama`,
		storeID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update renames the category.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE kategori SET nama = $3 WHERE store_id = $1 AND id = $2`,
		c.StoreID, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the category; produk.kategori_id nulls out via the FK.
func (r *CategoryRepo) Delete(ctx context.Context, storeID, id string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM kategori WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
