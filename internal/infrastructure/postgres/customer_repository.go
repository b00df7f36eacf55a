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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository over PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create inserts a customer.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO pelanggan (id, store_id, nama, telp, alamat, aktif, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.StoreID, c.Name, c.Phone, c.Address, c.Active, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID returns the active customer or (nil, nil).
func (r *CustomerRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Customer, error) {
	query := `
		SELECT id, store_id, nama, telp, alamat, aktif, created_at
		FROM pelanggan WHERE store_id = $1 AND id = $2 AND aktif = true`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, storeID, id).Scan(
		&c.ID, &c.StoreID, &c.Name, &c.Phone, &c.Address, &c.Active, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List searches active customers by name or phone.
func (r *CustomerRepo) List(ctx context.Context, storeID, search string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, store_id, nama, telp, alamat, aktif, created_at
		FROM pelanggan WHERE store_id = $1 AND aktif = true`
	args := []any{storeID}
	if search != "" {
		query += ` AND (nama ILIKE $2 OR telp ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(" ORDER BY nama LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Phone, &c.Address, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update rewrites the contact columns.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE pelanggan SET nama = $3, telp = $4, alamat = $5 WHERE store_id = $1 AND id = $2`,
		c.StoreID, c.ID, c.Name, c.Phone, c.Address)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete deactivates the customer.
func (r *CustomerRepo) SoftDelete(ctx context.Context, storeID, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE pelanggan SET aktif = false WHERE store_id = $1 AND id = $2 AND aktif = true`,
		storeID, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
