package repository

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search          string // matches name or code
	CategoryID      string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ProductRepository persists products. GetByID returns (nil, nil) when the
// product does not exist or belongs to another store.
//
// The three *Stock methods are the only writes to produk.stok in the whole
// system and are implemented as conditional updates so that the check and the
// write are one indivisible step per product, even under concurrent callers.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, storeID, code string) (*entity.Product, error)
	List(ctx context.Context, storeID string, f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context, storeID string) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	SoftDelete(ctx context.Context, storeID, id string) error

	// DecrementStock subtracts qty where stock >= qty, returning the new
	// stock. Returns ErrInsufficientStock when the guard fails and
	// ErrNotFound when the product is absent for the store.
	DecrementStock(ctx context.Context, storeID, id string, qty int) (int, error)
	// IncrementStock adds qty, returning the new stock. ErrNotFound when absent.
	IncrementStock(ctx context.Context, storeID, id string, qty int) (int, error)
	// SetStock restates the absolute stock value, returning it. ErrNotFound when absent.
	SetStock(ctx context.Context, storeID, id string, qty int) (int, error)
}
