package repository

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// CustomerRepository persists customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Customer, error)
	List(ctx context.Context, storeID, search string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	SoftDelete(ctx context.Context, storeID, id string) error
}
