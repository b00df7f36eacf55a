package repository

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// CategoryRepository persists product categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Category, error)
	List(ctx context.Context, storeID string) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, storeID, id string) error
}
