package repository

import (
	"context"
	"time"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// PurchaseFilter narrows purchase listings.
type PurchaseFilter struct {
	Status string
	Limit  int
	Offset int
}

// PurchaseRepository persists supplier orders.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Purchase, error)
	GetForUpdate(ctx context.Context, storeID, id string) (*entity.Purchase, error)
	GetItems(ctx context.Context, purchaseID string) ([]entity.PurchaseItem, error)
	// MarkReceived flips status to diterima, guarded against re-receiving.
	// Returns ErrAlreadyReceived when the purchase was received before.
	MarkReceived(ctx context.Context, storeID, id string, at time.Time) error
	List(ctx context.Context, storeID string, f PurchaseFilter) ([]*entity.Purchase, int, error)
}
