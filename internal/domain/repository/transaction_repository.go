package repository

import (
	"context"
	"time"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
	Limit  int
	Offset int
}

// TransactionRepository persists sale invoices and their line items.
// GetByID/GetForUpdate return (nil, nil) when absent or cross-store.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	CreateItem(ctx context.Context, item *entity.TransactionItem) error
	GetByID(ctx context.Context, storeID, id string) (*entity.Transaction, error)
	// GetForUpdate loads the header only, locking the row for the duration
	// of the surrounding transaction.
	GetForUpdate(ctx context.Context, storeID, id string) (*entity.Transaction, error)
	GetItems(ctx context.Context, transactionID string) ([]entity.TransactionItem, error)
	GetByIdempotencyKey(ctx context.Context, storeID, key string) (*entity.Transaction, error)
	// MarkVoided flips status to dibatalkan, guarded so an already-voided
	// row is never re-voided. Returns ErrAlreadyVoided when the guard fails.
	MarkVoided(ctx context.Context, storeID, id, reason string) error
	List(ctx context.Context, storeID string, f TransactionFilter) ([]*entity.Transaction, int, error)
}
