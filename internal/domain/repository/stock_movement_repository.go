package repository

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// StockMovementRepository appends and reads the stock ledger. Entries are
// append-only; there is no update or delete.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByStore(ctx context.Context, storeID, productID string, limit int) ([]*entity.StockMovement, error)
}
