package inventory

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction, handing it
// transaction-bound repositories. fn returning an error rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository, movements repository.StockMovementRepository) error) error
}

// Cache drops cached reads after a write. Implementations must tolerate an
// absent backend and never fail the caller.
type Cache interface {
	InvalidateProducts(ctx context.Context, storeID string)
	InvalidateDashboard(ctx context.Context, storeID string)
}
