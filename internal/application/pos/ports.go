package pos

import (
	"context"

	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction with transaction-bound
// repositories. Everything fn does commits or rolls back as a unit; this is
// what makes a sale all-or-nothing.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(products repository.ProductRepository, movements repository.StockMovementRepository, transactions repository.TransactionRepository) error) error
}

// Ledger applies one stock movement against transaction-bound repositories.
type Ledger interface {
	Apply(ctx context.Context, products repository.ProductRepository, movements repository.StockMovementRepository, storeID string, mv inventory.Movement) (*inventory.MovementResult, error)
}

// Cache drops cached reads after a write. Must tolerate an absent backend.
type Cache interface {
	InvalidateProducts(ctx context.Context, storeID string)
	InvalidateTransactions(ctx context.Context, storeID string)
	InvalidateDashboard(ctx context.Context, storeID string)
}
