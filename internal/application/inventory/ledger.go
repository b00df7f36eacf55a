package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
)

// Movement is one requested stock change.
type Movement struct {
	ProductID string
	Kind      string // masuk, keluar, koreksi
	Quantity  int
	Reference string // invoice or PO number that caused the change
	Note      string
}

// MovementResult reports the applied change.
type MovementResult struct {
	MovementID    string
	ProductName   string
	PreviousStock int
	NewStock      int
}

// Ledger is the single primitive that changes stock. Every caller (sale,
// void, purchase receipt, manual adjustment) goes through Apply so the stock
// column and the movement trail can never diverge.
type Ledger struct{}

// NewLedger creates the ledger primitive.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Apply mutates the product's stock and appends the matching ledger entry.
// It must run against transaction-bound repositories; the conditional update
// inside DecrementStock is what keeps stock from going negative under
// concurrent sales.
func (l *Ledger) Apply(ctx context.Context, products repository.ProductRepository, movements repository.StockMovementRepository, storeID string, mv Movement) (*MovementResult, error) {
	p, err := products.GetByID(ctx, storeID, mv.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", mv.ProductID, domain.ErrNotFound)
	}

	var newStock int
	switch mv.Kind {
	case entity.MovementOut:
		newStock, err = products.DecrementStock(ctx, storeID, mv.ProductID, mv.Quantity)
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   mv.Quantity,
			}
		}
	case entity.MovementIn:
		newStock, err = products.IncrementStock(ctx, storeID, mv.ProductID, mv.Quantity)
	case entity.MovementCorrection:
		newStock, err = products.SetStock(ctx, storeID, mv.ProductID, mv.Quantity)
	default:
		return nil, domain.NewValidationError("tipe penyesuaian tidak valid: %s", mv.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("apply %s movement: %w", mv.Kind, err)
	}

	entry := &entity.StockMovement{
		ID:             uuid.NewString(),
		StoreID:        storeID,
		ProductID:      mv.ProductID,
		Kind:           mv.Kind,
		Quantity:       mv.Quantity,
		ResultingStock: newStock,
		Reference:      mv.Reference,
		Note:           mv.Note,
		CreatedAt:      time.Now(),
	}
	if err := movements.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("record movement: %w", err)
	}

	return &MovementResult{
		MovementID:    entry.ID,
		ProductName:   p.Name,
		PreviousStock: p.Stock,
		NewStock:      newStock,
	}, nil
}
