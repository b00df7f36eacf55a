package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/logger"
)

const storeID = "11111111-1111-1111-1111-111111111111"

// fakeProducts covers only the methods the ledger touches. The embedded
// interface panics on anything else, which is exactly what a test wants.
type fakeProducts struct {
	repository.ProductRepository
	byID map[string]*entity.Product
}

func (f *fakeProducts) GetByID(_ context.Context, sid, id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok || p.StoreID != sid {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) DecrementStock(_ context.Context, sid, id string, qty int) (int, error) {
	p, ok := f.byID[id]
	if !ok || p.StoreID != sid {
		return 0, domain.ErrNotFound
	}
	if p.Stock < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return p.Stock, nil
}

func (f *fakeProducts) IncrementStock(_ context.Context, sid, id string, qty int) (int, error) {
	p, ok := f.byID[id]
	if !ok || p.StoreID != sid {
		return 0, domain.ErrNotFound
	}
	p.Stock += qty
	return p.Stock, nil
}

func (f *fakeProducts) SetStock(_ context.Context, sid, id string, qty int) (int, error) {
	p, ok := f.byID[id]
	if !ok || p.StoreID != sid {
		return 0, domain.ErrNotFound
	}
	p.Stock = qty
	return p.Stock, nil
}

type fakeMovements struct {
	repository.StockMovementRepository
	entries []*entity.StockMovement
}

func (f *fakeMovements) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeMovements) ListByStore(_ context.Context, sid, productID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.entries {
		if m.StoreID != sid {
			continue
		}
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func seed(stock int) (*fakeProducts, *fakeMovements) {
	products := &fakeProducts{byID: map[string]*entity.Product{
		"p-1": {ID: "p-1", StoreID: storeID, Name: "Indomie Goreng", Stock: stock, Active: true},
	}}
	return products, &fakeMovements{}
}

func TestLedgerApply_OutDecrementsAndRecords(t *testing.T) {
	products, movements := seed(10)
	ledger := inventory.NewLedger()

	result, err := ledger.Apply(context.Background(), products, movements, storeID, inventory.Movement{
		ProductID: "p-1",
		Kind:      entity.MovementOut,
		Quantity:  4,
		Reference: "INV-20260831-AABBCCDD",
		Note:      "penjualan",
	})
	require.NoError(t, err)

	assert.Equal(t, "Indomie Goreng", result.ProductName)
	assert.Equal(t, 10, result.PreviousStock)
	assert.Equal(t, 6, result.NewStock)
	assert.Equal(t, 6, products.byID["p-1"].Stock)

	require.Len(t, movements.entries, 1)
	entry := movements.entries[0]
	assert.Equal(t, entity.MovementOut, entry.Kind)
	assert.Equal(t, 4, entry.Quantity)
	assert.Equal(t, 6, entry.ResultingStock)
	assert.Equal(t, "INV-20260831-AABBCCDD", entry.Reference)
}

func TestLedgerApply_OutBeyondStockFailsWithoutRecording(t *testing.T) {
	products, movements := seed(3)
	ledger := inventory.NewLedger()

	_, err := ledger.Apply(context.Background(), products, movements, storeID, inventory.Movement{
		ProductID: "p-1", Kind: entity.MovementOut, Quantity: 5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Indomie Goreng", stockErr.ProductName)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	assert.Equal(t, 3, products.byID["p-1"].Stock)
	assert.Empty(t, movements.entries)
}

// wrappedFailProducts reports the guard failure wrapped the way a storage
// adapter would.
type wrappedFailProducts struct{ *fakeProducts }

func (w *wrappedFailProducts) DecrementStock(_ context.Context, _, _ string, _ int) (int, error) {
	return 0, fmt.Errorf("decrement stock: %w", domain.ErrInsufficientStock)
}

func TestLedgerApply_DetectsWrappedInsufficientStock(t *testing.T) {
	products, movements := seed(3)
	ledger := inventory.NewLedger()

	_, err := ledger.Apply(context.Background(), &wrappedFailProducts{products}, movements, storeID, inventory.Movement{
		ProductID: "p-1", Kind: entity.MovementOut, Quantity: 5,
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr, "the typed error must survive wrapping by the repository")
	assert.Equal(t, "Indomie Goreng", stockErr.ProductName)
	assert.Empty(t, movements.entries)
}

func TestLedgerApply_InIncrements(t *testing.T) {
	products, movements := seed(3)
	ledger := inventory.NewLedger()

	result, err := ledger.Apply(context.Background(), products, movements, storeID, inventory.Movement{
		ProductID: "p-1", Kind: entity.MovementIn, Quantity: 7, Note: "penerimaan pembelian",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.NewStock)
	require.Len(t, movements.entries, 1)
	assert.Equal(t, 10, movements.entries[0].ResultingStock)
}

func TestLedgerApply_CorrectionRestatesAbsoluteStock(t *testing.T) {
	products, movements := seed(42)
	ledger := inventory.NewLedger()

	result, err := ledger.Apply(context.Background(), products, movements, storeID, inventory.Movement{
		ProductID: "p-1", Kind: entity.MovementCorrection, Quantity: 15, Note: "opname",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result.PreviousStock)
	assert.Equal(t, 15, result.NewStock)
	assert.Equal(t, 15, products.byID["p-1"].Stock)
}

func TestLedgerApply_UnknownKindRejected(t *testing.T) {
	products, movements := seed(10)
	ledger := inventory.NewLedger()

	_, err := ledger.Apply(context.Background(), products, movements, storeID, inventory.Movement{
		ProductID: "p-1", Kind: "teleport", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movements.entries)
}

func TestLedgerApply_MissingProduct(t *testing.T) {
	products, movements := seed(10)
	ledger := inventory.NewLedger()

	_, err := ledger.Apply(context.Background(), products, movements, storeID, inventory.Movement{
		ProductID: "p-x", Kind: entity.MovementIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// fakeTxRunner runs fn against the fakes directly; the adjustment use case
// only needs the plumbing, not real transaction semantics.
type fakeTxRunner struct {
	products  *fakeProducts
	movements *fakeMovements
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(f.products, f.movements)
}

type fakeAudit struct {
	repository.AuditLogRepository
	entries []*entity.AuditLog
}

func (f *fakeAudit) Create(_ context.Context, e *entity.AuditLog) error {
	f.entries = append(f.entries, e)
	return nil
}

type nopCache struct{}

func (nopCache) InvalidateProducts(context.Context, string)  {}
func (nopCache) InvalidateDashboard(context.Context, string) {}

func TestAdjust_AppliesMovementAndAudits(t *testing.T) {
	products, movements := seed(10)
	audit := &fakeAudit{}
	uc := inventory.NewUseCase(
		&fakeTxRunner{products, movements},
		inventory.NewLedger(),
		movements,
		audit,
		nopCache{},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)

	resp, err := uc.Adjust(context.Background(), storeID, "u-1", &dto.StockAdjustmentRequest{
		ProdukID: "p-1",
		Tipe:     entity.MovementIn,
		Jumlah:   5,
		Catatan:  "restock gudang",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.StokAwal)
	assert.Equal(t, 15, resp.StokAkhir)
	assert.Equal(t, 15, products.byID["p-1"].Stock)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "stok_adjustment", audit.entries[0].TableName)
}

func TestAdjust_RejectsInvalidKindBeforeTouchingStock(t *testing.T) {
	products, movements := seed(10)
	uc := inventory.NewUseCase(
		&fakeTxRunner{products, movements},
		inventory.NewLedger(),
		movements,
		&fakeAudit{},
		nopCache{},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)

	_, err := uc.Adjust(context.Background(), storeID, "u-1", &dto.StockAdjustmentRequest{
		ProdukID: "p-1", Tipe: "pinjam", Jumlah: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, products.byID["p-1"].Stock)
}

func TestAdjust_NegativeCorrectionRejected(t *testing.T) {
	products, movements := seed(10)
	uc := inventory.NewUseCase(
		&fakeTxRunner{products, movements},
		inventory.NewLedger(),
		movements,
		&fakeAudit{},
		nopCache{},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)

	_, err := uc.Adjust(context.Background(), storeID, "u-1", &dto.StockAdjustmentRequest{
		ProdukID: "p-1", Tipe: entity.MovementCorrection, Jumlah: -2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
