package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/application/purchasing"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/logger"
)

const (
	storeID = "11111111-1111-1111-1111-111111111111"
	userID  = "22222222-2222-2222-2222-222222222222"
)

type fakeState struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	purchases map[string]*entity.Purchase
	items     map[string][]entity.PurchaseItem
}

func newState() *fakeState {
	return &fakeState{
		products:  map[string]*entity.Product{},
		purchases: map[string]*entity.Purchase{},
		items:     map[string][]entity.PurchaseItem{},
	}
}

func (s *fakeState) snapshot() *fakeState {
	snap := newState()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	snap.movements = append([]*entity.StockMovement(nil), s.movements...)
	for id, p := range s.purchases {
		cp := *p
		snap.purchases[id] = &cp
	}
	for id, items := range s.items {
		snap.items[id] = append([]entity.PurchaseItem(nil), items...)
	}
	return snap
}

type fakeProducts struct {
	repository.ProductRepository
	s *fakeState
}

func (f *fakeProducts) GetByID(_ context.Context, sid, id string) (*entity.Product, error) {
	p, ok := f.s.products[id]
	if !ok || p.StoreID != sid {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) IncrementStock(_ context.Context, sid, id string, qty int) (int, error) {
	p, ok := f.s.products[id]
	if !ok || p.StoreID != sid {
		return 0, domain.ErrNotFound
	}
	p.Stock += qty
	return p.Stock, nil
}

type fakeMovements struct {
	repository.StockMovementRepository
	s *fakeState
}

func (f *fakeMovements) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	f.s.movements = append(f.s.movements, &cp)
	return nil
}

type fakePurchases struct {
	repository.PurchaseRepository
	s *fakeState
}

func (f *fakePurchases) Create(_ context.Context, p *entity.Purchase) error {
	cp := *p
	cp.Items = nil
	f.s.purchases[p.ID] = &cp
	return nil
}

func (f *fakePurchases) CreateItem(_ context.Context, item *entity.PurchaseItem) error {
	f.s.items[item.PurchaseID] = append(f.s.items[item.PurchaseID], *item)
	return nil
}

func (f *fakePurchases) GetByID(_ context.Context, sid, id string) (*entity.Purchase, error) {
	p, ok := f.s.purchases[id]
	if !ok || p.StoreID != sid {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchases) GetForUpdate(ctx context.Context, sid, id string) (*entity.Purchase, error) {
	return f.GetByID(ctx, sid, id)
}

func (f *fakePurchases) GetItems(_ context.Context, purchaseID string) ([]entity.PurchaseItem, error) {
	return append([]entity.PurchaseItem(nil), f.s.items[purchaseID]...), nil
}

func (f *fakePurchases) MarkReceived(_ context.Context, sid, id string, at time.Time) error {
	p, ok := f.s.purchases[id]
	if !ok || p.StoreID != sid {
		return domain.ErrNotFound
	}
	if p.Status == entity.PurchaseReceived {
		return domain.ErrAlreadyReceived
	}
	p.Status = entity.PurchaseReceived
	p.ReceivedAt = &at
	return nil
}

func (f *fakePurchases) List(_ context.Context, sid string, filter repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	var list []*entity.Purchase
	for _, p := range f.s.purchases {
		if p.StoreID != sid {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	return list, len(list), nil
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

type fakeTxRunner struct{ s *fakeState }

func (f *fakeTxRunner) RunPurchase(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository, repository.PurchaseRepository) error) error {
	snap := f.s.snapshot()
	if err := fn(&fakeProducts{s: f.s}, &fakeMovements{s: f.s}, &fakePurchases{s: f.s}); err != nil {
		*f.s = *snap
		return err
	}
	return nil
}

func newEnv() (*fakeState, *purchasing.UseCase) {
	s := newState()
	uc := purchasing.NewUseCase(
		&fakeTxRunner{s},
		inventory.NewLedger(),
		&fakePurchases{s: s},
		&fakeAudit{},
		nopCache{},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	return s, uc
}

func seedProduct(s *fakeState, id, name string, stock int) {
	s.products[id] = &entity.Product{ID: id, StoreID: storeID, Name: name, Stock: stock, Active: true}
}

func orderRequest() *dto.CreatePurchaseRequest {
	return &dto.CreatePurchaseRequest{
		Supplier: "PT Sumber Rejeki",
		Items: []dto.PurchaseItemRequest{
			{ProdukID: "p-kopi", Nama: "Kopi Sachet", Harga: 1800, Jumlah: 24},
			{ProdukID: "p-teh", Harga: 3500, Jumlah: 12},
		},
	}
}

func TestCreatePurchase_RecordsOrderWithoutMovingStock(t *testing.T) {
	s, uc := newEnv()
	seedProduct(s, "p-kopi", "Kopi Sachet", 5)
	seedProduct(s, "p-teh", "Teh Botol", 2)

	resp, err := uc.Create(context.Background(), storeID, userID, orderRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^PO-\d{8}-`, resp.Nomor)
	assert.Equal(t, entity.PurchaseOrdered, resp.Status)
	assert.Equal(t, int64(1800*24+3500*12), resp.Total)
	require.Len(t, resp.Items, 2)
	// Missing line name filled from the catalog.
	assert.Equal(t, "Teh Botol", resp.Items[1].Nama)

	// Ordering must not touch stock.
	assert.Equal(t, 5, s.products["p-kopi"].Stock)
	assert.Equal(t, 2, s.products["p-teh"].Stock)
	assert.Empty(t, s.movements)
}

func TestCreatePurchase_UnknownProductRejected(t *testing.T) {
	s, uc := newEnv()
	seedProduct(s, "p-kopi", "Kopi Sachet", 5)

	_, err := uc.Create(context.Background(), storeID, userID, orderRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.purchases)
}

func TestCreatePurchase_ValidationErrors(t *testing.T) {
	_, uc := newEnv()

	_, err := uc.Create(context.Background(), storeID, userID, &dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{{ProdukID: "p", Harga: 1, Jumlah: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "missing supplier")

	_, err = uc.Create(context.Background(), storeID, userID, &dto.CreatePurchaseRequest{Supplier: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty items")

	_, err = uc.Create(context.Background(), storeID, userID, &dto.CreatePurchaseRequest{
		Supplier: "X",
		Items:    []dto.PurchaseItemRequest{{ProdukID: "p", Harga: 1, Jumlah: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero quantity")
}

func TestReceivePurchase_StocksInEveryLineAndFlipsStatus(t *testing.T) {
	s, uc := newEnv()
	seedProduct(s, "p-kopi", "Kopi Sachet", 5)
	seedProduct(s, "p-teh", "Teh Botol", 2)

	created, err := uc.Create(context.Background(), storeID, userID, orderRequest())
	require.NoError(t, err)

	resp, err := uc.Receive(context.Background(), storeID, userID, created.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseReceived, resp.Status)
	require.NotNil(t, resp.ReceivedAt)
	assert.Equal(t, 5+24, s.products["p-kopi"].Stock)
	assert.Equal(t, 2+12, s.products["p-teh"].Stock)

	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.MovementIn, s.movements[0].Kind)
	assert.Equal(t, created.Nomor, s.movements[0].Reference)
}

func TestReceivePurchase_SecondReceiveRejectedWithoutDoubleStocking(t *testing.T) {
	s, uc := newEnv()
	seedProduct(s, "p-kopi", "Kopi Sachet", 5)
	seedProduct(s, "p-teh", "Teh Botol", 2)

	created, err := uc.Create(context.Background(), storeID, userID, orderRequest())
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), storeID, userID, created.ID)
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), storeID, userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)

	// Stock charged exactly once.
	assert.Equal(t, 5+24, s.products["p-kopi"].Stock)
	assert.Len(t, s.movements, 2)
}

func TestReceivePurchase_MissingProductRollsBackWholeReceipt(t *testing.T) {
	s, uc := newEnv()
	seedProduct(s, "p-kopi", "Kopi Sachet", 5)
	seedProduct(s, "p-teh", "Teh Botol", 2)

	created, err := uc.Create(context.Background(), storeID, userID, orderRequest())
	require.NoError(t, err)

	// The second line's product disappears before the goods arrive.
	delete(s.products, "p-teh")

	_, err = uc.Receive(context.Background(), storeID, userID, created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The first line's increment must be undone and the order stays open.
	assert.Equal(t, 5, s.products["p-kopi"].Stock)
	assert.Equal(t, entity.PurchaseOrdered, s.purchases[created.ID].Status)
	assert.Empty(t, s.movements)
}

func TestReceivePurchase_UnknownPurchase(t *testing.T) {
	_, uc := newEnv()
	_, err := uc.Receive(context.Background(), storeID, userID, "po-hilang")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
