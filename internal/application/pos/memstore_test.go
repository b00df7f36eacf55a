package pos_test

import (
	"context"
	"sync"
	"time"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/logger"
)

// memStore is the shared in-memory state behind the fake repositories. The
// fake tx runner snapshots it before running a unit of work and restores the
// snapshot on error, mimicking a database rollback. The mutex serializes
// units of work so concurrent callers interleave like they would against row
// locks and conditional updates.
type memStore struct {
	mu           sync.Mutex
	products     map[string]*entity.Product
	movements    []*entity.StockMovement
	transactions map[string]*entity.Transaction
	items        map[string][]entity.TransactionItem
	audits       []*entity.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[string]*entity.Product{},
		transactions: map[string]*entity.Transaction{},
		items:        map[string][]entity.TransactionItem{},
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	snap.movements = append([]*entity.StockMovement(nil), s.movements...)
	for id, t := range s.transactions {
		cp := *t
		snap.transactions[id] = &cp
	}
	for id, items := range s.items {
		snap.items[id] = append([]entity.TransactionItem(nil), items...)
	}
	snap.audits = append([]*entity.AuditLog(nil), s.audits...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.movements = snap.movements
	s.transactions = snap.transactions
	s.items = snap.items
	s.audits = snap.audits
}

func (s *memStore) seedProduct(storeID, id, name string, price int64, stock int) *entity.Product {
	p := &entity.Product{
		ID:        id,
		StoreID:   storeID,
		Name:      name,
		Unit:      "pcs",
		SalePrice: price,
		Stock:     stock,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.products[id] = p
	return p
}

// memProducts implements repository.ProductRepository over the memStore.
type memProducts struct{ s *memStore }

var _ repository.ProductRepository = (*memProducts)(nil)

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(_ context.Context, storeID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.StoreID != storeID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetByCode(_ context.Context, storeID, code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.StoreID == storeID && p.Code == code && p.Active {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProducts) List(_ context.Context, storeID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.StoreID != storeID {
			continue
		}
		if !f.IncludeInactive && !p.Active {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	return list, len(list), nil
}

func (r *memProducts) ListLowStock(_ context.Context, storeID string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.StoreID == storeID && p.Active && p.LowStock() {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok || cur.StoreID != p.StoreID {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock = cur.Stock
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProducts) SoftDelete(_ context.Context, storeID, id string) error {
	p, ok := r.s.products[id]
	if !ok || p.StoreID != storeID || !p.Active {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

func (r *memProducts) DecrementStock(_ context.Context, storeID, id string, qty int) (int, error) {
	p, ok := r.s.products[id]
	if !ok || p.StoreID != storeID {
		return 0, domain.ErrNotFound
	}
	if p.Stock < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return p.Stock, nil
}

func (r *memProducts) IncrementStock(_ context.Context, storeID, id string, qty int) (int, error) {
	p, ok := r.s.products[id]
	if !ok || p.StoreID != storeID {
		return 0, domain.ErrNotFound
	}
	p.Stock += qty
	return p.Stock, nil
}

func (r *memProducts) SetStock(_ context.Context, storeID, id string, qty int) (int, error) {
	p, ok := r.s.products[id]
	if !ok || p.StoreID != storeID {
		return 0, domain.ErrNotFound
	}
	p.Stock = qty
	return p.Stock, nil
}

// memMovements implements repository.StockMovementRepository.
type memMovements struct{ s *memStore }

var _ repository.StockMovementRepository = (*memMovements)(nil)

func (r *memMovements) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovements) ListByStore(_ context.Context, storeID, productID string, limit int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.StoreID != storeID {
			continue
		}
		if productID != "" && m.ProductID != productID {
			continue
		}
		list = append(list, m)
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

// memTransactions implements repository.TransactionRepository. The unique
// constraints on nomor and on (store_id, idempotency_key) are emulated with
// the same ErrDuplicate the real adapter reports.
type memTransactions struct{ s *memStore }

var _ repository.TransactionRepository = (*memTransactions)(nil)

func (r *memTransactions) Create(_ context.Context, t *entity.Transaction) error {
	for _, cur := range r.s.transactions {
		if cur.InvoiceNumber == t.InvoiceNumber {
			return domain.ErrDuplicate
		}
		if t.IdempotencyKey != nil && cur.IdempotencyKey != nil &&
			cur.StoreID == t.StoreID && *cur.IdempotencyKey == *t.IdempotencyKey {
			return domain.ErrDuplicate
		}
	}
	cp := *t
	r.s.transactions[t.ID] = &cp
	return nil
}

func (r *memTransactions) CreateItem(_ context.Context, item *entity.TransactionItem) error {
	r.s.items[item.TransactionID] = append(r.s.items[item.TransactionID], *item)
	return nil
}

func (r *memTransactions) GetByID(_ context.Context, storeID, id string) (*entity.Transaction, error) {
	t, ok := r.s.transactions[id]
	if !ok || t.StoreID != storeID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTransactions) GetForUpdate(ctx context.Context, storeID, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, storeID, id)
}

func (r *memTransactions) GetItems(_ context.Context, transactionID string) ([]entity.TransactionItem, error) {
	return append([]entity.TransactionItem(nil), r.s.items[transactionID]...), nil
}

func (r *memTransactions) GetByIdempotencyKey(_ context.Context, storeID, key string) (*entity.Transaction, error) {
	for _, t := range r.s.transactions {
		if t.StoreID == storeID && t.IdempotencyKey != nil && *t.IdempotencyKey == key {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTransactions) MarkVoided(_ context.Context, storeID, id, reason string) error {
	t, ok := r.s.transactions[id]
	if !ok || t.StoreID != storeID {
		return domain.ErrNotFound
	}
	if t.Status == entity.TxStatusVoided {
		return domain.ErrAlreadyVoided
	}
	t.Status = entity.TxStatusVoided
	t.VoidReason = reason
	return nil
}

func (r *memTransactions) List(_ context.Context, storeID string, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	var list []*entity.Transaction
	for _, t := range r.s.transactions {
		if t.StoreID != storeID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		cp := *t
		list = append(list, &cp)
	}
	return list, len(list), nil
}

// memAudit implements repository.AuditLogRepository.
type memAudit struct{ s *memStore }

var _ repository.AuditLogRepository = (*memAudit)(nil)

func (r *memAudit) Create(_ context.Context, e *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.audits = append(r.s.audits, &cp)
	return nil
}

func (r *memAudit) ListByStore(_ context.Context, storeID string, limit int) ([]*entity.AuditLog, error) {
	var list []*entity.AuditLog
	for _, e := range r.s.audits {
		if e.StoreID == storeID {
			list = append(list, e)
		}
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

// memTxRunner snapshots the store before fn and restores it when fn fails, so
// tests observe the same all-or-nothing behavior the database gives.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunSale(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository, repository.TransactionRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&memProducts{r.s}, &memMovements{r.s}, &memTransactions{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// noopCache satisfies the cache port without a backend.
type noopCache struct{}

func (noopCache) InvalidateProducts(context.Context, string)     {}
func (noopCache) InvalidateTransactions(context.Context, string) {}
func (noopCache) InvalidateDashboard(context.Context, string)    {}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}
