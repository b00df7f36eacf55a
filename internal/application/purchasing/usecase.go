package purchasing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/invoice"
	"github.com/iknmuh/mypos/pkg/logger"
)

// UseCase manages supplier orders. Creating one records intent only; stock
// moves when the goods are received, one masuk entry per line, atomically
// with the status flip.
type UseCase struct {
	tx        TxRunner
	ledger    Ledger
	purchases repository.PurchaseRepository
	audit     repository.AuditLogRepository
	cache     Cache
	log       *logger.Logger
}

// NewUseCase wires the purchasing use case.
func NewUseCase(tx TxRunner, ledger Ledger, purchases repository.PurchaseRepository, audit repository.AuditLogRepository, cache Cache, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:        tx,
		ledger:    ledger,
		purchases: purchases,
		audit:     audit,
		cache:     cache,
		log:       log,
	}
}

// Create records a new supplier order in status dipesan.
func (uc *UseCase) Create(ctx context.Context, storeID, userID string, req *dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &entity.Purchase{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		Number:    invoice.NextPurchase(),
		Supplier:  req.Supplier,
		Status:    entity.PurchaseOrdered,
		Note:      req.Catatan,
		CreatedAt: time.Now(),
	}
	for _, item := range req.Items {
		subtotal := item.Harga * int64(item.Jumlah)
		p.Total += subtotal
		p.Items = append(p.Items, entity.PurchaseItem{
			ID:          uuid.NewString(),
			PurchaseID:  p.ID,
			ProductID:   item.ProdukID,
			ProductName: item.Nama,
			UnitCost:    item.Harga,
			Quantity:    item.Jumlah,
			Subtotal:    subtotal,
		})
	}

	err := uc.tx.RunPurchase(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository, purchases repository.PurchaseRepository) error {
		// Every line must reference a live product before the order exists.
		for i := range p.Items {
			prod, err := products.GetByID(ctx, storeID, p.Items[i].ProductID)
			if err != nil {
				return fmt.Errorf("load product: %w", err)
			}
			if prod == nil {
				return fmt.Errorf("product %s: %w", p.Items[i].ProductID, domain.ErrNotFound)
			}
			if p.Items[i].ProductName == "" {
				p.Items[i].ProductName = prod.Name
			}
		}
		if err := purchases.Create(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		for i := range p.Items {
			if err := purchases.CreateItem(ctx, &p.Items[i]); err != nil {
				return fmt.Errorf("create purchase item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.writeAudit(ctx, storeID, userID, entity.AuditCreate, p.ID, req)
	uc.log.Info().
		Str("store_id", storeID).
		Str("purchase_id", p.ID).
		Str("number", p.Number).
		Int64("total", p.Total).
		Msg("purchase created")

	resp := dto.NewPurchaseResponse(p)
	return &resp, nil
}

// Receive books the goods in. Each line becomes a masuk ledger entry and the
// order flips to diterima; a purchase can only be received once.
func (uc *UseCase) Receive(ctx context.Context, storeID, userID, purchaseID string) (*dto.PurchaseResponse, error) {
	var received *entity.Purchase
	err := uc.tx.RunPurchase(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository, purchases repository.PurchaseRepository) error {
		p, err := purchases.GetForUpdate(ctx, storeID, purchaseID)
		if err != nil {
			return fmt.Errorf("load purchase: %w", err)
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Status == entity.PurchaseReceived {
			return domain.ErrAlreadyReceived
		}
		if p.Status == entity.PurchaseCancelled {
			return domain.NewValidationError("pembelian sudah dibatalkan")
		}

		items, err := purchases.GetItems(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}

		for _, item := range items {
			if _, err := uc.ledger.Apply(ctx, products, movements, storeID, inventory.Movement{
				ProductID: item.ProductID,
				Kind:      entity.MovementIn,
				Quantity:  item.Quantity,
				Reference: p.Number,
				Note:      "penerimaan pembelian",
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := purchases.MarkReceived(ctx, storeID, p.ID, now); err != nil {
			return err
		}
		p.Status = entity.PurchaseReceived
		p.ReceivedAt = &now
		p.Items = items
		received = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.writeAudit(ctx, storeID, userID, entity.AuditUpdate, purchaseID, map[string]string{"status": entity.PurchaseReceived})
	uc.cache.InvalidateProducts(ctx, storeID)
	uc.cache.InvalidateDashboard(ctx, storeID)

	uc.log.Info().
		Str("store_id", storeID).
		Str("purchase_id", purchaseID).
		Str("number", received.Number).
		Msg("purchase received")

	resp := dto.NewPurchaseResponse(received)
	return &resp, nil
}

// Get loads one purchase with its lines.
func (uc *UseCase) Get(ctx context.Context, storeID, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchases.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("load purchase: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchases.GetItems(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	p.Items = items

	resp := dto.NewPurchaseResponse(p)
	return &resp, nil
}

// List pages through purchases, newest first.
func (uc *UseCase) List(ctx context.Context, storeID string, q dto.PurchaseListQuery) (*dto.PurchaseListResponse, error) {
	q.DefaultPage()

	list, total, err := uc.purchases.List(ctx, storeID, repository.PurchaseFilter{
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	resp := &dto.PurchaseListResponse{
		Items: make([]dto.PurchaseResponse, 0, len(list)),
		PageResponse: dto.PageResponse{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: (total + q.Limit - 1) / q.Limit,
		},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, dto.NewPurchaseResponse(p))
	}
	return resp, nil
}

func (uc *UseCase) writeAudit(ctx context.Context, storeID, userID, action, recordID string, payload any) {
	body, _ := json.Marshal(payload)
	err := uc.audit.Create(ctx, &entity.AuditLog{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		UserID:    userID,
		Action:    action,
		TableName: "pembelian",
		RecordID:  recordID,
		NewValues: body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("record_id", recordID).Msg("audit write failed")
	}
}
