package pos

import (
	"context"
	"encoding/json"
	"errors"
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

// SaleUseCase turns a validated cart into a completed transaction. The stock
// decrements, the movement entries, the invoice header and its line items all
// commit in one database transaction; any failure rolls back every prior line.
type SaleUseCase struct {
	tx           TxRunner
	ledger       Ledger
	transactions repository.TransactionRepository
	audit        repository.AuditLogRepository
	cache        Cache
	log          *logger.Logger
}

// NewSaleUseCase wires the sale processor.
func NewSaleUseCase(tx TxRunner, ledger Ledger, transactions repository.TransactionRepository, audit repository.AuditLogRepository, cache Cache, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{
		tx:           tx,
		ledger:       ledger,
		transactions: transactions,
		audit:        audit,
		cache:        cache,
		log:          log,
	}
}

// Create processes one sale. A request carrying an idempotency key already
// seen for this store replays the stored result without touching stock.
func (uc *SaleUseCase) Create(ctx context.Context, storeID, userID string, req *dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if resp, err := uc.findReplay(ctx, storeID, req.IdempotencyKey); resp != nil || err != nil {
			return resp, err
		}
	}

	// The invoice number has a unique index. A collision surfaces as
	// ErrDuplicate and gets one retry with a fresh number.
	var resp *dto.SaleResponse
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		resp, err = uc.createOnce(ctx, storeID, req)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// A duplicate on the idempotency key means a concurrent request
		// with the same key won the race; replay its result.
		if req.IdempotencyKey != "" {
			if replay, rerr := uc.findReplay(ctx, storeID, req.IdempotencyKey); replay != nil || rerr != nil {
				return replay, rerr
			}
		}
	}
	if err != nil {
		return nil, err
	}

	uc.writeAudit(ctx, storeID, userID, resp.ID, req)
	uc.cache.InvalidateProducts(ctx, storeID)
	uc.cache.InvalidateTransactions(ctx, storeID)
	uc.cache.InvalidateDashboard(ctx, storeID)

	uc.log.Info().
		Str("store_id", storeID).
		Str("transaction_id", resp.ID).
		Str("invoice", resp.Nomor).
		Int("items", resp.TotalItems).
		Int64("grand_total", req.GrandTotal).
		Msg("sale completed")

	return resp, nil
}

func (uc *SaleUseCase) createOnce(ctx context.Context, storeID string, req *dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	txID := uuid.NewString()
	invoiceNo := invoice.Next()
	now := time.Now()

	change := req.Kembalian
	if req.Metode == entity.PaymentCash {
		change = req.Bayar - req.GrandTotal
	}

	err := uc.tx.RunSale(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository, transactions repository.TransactionRepository) error {
		header := &entity.Transaction{
			ID:            txID,
			StoreID:       storeID,
			InvoiceNumber: invoiceNo,
			CustomerID:    req.PelangganID,
			CustomerName:  req.Pelanggan,
			Subtotal:      req.Total,
			Discount:      req.Diskon,
			Tax:           req.Pajak,
			GrandTotal:    req.GrandTotal,
			AmountPaid:    req.Bayar,
			Change:        change,
			PaymentMethod: req.Metode,
			Note:          req.Catatan,
			Status:        entity.TxStatusCompleted,
			CreatedAt:     now,
		}
		if req.IdempotencyKey != "" {
			key := req.IdempotencyKey
			header.IdempotencyKey = &key
		}
		if err := transactions.Create(ctx, header); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		for i := range req.Items {
			item := &req.Items[i]

			result, err := uc.ledger.Apply(ctx, products, movements, storeID, inventory.Movement{
				ProductID: item.ProdukID,
				Kind:      entity.MovementOut,
				Quantity:  item.Jumlah,
				Reference: invoiceNo,
				Note:      "penjualan",
			})
			if err != nil {
				return err
			}

			productID := item.ProdukID
			if err := transactions.CreateItem(ctx, &entity.TransactionItem{
				ID:            uuid.NewString(),
				TransactionID: txID,
				ProductID:     &productID,
				ProductName:   result.ProductName,
				UnitPrice:     item.Harga,
				Quantity:      item.Jumlah,
				Discount:      item.Diskon,
				Subtotal:      item.Subtotal,
			}); err != nil {
				return fmt.Errorf("create transaction item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{ID: txID, Nomor: invoiceNo, TotalItems: len(req.Items)}, nil
}

// findReplay returns the stored result for an idempotency key, or (nil, nil)
// when the key is new.
func (uc *SaleUseCase) findReplay(ctx context.Context, storeID, key string) (*dto.SaleResponse, error) {
	existing, err := uc.transactions.GetByIdempotencyKey(ctx, storeID, key)
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	items, err := uc.transactions.GetItems(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup items: %w", err)
	}
	uc.log.Info().
		Str("store_id", storeID).
		Str("transaction_id", existing.ID).
		Msg("sale replayed from idempotency key")
	return &dto.SaleResponse{
		ID:         existing.ID,
		Nomor:      existing.InvoiceNumber,
		TotalItems: len(items),
		Duplicate:  true,
	}, nil
}

func (uc *SaleUseCase) writeAudit(ctx context.Context, storeID, userID, recordID string, req *dto.CreateSaleRequest) {
	payload, _ := json.Marshal(req)
	err := uc.audit.Create(ctx, &entity.AuditLog{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		UserID:    userID,
		Action:    entity.AuditCreate,
		TableName: "transaksi",
		RecordID:  recordID,
		NewValues: payload,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("record_id", recordID).Msg("audit write failed")
	}
}
