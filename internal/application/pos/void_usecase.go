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
	"github.com/iknmuh/mypos/pkg/logger"
)

// VoidUseCase cancels a completed sale and puts the sold stock back. The
// restore and the status flip commit together; a transaction can only ever be
// voided once.
type VoidUseCase struct {
	tx     TxRunner
	ledger Ledger
	audit  repository.AuditLogRepository
	cache  Cache
	log    *logger.Logger
}

// NewVoidUseCase wires the void processor.
func NewVoidUseCase(tx TxRunner, ledger Ledger, audit repository.AuditLogRepository, cache Cache, log *logger.Logger) *VoidUseCase {
	return &VoidUseCase{tx: tx, ledger: ledger, audit: audit, cache: cache, log: log}
}

// Void cancels the transaction. The reason is stored when supplied but is not
// required. Items whose product has since been deleted are skipped with a
// warning; their stock is gone for good but the void still succeeds, because
// refusing it would leave the customer's refund blocked on catalog hygiene.
func (uc *VoidUseCase) Void(ctx context.Context, storeID, userID, transactionID string, req *dto.VoidSaleRequest) (*dto.VoidSaleResponse, error) {
	if req.Status != entity.TxStatusVoided {
		return nil, domain.NewValidationError("status hanya dapat diubah menjadi %s", entity.TxStatusVoided)
	}

	var invoiceNo string
	err := uc.tx.RunSale(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository, transactions repository.TransactionRepository) error {
		t, err := transactions.GetForUpdate(ctx, storeID, transactionID)
		if err != nil {
			return fmt.Errorf("load transaction: %w", err)
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status == entity.TxStatusVoided {
			return domain.ErrAlreadyVoided
		}
		invoiceNo = t.InvoiceNumber

		items, err := transactions.GetItems(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}

		for _, item := range items {
			if item.ProductID == nil {
				continue
			}
			_, err := uc.ledger.Apply(ctx, products, movements, storeID, inventory.Movement{
				ProductID: *item.ProductID,
				Kind:      entity.MovementIn,
				Quantity:  item.Quantity,
				Reference: t.InvoiceNumber,
				Note:      "pembatalan transaksi",
			})
			if errors.Is(err, domain.ErrNotFound) {
				uc.log.Warn().
					Str("transaction_id", t.ID).
					Str("product_id", *item.ProductID).
					Msg("product gone, stock not restored")
				continue
			}
			if err != nil {
				return err
			}
		}

		return transactions.MarkVoided(ctx, storeID, t.ID, req.Alasan)
	})
	if err != nil {
		return nil, err
	}

	uc.writeAudit(ctx, storeID, userID, transactionID, req)
	uc.cache.InvalidateProducts(ctx, storeID)
	uc.cache.InvalidateTransactions(ctx, storeID)
	uc.cache.InvalidateDashboard(ctx, storeID)

	uc.log.Info().
		Str("store_id", storeID).
		Str("transaction_id", transactionID).
		Str("invoice", invoiceNo).
		Str("reason", req.Alasan).
		Msg("sale voided")

	return &dto.VoidSaleResponse{
		ID:     transactionID,
		Nomor:  invoiceNo,
		Status: entity.TxStatusVoided,
	}, nil
}

func (uc *VoidUseCase) writeAudit(ctx context.Context, storeID, userID, recordID string, req *dto.VoidSaleRequest) {
	payload, _ := json.Marshal(req)
	err := uc.audit.Create(ctx, &entity.AuditLog{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		UserID:    userID,
		Action:    entity.AuditVoid,
		TableName: "transaksi",
		RecordID:  recordID,
		NewValues: payload,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("record_id", recordID).Msg("audit write failed")
	}
}
