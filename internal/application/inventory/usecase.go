package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/logger"
)

// UseCase handles manual stock adjustments and the movement history screen.
type UseCase struct {
	tx        TxRunner
	ledger    *Ledger
	movements repository.StockMovementRepository
	audit     repository.AuditLogRepository
	cache     Cache
	log       *logger.Logger
}

// NewUseCase wires the stock use case.
func NewUseCase(tx TxRunner, ledger *Ledger, movements repository.StockMovementRepository, audit repository.AuditLogRepository, cache Cache, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:        tx,
		ledger:    ledger,
		movements: movements,
		audit:     audit,
		cache:     cache,
		log:       log,
	}
}

// Adjust applies one manual stock change (masuk, keluar or koreksi).
func (uc *UseCase) Adjust(ctx context.Context, storeID, userID string, req *dto.StockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *MovementResult
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		var err error
		result, err = uc.ledger.Apply(ctx, products, movements, storeID, Movement{
			ProductID: req.ProdukID,
			Kind:      req.Tipe,
			Quantity:  req.Jumlah,
			Note:      req.Catatan,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.writeAudit(ctx, storeID, userID, result.MovementID, req)
	uc.cache.InvalidateProducts(ctx, storeID)
	uc.cache.InvalidateDashboard(ctx, storeID)

	uc.log.Info().
		Str("store_id", storeID).
		Str("product_id", req.ProdukID).
		Str("kind", req.Tipe).
		Int("quantity", req.Jumlah).
		Int("resulting_stock", result.NewStock).
		Msg("stock adjusted")

	return &dto.StockAdjustmentResponse{
		ID:        result.MovementID,
		ProdukID:  req.ProdukID,
		Tipe:      req.Tipe,
		Jumlah:    req.Jumlah,
		StokAwal:  result.PreviousStock,
		StokAkhir: result.NewStock,
		Catatan:   req.Catatan,
		CreatedAt: time.Now(),
	}, nil
}

// Movements lists the most recent ledger entries, optionally for one product.
func (uc *UseCase) Movements(ctx context.Context, storeID, productID string, limit int) ([]dto.StockMovementResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := uc.movements.ListByStore(ctx, storeID, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(entries))
	for _, m := range entries {
		out = append(out, dto.NewStockMovementResponse(m))
	}
	return out, nil
}

// writeAudit appends the trail entry; failures are logged, never surfaced.
func (uc *UseCase) writeAudit(ctx context.Context, storeID, userID, recordID string, req *dto.StockAdjustmentRequest) {
	payload, _ := json.Marshal(req)
	err := uc.audit.Create(ctx, &entity.AuditLog{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		UserID:    userID,
		Action:    entity.AuditCreate,
		TableName: "stok_adjustment",
		RecordID:  recordID,
		NewValues: payload,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("record_id", recordID).Msg("audit write failed")
	}
}
