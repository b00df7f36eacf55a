package repository

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// AuditLogRepository appends and reads the audit trail.
type AuditLogRepository interface {
	Create(ctx context.Context, e *entity.AuditLog) error
	ListByStore(ctx context.Context, storeID string, limit int) ([]*entity.AuditLog, error)
}
