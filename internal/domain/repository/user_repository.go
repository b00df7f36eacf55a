package repository

import (
	"context"

	"github.com/iknmuh/mypos/internal/domain/entity"
)

// UserRepository persists store accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
