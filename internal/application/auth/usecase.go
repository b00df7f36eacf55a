// Package auth implements account registration and login.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/config"
	"github.com/iknmuh/mypos/pkg/jwt"
	"github.com/iknmuh/mypos/pkg/logger"
)

// UseCase handles registration and login. Registering creates a fresh store
// with the account as its owner; the store identity then rides inside every
// token and scopes every query.
type UseCase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
	log   *logger.Logger
}

// NewUseCase wires the auth use case.
func NewUseCase(users repository.UserRepository, cfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, cfg: cfg, log: log}
}

// Register creates the owner account of a new store.
func (uc *UseCase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		StoreID:      uuid.NewString(),
		Email:        req.Email,
		Name:         req.Nama,
		PasswordHash: string(hash),
		Role:         entity.RoleOwner,
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	uc.log.Info().Str("user_id", u.ID).Str("store_id", u.StoreID).Msg("store registered")
	return uc.issue(u)
}

// Login verifies the credentials and issues a token. The same error covers
// both unknown email and wrong password.
func (uc *UseCase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := uc.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	return uc.issue(u)
}

func (uc *UseCase) issue(u *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.cfg.Secret, u.ID, u.StoreID, u.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(u)}, nil
}
