package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iknmuh/mypos/internal/application/auth"
	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
	"github.com/iknmuh/mypos/pkg/config"
	pkgjwt "github.com/iknmuh/mypos/pkg/jwt"
	"github.com/iknmuh/mypos/pkg/logger"
)

type fakeUsers struct {
	byEmail map[string]*entity.User
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newAuthUC() (*fakeUsers, *auth.UseCase) {
	users := &fakeUsers{byEmail: map[string]*entity.User{}}
	cfg := config.JWTConfig{Secret: "unit-test-secret", Expiration: 60, Issuer: "mypos-test"}
	uc := auth.NewUseCase(users, cfg, logger.New(logger.Config{Env: "production", Level: "error"}))
	return users, uc
}

func TestRegister_CreatesOwnerOfFreshStore(t *testing.T) {
	users, uc := newAuthUC()

	resp, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "  Bu.Sari@Warung.ID ",
		Nama:     "Bu Sari",
		Password: "rahasia-banget",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	assert.Equal(t, "bu.sari@warung.id", resp.User.Email, "email normalized")
	assert.Equal(t, entity.RoleOwner, resp.User.Role)

	stored := users.byEmail["bu.sari@warung.id"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.StoreID)
	assert.NotEqual(t, "rahasia-banget", stored.PasswordHash, "password must be hashed")

	// The issued token carries the new store identity.
	userID, storeID, role, err := pkgjwt.Parse("unit-test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
	assert.Equal(t, stored.StoreID, storeID)
	assert.Equal(t, entity.RoleOwner, role)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	_, uc := newAuthUC()

	req := &dto.RegisterRequest{Email: "sari@warung.id", Nama: "Bu Sari", Password: "rahasia-banget"}
	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	_, uc := newAuthUC()
	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email: "sari@warung.id", Nama: "Bu Sari", Password: "pendek",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_RoundTrip(t *testing.T) {
	_, uc := newAuthUC()
	reg, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email: "sari@warung.id", Nama: "Bu Sari", Password: "rahasia-banget",
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email: "SARI@warung.id", Password: "rahasia-banget",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPasswordAndUnknownEmailLookIdentical(t *testing.T) {
	_, uc := newAuthUC()
	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email: "sari@warung.id", Nama: "Bu Sari", Password: "rahasia-banget",
	})
	require.NoError(t, err)

	_, errWrongPass := uc.Login(context.Background(), &dto.LoginRequest{
		Email: "sari@warung.id", Password: "salah-semua",
	})
	_, errUnknown := uc.Login(context.Background(), &dto.LoginRequest{
		Email: "lain@warung.id", Password: "rahasia-banget",
	})

	assert.ErrorIs(t, errWrongPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}
