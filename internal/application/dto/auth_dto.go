package dto

import (
	"strings"

	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

// RegisterRequest is the POST /api/auth/register body. Registration creates
// the store's owner account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Nama     string `json:"nama"`
	Password string `json:"password"`
}

// Validate checks shape; the password floor matches the UI's rule.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return domain.NewValidationError("email tidak valid")
	}
	if r.Nama == "" {
		return domain.NewValidationError("nama wajib diisi")
	}
	if len(r.Password) < 8 {
		return domain.NewValidationError("password minimal 8 karakter")
	}
	return nil
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks shape.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return domain.NewValidationError("email dan password wajib diisi")
	}
	return nil
}

// UserResponse is the account on the wire; the password hash never leaves.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nama  string `json:"nama"`
	Role  string `json:"role"`
}

// AuthResponse is the login/register result.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse maps a user entity onto the wire shape.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Nama: u.Name, Role: u.Role}
}
