package entity

import "time"

// User roles.
const (
	RoleOwner   = "owner"
	RoleCashier = "kasir"
)

// User is an account of a store. PasswordHash is bcrypt.
type User struct {
	ID           string
	StoreID      string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
