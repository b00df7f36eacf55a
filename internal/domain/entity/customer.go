package entity

import "time"

// Customer of a store. Soft-deleted via Active=false.
type Customer struct {
	ID        string
	StoreID   string
	Name      string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
}
