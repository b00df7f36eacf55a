package entity

import "time"

// Category groups products for the cashier and stock screens.
type Category struct {
	ID        string
	StoreID   string
	Name      string
	CreatedAt time.Time
}
