// Package warehouse holds the target-side sample records. They overlap with
// the store records by name but not always by type.
package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Record carries bookkeeping fields shared by warehouse entities.
type Record struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
	Revision  int
}

// Client is the warehouse view of a customer.
type Client struct {
	*Record

	ID           uuid.UUID
	Name         string
	Email        *string
	Role         string
	CardNumber   string
	Active       bool
	Credit       *int
	LoginCount   int
	PasswordHash string
}

// Order is a shipment request built from a shop order.
type Order struct {
	ID         int64
	CustomerID uuid.UUID
	Status     string
	TotalCents int64
	Items      []Item
	OrderedAt  time.Time
	Note       string
	Dock       string
}

// Item is one line of a shipment.
type Item struct {
	ProductID int64
	Quantity  int
}

// Gauge mirrors store.Reading with the optionality flipped.
type Gauge struct {
	Value int
	Valid *bool
}
