// Package store holds the source-side sample records: accounts, orders and
// sensor readings as an online shop keeps them.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Audit is embedded by records that track modification times.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Role is the access level of a user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

// User is a shop account.
type User struct {
	Audit

	ID     uuid.UUID
	Name   string
	Email  *string
	Role   Role
	Active *bool
	Credit int
	// LoginCount is int64 here and int in the warehouse.
	LoginCount int64

	PasswordHash string `mapper:"-"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is a purchase made by a user.
type Order struct {
	ID         int64
	CustomerID uuid.UUID
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem
	OrderedAt  time.Time
	Note       *string
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice int64
}

// Reading is a sensor sample that may be missing its value.
type Reading struct {
	Value  *int
	Valid  bool
	Sample int
}
