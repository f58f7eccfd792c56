package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// order status
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// payment status of order
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
	PaymentStatusUnknown   = "Unknown"
)

// IsValidOrderStatus reports whether s is a member of the order status enumeration
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is order entity
type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	TotalAmount   decimal.Decimal
	Status        string
	PaymentMethod string
	PaymentStatus string
	TransactionID string
	// correlation ids of the payment provider, used to match callbacks
	MomoOrderID   string
	MomoRequestID string
	PaidAt        *time.Time
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	IsActive      bool
}

// OrderItem is order line item entity
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ComponentID uuid.UUID
	Price       decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}
