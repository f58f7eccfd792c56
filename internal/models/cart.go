package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is cart item entity. One row per (user, component).
type CartItem struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ComponentID uuid.UUID
	Price       decimal.Decimal
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	// filled on read for cart listing
	ComponentName string
	PreviewURL    string
}
