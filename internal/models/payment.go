package models

import (
	"time"

	"github.com/google/uuid"
)

// payment provider names
const (
	ProviderMomo = "momo"
)

// Payment is payment attempt entity. An order may accumulate several
// attempts over time; the most recent one is the live attempt.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Provider      string
	Amount        int64 // settlement currency units
	Status        string
	TransactionID string
	PaymentURL    string
	ResponseData  string // raw provider payload, stored for audit
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
