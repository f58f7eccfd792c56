package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is component comment entity
type Comment struct {
	ID          uuid.UUID
	ComponentID uuid.UUID
	Content     string
	CreatedBy   uuid.UUID
	CreatorName string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
