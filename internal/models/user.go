package models

import (
	"time"

	"github.com/google/uuid"
)

// user roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is user entity
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	AvatarURL    string
	Bio          string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	IsActive     bool
}

// TokenPayload is payload of authorization token
type TokenPayload struct {
	UserID uuid.UUID
	Role   string
}
