package service

import (
	"context"
	"errors"

	"github.com/easyui/easyui-backend/internal/auth"
	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateProfile updates user profile fields
	UpdateProfile(ctx context.Context, user *models.User) error
}

// AuthService implements registration and login
type AuthService struct {
	repo  UserRepository
	token TokenService
}

// NewAuthService creates new AuthService instance
func NewAuthService(repo UserRepository, token TokenService) *AuthService {
	return &AuthService{
		repo:  repo,
		token: token,
	}
}

// Register creates new user with hashed password
func (as *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleUser,
	}

	return as.repo.CreateUser(ctx, user)
}

// Login verifies credentials and returns signed token
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := as.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.ComparePassword(user.PasswordHash, password) {
		return "", models.ErrInvalidCredentials
	}

	return as.token.CreateToken(user)
}
