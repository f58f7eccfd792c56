package service

import (
	"context"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
)

// UserService implements user profile operations
type UserService struct {
	repo UserRepository
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetProfile returns user profile by id
func (us *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return us.repo.GetUserByID(ctx, userID)
}

// UpdateProfile updates name, avatar and bio of user
func (us *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatarURL, bio string) (*models.User, error) {
	user, err := us.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.AvatarURL = avatarURL
	user.Bio = bio

	if err := us.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
