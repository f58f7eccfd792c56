package service

import (
	"context"
	"testing"

	"github.com/easyui/easyui-backend/internal/auth"
	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	UserRepository
	createUserFn     func(ctx context.Context, user *models.User) (*models.User, error)
	getUserByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

func (s *userRepoStub) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return s.createUserFn(ctx, user)
}

func (s *userRepoStub) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserByEmailFn(ctx, email)
}

type tokenStub struct{}

func (tokenStub) CreateToken(user *models.User) (string, error) {
	return "token-" + user.ID.String(), nil
}

func (tokenStub) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	return nil, auth.ErrInvalidToken
}

func TestAuthService_Register(t *testing.T) {
	var created *models.User
	repo := &userRepoStub{
		createUserFn: func(ctx context.Context, user *models.User) (*models.User, error) {
			created = user
			return user, nil
		},
	}

	as := NewAuthService(repo, tokenStub{})

	user, err := as.Register(context.Background(), "dev@example.com", "s3cret", "Dev")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "dev@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "password must never be stored in the clear")
	assert.True(t, auth.ComparePassword(user.PasswordHash, "s3cret"))
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	user := &models.User{ID: uuid.New(), Email: "dev@example.com", PasswordHash: hash}

	repo := &userRepoStub{
		getUserByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, models.ErrDataNotFound
		},
	}

	as := NewAuthService(repo, tokenStub{})

	t.Run("valid_credentials", func(t *testing.T) {
		token, err := as.Login(context.Background(), user.Email, "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "token-"+user.ID.String(), token)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := as.Login(context.Background(), user.Email, "wrong")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown_email", func(t *testing.T) {
		// unknown email and wrong password are indistinguishable to the caller
		_, err := as.Login(context.Background(), "other@example.com", "s3cret")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}
