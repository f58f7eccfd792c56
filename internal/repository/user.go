package repository

import (
	"context"
	"errors"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/easyui/easyui-backend/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertUserQuery = `
						INSERT INTO users (id, email, password_hash, name, role)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING id, email, password_hash, name, avatar_url, bio, role, created_at, updated_at, is_active
`
	selectUserByEmailQuery = `
						SELECT id, email, password_hash, name, avatar_url, bio, role, created_at, updated_at, is_active
						FROM users
						WHERE email = $1 AND is_active = TRUE
`
	selectUserByIDQuery = `
						SELECT id, email, password_hash, name, avatar_url, bio, role, created_at, updated_at, is_active
						FROM users
						WHERE id = $1 AND is_active = TRUE
`
	updateUserProfileQuery = `
						UPDATE users
						SET name = $1, avatar_url = $2, bio = $3, updated_at = now()
						WHERE id = $4
`
)

// UserRepository provides access to user storage
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.AvatarURL,
		&user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.IsActive)
}

// CreateUser inserts new user to database
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	row := ur.db.QueryRow(ctx, insertUserQuery, user.ID, user.Email, user.PasswordHash, user.Name, user.Role)
	if err := scanUser(row, user); err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail returns user by email
func (ur *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	if err := scanUser(ur.db.QueryRow(ctx, selectUserByEmailQuery, email), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := scanUser(ur.db.QueryRow(ctx, selectUserByIDQuery, id), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateProfile updates user profile fields
func (ur *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	cmd, err := ur.db.Exec(ctx, updateUserProfileQuery, user.Name, user.AvatarURL, user.Bio, user.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
