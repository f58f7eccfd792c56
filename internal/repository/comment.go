package repository

import (
	"context"
	"errors"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/easyui/easyui-backend/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertCommentQuery = `
						INSERT INTO comments (id, component_id, content, created_by)
						VALUES ($1, $2, $3, $4)
						RETURNING created_at
`
	selectCommentsByComponentQuery = `
						SELECT cm.id, cm.component_id, cm.content, cm.created_by, u.name, cm.created_at, cm.updated_at
						FROM comments cm
						JOIN users u ON u.id = cm.created_by
						WHERE cm.component_id = $1
						ORDER BY cm.created_at DESC
`
	selectCommentByIDQuery = `
						SELECT cm.id, cm.component_id, cm.content, cm.created_by, u.name, cm.created_at, cm.updated_at
						FROM comments cm
						JOIN users u ON u.id = cm.created_by
						WHERE cm.id = $1
`
	updateCommentQuery = `
						UPDATE comments
						SET content = $1, updated_at = now()
						WHERE id = $2
`
	deleteCommentQuery = `
						DELETE FROM comments
						WHERE id = $1
`
)

// CommentRepository provides access to comment storage
type CommentRepository struct {
	db *postgres.DB
}

// NewCommentRepository creates new CommentRepository instance
func NewCommentRepository(db *postgres.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateComment inserts new comment
func (cr *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	err := cr.db.QueryRow(ctx, insertCommentQuery, comment.ID, comment.ComponentID,
		comment.Content, comment.CreatedBy).Scan(&comment.CreatedAt)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// GetByComponentID returns comments of component
func (cr *CommentRepository) GetByComponentID(ctx context.Context, componentID uuid.UUID) ([]models.Comment, error) {
	rows, err := cr.db.Query(ctx, selectCommentsByComponentQuery, componentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment := models.Comment{}
		if err := rows.Scan(&comment.ID, &comment.ComponentID, &comment.Content, &comment.CreatedBy,
			&comment.CreatorName, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// GetByID returns comment by id
func (cr *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment := models.Comment{}
	err := cr.db.QueryRow(ctx, selectCommentByIDQuery, id).Scan(&comment.ID, &comment.ComponentID,
		&comment.Content, &comment.CreatedBy, &comment.CreatorName, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &comment, nil
}

// UpdateComment updates comment content
func (cr *CommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	cmd, err := cr.db.Exec(ctx, updateCommentQuery, comment.Content, comment.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteComment removes comment
func (cr *CommentRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, deleteCommentQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
