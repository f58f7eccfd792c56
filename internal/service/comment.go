package service

import (
	"context"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
)

// CommentRepository is interface for interacting with comment-related data
type CommentRepository interface {
	// CreateComment inserts new comment
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	// GetByComponentID returns comments of component
	GetByComponentID(ctx context.Context, componentID uuid.UUID) ([]models.Comment, error)
	// GetByID returns comment by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	// UpdateComment updates comment content
	UpdateComment(ctx context.Context, comment *models.Comment) error
	// DeleteComment removes comment
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// CommentService implements component comment operations
type CommentService struct {
	repo       CommentRepository
	components ComponentRepository
}

// NewCommentService creates new CommentService instance
func NewCommentService(repo CommentRepository, components ComponentRepository) *CommentService {
	return &CommentService{
		repo:       repo,
		components: components,
	}
}

// ListByComponent returns comments of component
func (cs *CommentService) ListByComponent(ctx context.Context, componentID uuid.UUID) ([]models.Comment, error) {
	return cs.repo.GetByComponentID(ctx, componentID)
}

// Create adds comment to component
func (cs *CommentService) Create(ctx context.Context, componentID uuid.UUID, content string, userID uuid.UUID) (*models.Comment, error) {
	if _, err := cs.components.GetComponentByID(ctx, componentID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ComponentID: componentID,
		Content:     content,
		CreatedBy:   userID,
	}

	return cs.repo.CreateComment(ctx, comment)
}

// Update edits comment content; only the creator may edit
func (cs *CommentService) Update(ctx context.Context, id uuid.UUID, content string, userID uuid.UUID) error {
	comment, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.CreatedBy != userID {
		return models.ErrForbidden
	}

	comment.Content = content
	return cs.repo.UpdateComment(ctx, comment)
}

// Delete removes comment; only the creator may delete
func (cs *CommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	comment, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.CreatedBy != userID {
		return models.ErrForbidden
	}

	return cs.repo.DeleteComment(ctx, id)
}
