package service

import (
	"context"

	"github.com/easyui/easyui-backend/internal/logger"
	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComponentRepository is interface for interacting with component-related data
type ComponentRepository interface {
	// CreateComponent inserts new component to database
	CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error)
	// GetComponentByID returns component with its tags
	GetComponentByID(ctx context.Context, id uuid.UUID) (*models.Component, error)
	// ListComponents returns page of components matching filter
	ListComponents(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error)
	// UpdateComponent updates component fields
	UpdateComponent(ctx context.Context, c *models.Component) error
	// DeleteComponent soft-deletes component
	DeleteComponent(ctx context.Context, id uuid.UUID) error
	// IncrementViews increments component views counter
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// AddTags attaches tags to component
	AddTags(ctx context.Context, componentID uuid.UUID, tagIDs []uuid.UUID) error
	// ToggleLike switches like state and returns new state with count
	ToggleLike(ctx context.Context, userID, componentID uuid.UUID) (bool, int64, error)
}

// ComponentService implements catalog operations
type ComponentService struct {
	repo ComponentRepository
}

// NewComponentService creates new ComponentService instance
func NewComponentService(repo ComponentRepository) *ComponentService {
	return &ComponentService{repo: repo}
}

// List returns page of components matching filter
func (cs *ComponentService) List(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error) {
	if !models.IsValidSort(filter.SortBy) {
		return nil, models.ErrInvalidSortOption
	}
	return cs.repo.ListComponents(ctx, filter)
}

// Get returns component detail and counts the view
func (cs *ComponentService) Get(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	c, err := cs.repo.GetComponentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// view counting must not fail the read
	if err := cs.repo.IncrementViews(ctx, id); err != nil {
		logger.Log.Error("increment views", zap.String("component", id.String()), zap.Error(err))
	}

	return c, nil
}

// Publish creates new component authored by user
func (cs *ComponentService) Publish(ctx context.Context, c *models.Component, authorID uuid.UUID) (*models.Component, error) {
	c.CreatedBy = authorID
	return cs.repo.CreateComponent(ctx, c)
}

// Update updates component; only the creator may update
func (cs *ComponentService) Update(ctx context.Context, c *models.Component, userID uuid.UUID) error {
	existing, err := cs.repo.GetComponentByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return models.ErrForbidden
	}

	return cs.repo.UpdateComponent(ctx, c)
}

// Delete soft-deletes component; only the creator may delete
func (cs *ComponentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := cs.repo.GetComponentByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return models.ErrForbidden
	}

	return cs.repo.DeleteComponent(ctx, id)
}

// AddTags attaches tags to component; only the creator may tag
func (cs *ComponentService) AddTags(ctx context.Context, componentID uuid.UUID, tagIDs []uuid.UUID, userID uuid.UUID) error {
	existing, err := cs.repo.GetComponentByID(ctx, componentID)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return models.ErrForbidden
	}

	return cs.repo.AddTags(ctx, componentID, tagIDs)
}

// ToggleLike switches like state for user
func (cs *ComponentService) ToggleLike(ctx context.Context, userID, componentID uuid.UUID) (bool, int64, error) {
	if _, err := cs.repo.GetComponentByID(ctx, componentID); err != nil {
		return false, 0, err
	}
	return cs.repo.ToggleLike(ctx, userID, componentID)
}
