package service

import (
	"context"
	"errors"
	"testing"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type componentRepoStub struct {
	ComponentRepository
	getComponentByIDFn func(ctx context.Context, id uuid.UUID) (*models.Component, error)
	listComponentsFn   func(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error)
	updateComponentFn  func(ctx context.Context, c *models.Component) error
	incrementViewsFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *componentRepoStub) GetComponentByID(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	return s.getComponentByIDFn(ctx, id)
}

func (s *componentRepoStub) ListComponents(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error) {
	return s.listComponentsFn(ctx, filter)
}

func (s *componentRepoStub) UpdateComponent(ctx context.Context, c *models.Component) error {
	return s.updateComponentFn(ctx, c)
}

func (s *componentRepoStub) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.incrementViewsFn(ctx, id)
}

func TestComponentService_List_SortValidation(t *testing.T) {
	listed := 0
	repo := &componentRepoStub{
		listComponentsFn: func(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error) {
			listed++
			return nil, nil
		},
	}
	cs := NewComponentService(repo)

	for _, sortBy := range []string{"", models.SortPriceAsc, models.SortPopular} {
		_, err := cs.List(context.Background(), models.ComponentFilter{SortBy: sortBy})
		require.NoError(t, err, "sort %q", sortBy)
	}
	assert.Equal(t, 3, listed)

	_, err := cs.List(context.Background(), models.ComponentFilter{SortBy: "price; DROP TABLE components"})
	assert.ErrorIs(t, err, models.ErrInvalidSortOption)
	assert.Equal(t, 3, listed, "an unknown sort option must not reach storage")
}

func TestComponentService_Get_ViewCountFailureIsNotFatal(t *testing.T) {
	component := &models.Component{ID: uuid.New(), Name: "button"}

	repo := &componentRepoStub{
		getComponentByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Component, error) {
			return component, nil
		},
		incrementViewsFn: func(ctx context.Context, id uuid.UUID) error {
			return errors.New("connection reset")
		},
	}
	cs := NewComponentService(repo)

	got, err := cs.Get(context.Background(), component.ID)
	require.NoError(t, err)
	assert.Equal(t, component, got)
}

func TestComponentService_Update_CreatorOnly(t *testing.T) {
	creator := uuid.New()
	component := &models.Component{ID: uuid.New(), CreatedBy: creator}

	updated := 0
	repo := &componentRepoStub{
		getComponentByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Component, error) {
			return component, nil
		},
		updateComponentFn: func(ctx context.Context, c *models.Component) error {
			updated++
			return nil
		},
	}
	cs := NewComponentService(repo)

	require.NoError(t, cs.Update(context.Background(), &models.Component{ID: component.ID}, creator))
	assert.Equal(t, 1, updated)

	err := cs.Update(context.Background(), &models.Component{ID: component.ID}, uuid.New())
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Equal(t, 1, updated)
}

func TestComponentFilter_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{name: "negative", page: -5, pageSize: -1, wantPage: 1, wantPageSize: 10},
		{name: "capped", page: 3, pageSize: 500, wantPage: 3, wantPageSize: 50},
		{name: "in_range", page: 2, pageSize: 25, wantPage: 2, wantPageSize: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := models.ComponentFilter{Page: tt.page, PageSize: tt.pageSize}
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}
