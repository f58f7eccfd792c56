package service

import (
	"context"
	"testing"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_Add_NewItemUsesDiscountPrice(t *testing.T) {
	userID := uuid.New()
	discount := decimal.RequireFromString("7.99")
	component := &models.Component{
		ID:            uuid.New(),
		Price:         decimal.RequireFromString("9.99"),
		DiscountPrice: &discount,
	}

	components := &componentRepoStub{
		getComponentByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Component, error) {
			return component, nil
		},
	}
	cart := &cartRepoStub{
		getUserCartItemFn: func(ctx context.Context, userID, componentID uuid.UUID) (*models.CartItem, error) {
			return nil, models.ErrDataNotFound
		},
		createCartItemFn: func(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
			return item, nil
		},
	}

	cs := NewCartService(cart, components)

	item, err := cs.Add(context.Background(), userID, component.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, userID, item.UserID)
	assert.Equal(t, component.ID, item.ComponentID)
	assert.Equal(t, 1, item.Quantity, "quantity below one is treated as one")
	assert.True(t, discount.Equal(item.Price), "discounted price wins over list price")
}

func TestCartService_Add_ExistingItemIncrementsQuantity(t *testing.T) {
	userID := uuid.New()
	component := &models.Component{ID: uuid.New(), Price: decimal.RequireFromString("9.99")}
	existing := &models.CartItem{
		ID:          uuid.New(),
		UserID:      userID,
		ComponentID: component.ID,
		Quantity:    2,
	}

	components := &componentRepoStub{
		getComponentByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Component, error) {
			return component, nil
		},
	}

	var savedQuantity int
	cart := &cartRepoStub{
		getUserCartItemFn: func(ctx context.Context, userID, componentID uuid.UUID) (*models.CartItem, error) {
			return existing, nil
		},
		updateQuantityFn: func(ctx context.Context, id uuid.UUID, quantity int) error {
			require.Equal(t, existing.ID, id)
			savedQuantity = quantity
			return nil
		},
	}

	cs := NewCartService(cart, components)

	item, err := cs.Add(context.Background(), userID, component.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, savedQuantity)
}

func TestCartService_Add_UnknownComponent(t *testing.T) {
	components := &componentRepoStub{
		getComponentByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Component, error) {
			return nil, models.ErrDataNotFound
		},
	}

	cs := NewCartService(&cartRepoStub{}, components)

	_, err := cs.Add(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, models.ErrDataNotFound)
}
