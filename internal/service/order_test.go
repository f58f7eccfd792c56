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

type cartRepoStub struct {
	CartRepository
	getUserCartFn     func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	getUserCartItemFn func(ctx context.Context, userID, componentID uuid.UUID) (*models.CartItem, error)
	createCartItemFn  func(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	updateQuantityFn  func(ctx context.Context, id uuid.UUID, quantity int) error
}

func (s *cartRepoStub) GetUserCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.getUserCartFn(ctx, userID)
}

func (s *cartRepoStub) GetUserCartItem(ctx context.Context, userID, componentID uuid.UUID) (*models.CartItem, error) {
	return s.getUserCartItemFn(ctx, userID, componentID)
}

func (s *cartRepoStub) CreateCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	return s.createCartItemFn(ctx, item)
}

func (s *cartRepoStub) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return s.updateQuantityFn(ctx, id, quantity)
}

func TestOrderService_Create(t *testing.T) {
	userID := uuid.New()
	compA := uuid.New()
	compB := uuid.New()

	cart := &cartRepoStub{
		getUserCartFn: func(ctx context.Context, id uuid.UUID) ([]models.CartItem, error) {
			require.Equal(t, userID, id)
			return []models.CartItem{
				{ComponentID: compA, Price: decimal.RequireFromString("9.99"), Quantity: 2},
				{ComponentID: compB, Price: decimal.RequireFromString("4.50"), Quantity: 1},
			}, nil
		},
	}

	var created *models.Order
	orders := &orderRepoStub{}
	orders.createOrderFn = func(ctx context.Context, order *models.Order) (*models.Order, error) {
		created = order
		return order, nil
	}

	os := NewOrderService(orders, cart)

	order, err := os.Create(context.Background(), userID, models.ProviderMomo)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.ProviderMomo, order.PaymentMethod)
	assert.True(t, decimal.RequireFromString("24.48").Equal(order.TotalAmount), "got total %s", order.TotalAmount)

	require.Len(t, order.Items, 2)
	assert.Equal(t, compA, order.Items[0].ComponentID)
	assert.True(t, decimal.RequireFromString("19.98").Equal(order.Items[0].Subtotal))
	assert.Equal(t, compB, order.Items[1].ComponentID)
	assert.True(t, decimal.RequireFromString("4.50").Equal(order.Items[1].Subtotal))
}

func TestOrderService_Create_EmptyCart(t *testing.T) {
	cart := &cartRepoStub{
		getUserCartFn: func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
			return nil, nil
		},
	}

	os := NewOrderService(&orderRepoStub{}, cart)

	_, err := os.Create(context.Background(), uuid.New(), models.ProviderMomo)
	assert.ErrorIs(t, err, models.ErrCartEmpty)
}

func TestOrderService_Get_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	order := &models.Order{ID: uuid.New(), UserID: owner}

	orders := &orderRepoStub{
		getOrderWithItemsFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
	}

	os := NewOrderService(orders, &cartRepoStub{})

	got, err := os.Get(context.Background(), order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = os.Get(context.Background(), order.ID, uuid.New())
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	updated := 0
	orders := &orderRepoStub{}
	orders.updateOrderStatusFn = func(ctx context.Context, id uuid.UUID, status string) error {
		updated++
		return nil
	}

	os := NewOrderService(orders, &cartRepoStub{})

	require.NoError(t, os.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusCompleted))
	assert.Equal(t, 1, updated)

	err := os.UpdateStatus(context.Background(), uuid.New(), "Shipped")
	assert.ErrorIs(t, err, models.ErrInvalidOrderStatus)
	assert.Equal(t, 1, updated, "an unknown status must not reach storage")
}
