package service

import (
	"context"
	"time"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts order with items and clears the user cart in one transaction
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by id without items
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetOrderWithItems returns order with its items
	GetOrderWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetOrderByMomoOrderID resolves order by provider correlation id
	GetOrderByMomoOrderID(ctx context.Context, momoOrderID string) (*models.Order, error)
	// GetOrdersByUserID returns orders of user
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// GetAllOrders returns all orders
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	// GetStalePendingOrders returns orders pending payment since before deadline
	GetStalePendingOrders(ctx context.Context, deadline time.Time) ([]models.Order, error)
	// UpdateOrderStatus sets order status
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	// UpdateOrderPaymentInfo stores payment method, status and correlation ids
	UpdateOrderPaymentInfo(ctx context.Context, order *models.Order) error
	// ApplyCallback writes order and payment transition in one transaction
	ApplyCallback(ctx context.Context, order *models.Order, payment *models.Payment) error
	// GetPurchasedComponents returns components from completed orders of user
	GetPurchasedComponents(ctx context.Context, userID uuid.UUID) ([]models.Component, error)
}

// OrderService implements checkout and order listing
type OrderService struct {
	repo OrderRepository
	cart CartRepository
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, cart CartRepository) *OrderService {
	return &OrderService{
		repo: repo,
		cart: cart,
	}
}

// Create builds order from user cart contents
func (os *OrderService) Create(ctx context.Context, userID uuid.UUID, paymentMethod string) (*models.Order, error) {
	cartItems, err := os.cart.GetUserCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, models.ErrCartEmpty
	}

	order := &models.Order{
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
	}

	for _, ci := range cartItems {
		subtotal := ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
		order.Items = append(order.Items, models.OrderItem{
			ComponentID: ci.ComponentID,
			Price:       ci.Price,
			Quantity:    ci.Quantity,
			Subtotal:    subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
	}

	return os.repo.CreateOrder(ctx, order)
}

// ListUserOrders returns orders of user
func (os *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return os.repo.GetOrdersByUserID(ctx, userID)
}

// Get returns order with items; only the owner may read it
func (os *OrderService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	order, err := os.repo.GetOrderWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrForbidden
	}

	return order, nil
}

// ListPurchases returns components user has bought
func (os *OrderService) ListPurchases(ctx context.Context, userID uuid.UUID) ([]models.Component, error) {
	return os.repo.GetPurchasedComponents(ctx, userID)
}

// ListAll returns all orders (admin)
func (os *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return os.repo.GetAllOrders(ctx)
}

// UpdateStatus sets order status (admin); status must be a member of the enumeration
func (os *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !models.IsValidOrderStatus(status) {
		return models.ErrInvalidOrderStatus
	}

	return os.repo.UpdateOrderStatus(ctx, id, status)
}
