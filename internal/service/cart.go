package service

import (
	"context"
	"errors"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
)

// CartRepository is interface for interacting with cart-related data
type CartRepository interface {
	// GetUserCart returns cart items of user with component summaries
	GetUserCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	// GetByID returns cart item by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	// GetUserCartItem returns cart item of user for given component
	GetUserCartItem(ctx context.Context, userID, componentID uuid.UUID) (*models.CartItem, error)
	// CreateCartItem inserts new cart item
	CreateCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	// UpdateQuantity sets cart item quantity
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	// DeleteCartItem removes cart item
	DeleteCartItem(ctx context.Context, id uuid.UUID) error
}

// CartService implements cart operations
type CartService struct {
	repo       CartRepository
	components ComponentRepository
}

// NewCartService creates new CartService instance
func NewCartService(repo CartRepository, components ComponentRepository) *CartService {
	return &CartService{
		repo:       repo,
		components: components,
	}
}

// GetCart returns cart items of user
func (cs *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return cs.repo.GetUserCart(ctx, userID)
}

// Add puts component into user cart. Adding the same component again
// increments the existing row quantity.
func (cs *CartService) Add(ctx context.Context, userID, componentID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	component, err := cs.components.GetComponentByID(ctx, componentID)
	if err != nil {
		return nil, err
	}

	existing, err := cs.repo.GetUserCartItem(ctx, userID, componentID)
	if err == nil {
		existing.Quantity += quantity
		if err := cs.repo.UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, models.ErrDataNotFound) {
		return nil, err
	}

	price := component.Price
	if component.DiscountPrice != nil {
		price = *component.DiscountPrice
	}

	item := &models.CartItem{
		UserID:      userID,
		ComponentID: componentID,
		Price:       price,
		Quantity:    quantity,
	}

	return cs.repo.CreateCartItem(ctx, item)
}

// UpdateQuantity sets quantity of cart item; only the owner may update
func (cs *CartService) UpdateQuantity(ctx context.Context, id, userID uuid.UUID, quantity int) error {
	item, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.ErrForbidden
	}

	return cs.repo.UpdateQuantity(ctx, id, quantity)
}

// Remove deletes cart item; only the owner may delete
func (cs *CartService) Remove(ctx context.Context, id, userID uuid.UUID) error {
	item, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.ErrForbidden
	}

	return cs.repo.DeleteCartItem(ctx, id)
}
