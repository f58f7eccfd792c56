package repository

import (
	"context"
	"errors"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/easyui/easyui-backend/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	selectUserCartQuery = `
						SELECT ci.id, ci.user_id, ci.component_id, ci.price::text, ci.quantity, ci.created_at, ci.updated_at,
							   c.name, c.preview_url
						FROM cart_items ci
						JOIN components c ON c.id = ci.component_id
						WHERE ci.user_id = $1
						ORDER BY ci.created_at DESC
`
	selectCartItemByIDQuery = `
						SELECT id, user_id, component_id, price::text, quantity, created_at, updated_at
						FROM cart_items
						WHERE id = $1
`
	selectUserCartItemQuery = `
						SELECT id, user_id, component_id, price::text, quantity, created_at, updated_at
						FROM cart_items
						WHERE user_id = $1 AND component_id = $2
`
	insertCartItemQuery = `
						INSERT INTO cart_items (id, user_id, component_id, price, quantity)
						VALUES ($1, $2, $3, $4, $5)
`
	updateCartQuantityQuery = `
						UPDATE cart_items
						SET quantity = $1, updated_at = now()
						WHERE id = $2
`
	deleteCartItemQuery = `
						DELETE FROM cart_items
						WHERE id = $1
`
)

// CartRepository provides access to cart storage
type CartRepository struct {
	db *postgres.DB
}

// NewCartRepository creates new CartRepository instance
func NewCartRepository(db *postgres.DB) *CartRepository {
	return &CartRepository{db: db}
}

func scanCartItem(row pgx.Row, item *models.CartItem) error {
	var price string
	if err := row.Scan(&item.ID, &item.UserID, &item.ComponentID, &price, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	item.Price = p

	return nil
}

// GetUserCart returns cart items of user with component summaries
func (cr *CartRepository) GetUserCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	rows, err := cr.db.Query(ctx, selectUserCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		item := models.CartItem{}
		var price string
		if err := rows.Scan(&item.ID, &item.UserID, &item.ComponentID, &price, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt, &item.ComponentName, &item.PreviewURL); err != nil {
			return nil, err
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		item.Price = p
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetByID returns cart item by id
func (cr *CartRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	item := models.CartItem{}
	if err := scanCartItem(cr.db.QueryRow(ctx, selectCartItemByIDQuery, id), &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &item, nil
}

// GetUserCartItem returns cart item of user for given component
func (cr *CartRepository) GetUserCartItem(ctx context.Context, userID, componentID uuid.UUID) (*models.CartItem, error) {
	item := models.CartItem{}
	if err := scanCartItem(cr.db.QueryRow(ctx, selectUserCartItemQuery, userID, componentID), &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &item, nil
}

// CreateCartItem inserts new cart item
func (cr *CartRepository) CreateCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	_, err := cr.db.Exec(ctx, insertCartItemQuery, item.ID, item.UserID, item.ComponentID,
		item.Price.String(), item.Quantity)
	if err != nil {
		if errCode := cr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return item, nil
}

// UpdateQuantity sets cart item quantity
func (cr *CartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	cmd, err := cr.db.Exec(ctx, updateCartQuantityQuery, quantity, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteCartItem removes cart item
func (cr *CartRepository) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, deleteCartItemQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
