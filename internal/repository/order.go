package repository

import (
	"context"
	"errors"
	"time"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/easyui/easyui-backend/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	orderColumns = `id, user_id, total_amount::text, status, payment_method, payment_status,
					transaction_id, momo_order_id, momo_request_id, paid_at, created_at, updated_at, is_active`

	insertOrderQuery = `
						INSERT INTO orders (id, user_id, total_amount, status, payment_method)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING created_at
`
	insertOrderItemQuery = `
						INSERT INTO order_items (id, order_id, component_id, price, quantity, subtotal)
						VALUES ($1, $2, $3, $4, $5, $6)
`
	clearUserCartQuery = `
						DELETE FROM cart_items
						WHERE user_id = $1
`
	selectOrderByIDQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE id = $1 AND is_active = TRUE
`
	selectOrderByMomoOrderIDQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE momo_order_id = $1 AND is_active = TRUE
`
	selectOrdersByUserIDQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE user_id = $1 AND is_active = TRUE
						ORDER BY created_at DESC
`
	selectAllOrdersQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE is_active = TRUE
						ORDER BY created_at DESC
`
	selectOrderItemsQuery = `
						SELECT id, order_id, component_id, price::text, quantity, subtotal::text
						FROM order_items
						WHERE order_id = $1
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $1, updated_at = now()
						WHERE id = $2 AND is_active = TRUE
`
	updateOrderPaymentInfoQuery = `
						UPDATE orders
						SET payment_method = $1, payment_status = $2, momo_order_id = $3, momo_request_id = $4, updated_at = now()
						WHERE id = $5
`
	updateOrderCallbackQuery = `
						UPDATE orders
						SET status = $1, payment_status = $2, transaction_id = $3, paid_at = $4, updated_at = now()
						WHERE id = $5
`
	updatePaymentCallbackQuery = `
						UPDATE payments
						SET status = $1, transaction_id = $2, paid_at = $3, response_data = $4, updated_at = now()
						WHERE id = $5
`
	selectPurchasedComponentsQuery = `
						SELECT DISTINCT ` + componentColumns + `
						FROM components c
						JOIN order_items oi ON oi.component_id = c.id
						JOIN orders o ON o.id = oi.order_id
						WHERE o.user_id = $1 AND o.status = 'Completed'
`
	selectStalePendingOrdersQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE status = 'Pending' AND payment_status = 'Pending'
						  AND momo_order_id <> '' AND created_at < $1 AND is_active = TRUE
`
)

// OrderRepository provides access to order storage
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row, order *models.Order) error {
	var total string
	if err := row.Scan(&order.ID, &order.UserID, &total, &order.Status, &order.PaymentMethod,
		&order.PaymentStatus, &order.TransactionID, &order.MomoOrderID, &order.MomoRequestID,
		&order.PaidAt, &order.CreatedAt, &order.UpdatedAt, &order.IsActive); err != nil {
		return err
	}

	t, err := decimal.NewFromString(total)
	if err != nil {
		return err
	}
	order.TotalAmount = t

	return nil
}

// CreateOrder inserts order with its items and clears the user cart in one transaction
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	err := or.db.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertOrderQuery, order.ID, order.UserID,
			order.TotalAmount.String(), order.Status, order.PaymentMethod).Scan(&order.CreatedAt); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.OrderID = order.ID
			if _, err := tx.Exec(ctx, insertOrderItemQuery, item.ID, item.OrderID, item.ComponentID,
				item.Price.String(), item.Quantity, item.Subtotal.String()); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, clearUserCartQuery, order.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrderByID returns order by id without items
func (or *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	if err := scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrderWithItems returns order with its items
func (or *OrderRepository) GetOrderWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := or.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := or.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetOrderByMomoOrderID resolves order by provider correlation id
func (or *OrderRepository) GetOrderByMomoOrderID(ctx context.Context, momoOrderID string) (*models.Order, error) {
	order := models.Order{}
	if err := scanOrder(or.db.QueryRow(ctx, selectOrderByMomoOrderIDQuery, momoOrderID), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrdersByUserID returns orders of user
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return or.queryOrders(ctx, selectOrdersByUserIDQuery, userID)
}

// GetAllOrders returns all orders
func (or *OrderRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return or.queryOrders(ctx, selectAllOrdersQuery)
}

// GetStalePendingOrders returns orders whose payment attempt is still pending since before deadline
func (or *OrderRepository) GetStalePendingOrders(ctx context.Context, deadline time.Time) ([]models.Order, error) {
	return or.queryOrders(ctx, selectStalePendingOrdersQuery, deadline)
}

// UpdateOrderStatus sets order status
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, status, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// UpdateOrderPaymentInfo stores payment method, pending status and provider correlation ids
func (or *OrderRepository) UpdateOrderPaymentInfo(ctx context.Context, order *models.Order) error {
	cmd, err := or.db.Exec(ctx, updateOrderPaymentInfoQuery, order.PaymentMethod, order.PaymentStatus,
		order.MomoOrderID, order.MomoRequestID, order.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// ApplyCallback writes the order and payment state transition in one transaction,
// keeping Order.PaymentStatus and Payment.Status in agreement.
func (or *OrderRepository) ApplyCallback(ctx context.Context, order *models.Order, payment *models.Payment) error {
	return or.db.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, updateOrderCallbackQuery, order.Status, order.PaymentStatus,
			order.TransactionID, order.PaidAt, order.ID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, updatePaymentCallbackQuery, payment.Status, payment.TransactionID,
			payment.PaidAt, payment.ResponseData, payment.ID)
		return err
	})
}

// GetPurchasedComponents returns components from completed orders of user
func (or *OrderRepository) GetPurchasedComponents(ctx context.Context, userID uuid.UUID) ([]models.Component, error) {
	rows, err := or.db.Query(ctx, selectPurchasedComponentsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := []models.Component{}
	for rows.Next() {
		c := models.Component{}
		if err := scanComponent(rows, &c); err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (or *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order := models.Order{}
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (or *OrderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := or.db.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		item := models.OrderItem{}
		var price, subtotal string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ComponentID, &price, &item.Quantity, &subtotal); err != nil {
			return nil, err
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		s, err := decimal.NewFromString(subtotal)
		if err != nil {
			return nil, err
		}
		item.Price = p
		item.Subtotal = s
		items = append(items, item)
	}

	return items, rows.Err()
}
