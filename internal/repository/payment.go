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
	insertPaymentQuery = `
						INSERT INTO payments (id, order_id, provider, amount, status, payment_url, response_data)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING created_at
`
	selectLatestPaymentByOrderQuery = `
						SELECT id, order_id, provider, amount, status, transaction_id, payment_url, response_data, paid_at, created_at, updated_at
						FROM payments
						WHERE order_id = $1
						ORDER BY created_at DESC
						LIMIT 1
`
	updatePaymentStatusQuery = `
						UPDATE payments
						SET status = $1, response_data = $2, updated_at = now()
						WHERE id = $3
`
)

// PaymentRepository provides access to payment attempt storage
type PaymentRepository struct {
	db *postgres.DB
}

// NewPaymentRepository creates new PaymentRepository instance
func NewPaymentRepository(db *postgres.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment inserts new payment attempt
func (pr *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	err := pr.db.QueryRow(ctx, insertPaymentQuery, payment.ID, payment.OrderID, payment.Provider,
		payment.Amount, payment.Status, payment.PaymentURL, payment.ResponseData).Scan(&payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// GetLatestByOrderID returns the live payment attempt of order
func (pr *PaymentRepository) GetLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	payment := models.Payment{}
	err := pr.db.QueryRow(ctx, selectLatestPaymentByOrderQuery, orderID).Scan(&payment.ID, &payment.OrderID,
		&payment.Provider, &payment.Amount, &payment.Status, &payment.TransactionID, &payment.PaymentURL,
		&payment.ResponseData, &payment.PaidAt, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &payment, nil
}

// UpdateStatus sets payment status with raw response payload
func (pr *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, responseData string) error {
	cmd, err := pr.db.Exec(ctx, updatePaymentStatusQuery, status, responseData, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
