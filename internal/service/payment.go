package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/easyui/easyui-backend/internal/logger"
	"github.com/easyui/easyui-backend/internal/models"
	"github.com/easyui/easyui-backend/internal/momo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentRepository is interface for interacting with payment attempt data
type PaymentRepository interface {
	// CreatePayment inserts new payment attempt
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	// GetLatestByOrderID returns the live payment attempt of order
	GetLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	// UpdateStatus sets payment status with raw response payload
	UpdateStatus(ctx context.Context, id uuid.UUID, status, responseData string) error
}

// Gateway is interface to the payment provider
type Gateway interface {
	// NewCreateRequest builds a signed create request
	NewCreateRequest(requestID, orderID, orderInfo, redirectURL string, amount int64) *momo.CreateRequest
	// CreateTransaction submits the request and returns decoded response with raw body
	CreateTransaction(ctx context.Context, req *momo.CreateRequest) (*momo.CreateResponse, []byte, error)
	// VerifyCallback checks the callback signature
	VerifyCallback(fields map[string]string) bool
}

// PaymentService orchestrates payment creation, callback processing and
// order/payment state transitions.
type PaymentService struct {
	orders   OrderRepository
	payments PaymentRepository
	gateway  Gateway
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(orders OrderRepository, payments PaymentRepository, gateway Gateway) *PaymentService {
	return &PaymentService{
		orders:   orders,
		payments: payments,
		gateway:  gateway,
	}
}

// CreatePayment produces a provider-hosted payment URL for order.
// No HTTP call is made when the order does not exist.
func (ps *PaymentService) CreatePayment(ctx context.Context, orderID uuid.UUID, returnURL string) (string, error) {
	if returnURL == "" {
		return "", models.ErrEmptyReturnURL
	}

	order, err := ps.orders.GetOrderWithItems(ctx, orderID)
	if err != nil {
		return "", err
	}

	amount := momo.SettlementAmount(order.TotalAmount)

	// fresh correlation ids, distinct from the internal order id
	requestID := uuid.NewString()
	momoOrderID := newMomoOrderID()
	orderInfo := "Thanh toan don hang " + order.ID.String()

	req := ps.gateway.NewCreateRequest(requestID, momoOrderID, orderInfo, returnURL, amount)

	resp, raw, err := ps.gateway.CreateTransaction(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.ResultCode != 0 {
		return "", models.NewPaymentProviderError(resp.ResultCode, resp.Message)
	}

	order.PaymentMethod = models.ProviderMomo
	order.PaymentStatus = models.PaymentStatusPending
	order.MomoOrderID = momoOrderID
	order.MomoRequestID = requestID

	if err := ps.orders.UpdateOrderPaymentInfo(ctx, order); err != nil {
		return "", err
	}

	payment := &models.Payment{
		OrderID:      order.ID,
		Provider:     models.ProviderMomo,
		Amount:       amount,
		Status:       models.PaymentStatusPending,
		PaymentURL:   resp.PayURL,
		ResponseData: string(raw),
	}

	if _, err := ps.payments.CreatePayment(ctx, payment); err != nil {
		return "", err
	}

	return resp.PayURL, nil
}

// ProcessCallback validates and applies a provider notification. It never
// returns an error: the delivery endpoint must always acknowledge receipt,
// so every failure is logged and reported as false.
func (ps *PaymentService) ProcessCallback(ctx context.Context, fields map[string]string) bool {
	if !ps.gateway.VerifyCallback(fields) {
		logger.Log.Warn("callback signature mismatch", zap.String("momo_order_id", fields["orderId"]))
		return false
	}

	order, err := ps.orders.GetOrderByMomoOrderID(ctx, fields["orderId"])
	if err != nil {
		logger.Log.Error("callback order lookup", zap.String("momo_order_id", fields["orderId"]), zap.Error(err))
		return false
	}

	payment, err := ps.payments.GetLatestByOrderID(ctx, order.ID)
	if err != nil {
		logger.Log.Error("callback payment lookup", zap.String("order", order.ID.String()), zap.Error(err))
		return false
	}

	// redelivery of an already applied success is acknowledged as success
	if payment.Status == models.PaymentStatusCompleted {
		return true
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", fields))
	}
	payment.ResponseData = string(raw)

	if fields["resultCode"] == "0" {
		now := time.Now()

		order.Status = models.OrderStatusProcessing
		order.PaymentStatus = models.PaymentStatusCompleted
		order.TransactionID = fields["transId"]
		order.PaidAt = &now

		payment.Status = models.PaymentStatusCompleted
		payment.TransactionID = fields["transId"]
		payment.PaidAt = &now

		if err := ps.orders.ApplyCallback(ctx, order, payment); err != nil {
			logger.Log.Error("apply successful callback", zap.String("order", order.ID.String()), zap.Error(err))
			return false
		}

		logger.Log.Info("payment completed",
			zap.String("order", order.ID.String()),
			zap.String("trans_id", fields["transId"]))
		return true
	}

	order.PaymentStatus = models.PaymentStatusFailed
	payment.Status = models.PaymentStatusFailed

	if err := ps.orders.ApplyCallback(ctx, order, payment); err != nil {
		logger.Log.Error("apply failed callback", zap.String("order", order.ID.String()), zap.Error(err))
	}

	logger.Log.Info("payment failed",
		zap.String("order", order.ID.String()),
		zap.String("result_code", fields["resultCode"]),
		zap.String("message", fields["message"]))
	return false
}

// GetPaymentStatus returns payment status of order, or Unknown when the
// order does not exist or has no payment attempt yet
func (ps *PaymentService) GetPaymentStatus(ctx context.Context, orderID uuid.UUID) string {
	order, err := ps.orders.GetOrderByID(ctx, orderID)
	if err != nil || order.PaymentStatus == "" {
		return models.PaymentStatusUnknown
	}
	return order.PaymentStatus
}

// ExpirePendingPayments cancels orders whose payment attempt stayed pending
// longer than ttl
func (ps *PaymentService) ExpirePendingPayments(ctx context.Context, ttl time.Duration) error {
	orders, err := ps.orders.GetStalePendingOrders(ctx, time.Now().Add(-ttl))
	if err != nil {
		return err
	}

	for i := range orders {
		order := &orders[i]

		payment, err := ps.payments.GetLatestByOrderID(ctx, order.ID)
		if err != nil {
			logger.Log.Error("expire payment lookup", zap.String("order", order.ID.String()), zap.Error(err))
			continue
		}
		if payment.Status != models.PaymentStatusPending {
			continue
		}

		order.Status = models.OrderStatusCancelled
		order.PaymentStatus = models.PaymentStatusFailed
		payment.Status = models.PaymentStatusFailed

		if err := ps.orders.ApplyCallback(ctx, order, payment); err != nil {
			logger.Log.Error("expire pending payment", zap.String("order", order.ID.String()), zap.Error(err))
			continue
		}

		logger.Log.Info("pending payment expired", zap.String("order", order.ID.String()))
	}

	return nil
}

// newMomoOrderID generates a time-based provider order id
func newMomoOrderID() string {
	return fmt.Sprintf("EUI%d", time.Now().UnixNano())
}
