package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, paymentMethod string) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]models.Component, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderItemResp struct {
	ID          string `json:"id"`
	ComponentID string `json:"componentId"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type orderResp struct {
	ID            string          `json:"id"`
	TotalAmount   string          `json:"totalAmount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	PaidAt        string          `json:"paidAt,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	Items         []orderItemResp `json:"items,omitempty"`
}

func newOrderResp(order *models.Order) orderResp {
	resp := orderResp{
		ID:            order.ID.String(),
		TotalAmount:   order.TotalAmount.String(),
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		TransactionID: order.TransactionID,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
	}
	if order.PaidAt != nil {
		resp.PaidAt = order.PaidAt.Format(time.RFC3339)
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, orderItemResp{
			ID:          item.ID.String(),
			ComponentID: item.ComponentID.String(),
			Price:       item.Price.String(),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal.String(),
		})
	}
	return resp
}

func writeOrders(w http.ResponseWriter, orders []models.Order) {
	resp := make([]orderResp, 0, len(orders))
	for i := range orders {
		resp = append(resp, newOrderResp(&orders[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return
	}
}

type createOrderRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CreateOrder builds order from cart of authenticated user
// 201 — order created;
// 400 — bad request format or empty cart;
// 401 — user is not authenticated;
// 500 — internal server error.
func (oh *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		order, err := oh.svc.Create(r.Context(), payload.UserID, req.PaymentMethod)
		if err != nil {
			if errors.Is(err, models.ErrCartEmpty) {
				http.Error(w, "cart is empty", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newOrderResp(order)); err != nil {
			return
		}
	}
}

// ListUserOrders returns orders of authenticated user
// 200 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeOrders(w, orders)
	}
}

// GetOrder returns order with items; only the owner may read it
// 200 — success;
// 400 — bad order id;
// 401 — user is not authenticated;
// 403 — order belongs to another user;
// 404 — order not found;
// 500 — internal server error.
func (oh *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}

		order, err := oh.svc.Get(r.Context(), id, payload.UserID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newOrderResp(order)); err != nil {
			return
		}
	}
}

// ListPurchases returns components bought by authenticated user
// 200 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (oh *OrderHandler) ListPurchases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		components, err := oh.svc.ListPurchases(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeComponents(w, components)
	}
}

// ListAllOrders returns all orders (admin)
// 200 — success;
// 401 — user is not authenticated;
// 403 — user is not an admin;
// 500 — internal server error.
func (oh *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := oh.svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeOrders(w, orders)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets order status (admin)
// 204 — status updated;
// 400 — bad request format or unknown status;
// 401 — user is not authenticated;
// 403 — user is not an admin;
// 404 — order not found;
// 500 — internal server error.
func (oh *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}

		var req updateOrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := oh.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidOrderStatus):
				http.Error(w, "unknown order status", http.StatusBadRequest)
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
