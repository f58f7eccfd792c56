package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Add(ctx context.Context, userID, componentID uuid.UUID, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id, userID uuid.UUID, quantity int) error
	Remove(ctx context.Context, id, userID uuid.UUID) error
}

// CartHandler represents HTTP handler for cart-related requests
type CartHandler struct {
	svc CartService
}

// NewCartHandler creates new CartHandler instance
func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type cartItemResp struct {
	ID            string `json:"id"`
	ComponentID   string `json:"componentId"`
	ComponentName string `json:"componentName,omitempty"`
	PreviewURL    string `json:"previewUrl,omitempty"`
	Price         string `json:"price"`
	Quantity      int    `json:"quantity"`
}

func newCartItemResp(item *models.CartItem) cartItemResp {
	return cartItemResp{
		ID:            item.ID.String(),
		ComponentID:   item.ComponentID.String(),
		ComponentName: item.ComponentName,
		PreviewURL:    item.PreviewURL,
		Price:         item.Price.String(),
		Quantity:      item.Quantity,
	}
}

// GetUserCart returns cart of authenticated user
// 200 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (ch *CartHandler) GetUserCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := ch.svc.GetCart(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]cartItemResp, 0, len(items))
		for i := range items {
			resp = append(resp, newCartItemResp(&items[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type addToCartRequest struct {
	ComponentID string `json:"componentId"`
	Quantity    int    `json:"quantity"`
}

// AddToCart puts component into cart of authenticated user
// 201 — item added;
// 400 — bad request format;
// 401 — user is not authenticated;
// 404 — component not found;
// 500 — internal server error.
func (ch *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		componentID, err := uuid.Parse(req.ComponentID)
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		item, err := ch.svc.Add(r.Context(), payload.UserID, componentID, req.Quantity)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "component not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newCartItemResp(item)); err != nil {
			return
		}
	}
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets quantity of cart item
// 204 — quantity updated;
// 400 — bad request format;
// 401 — user is not authenticated;
// 403 — cart item belongs to another user;
// 404 — cart item not found;
// 500 — internal server error.
func (ch *CartHandler) UpdateCartItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad cart item id", http.StatusBadRequest)
			return
		}

		var req updateCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Quantity < 1 {
			http.Error(w, "bad quantity", http.StatusBadRequest)
			return
		}

		if err := ch.svc.UpdateQuantity(r.Context(), id, payload.UserID, req.Quantity); err != nil {
			writeCartError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveFromCart deletes cart item
// 204 — item removed;
// 400 — bad cart item id;
// 401 — user is not authenticated;
// 403 — cart item belongs to another user;
// 404 — cart item not found;
// 500 — internal server error.
func (ch *CartHandler) RemoveFromCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad cart item id", http.StatusBadRequest)
			return
		}

		if err := ch.svc.Remove(r.Context(), id, payload.UserID); err != nil {
			writeCartError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDataNotFound):
		http.Error(w, "cart item not found", http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
