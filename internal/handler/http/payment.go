package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, orderID uuid.UUID, returnURL string) (string, error)
	ProcessCallback(ctx context.Context, fields map[string]string) bool
	GetPaymentStatus(ctx context.Context, orderID uuid.UUID) string
}

// PaymentHandler represents HTTP handler for payment-related requests
type PaymentHandler struct {
	svc PaymentService
}

// NewPaymentHandler creates new PaymentHandler instance
func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createPaymentRequest struct {
	OrderID   string `json:"orderId"`
	ReturnURL string `json:"returnUrl"`
}

type createPaymentResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

// CreateMomoPayment creates payment attempt and returns provider-hosted payment URL
// 200 — payment URL created;
// 400 — bad request format;
// 401 — user is not authenticated;
// 404 — order not found;
// 500 — payment provider error or internal error.
func (ph *PaymentHandler) CreateMomoPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}

		paymentURL, err := ph.svc.CreatePayment(r.Context(), orderID, req.ReturnURL)
		if err != nil {
			var provErr models.PaymentProviderError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrEmptyReturnURL):
				http.Error(w, "return url is required", http.StatusBadRequest)
			case errors.As(err, &provErr):
				http.Error(w, provErr.Error(), http.StatusInternalServerError)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(createPaymentResponse{PaymentURL: paymentURL}); err != nil {
			return
		}
	}
}

// MomoReturn handles the redirect-return from the provider and forwards the
// user to the success or failure page
// 302 — always, regardless of outcome.
func (ph *PaymentHandler) MomoReturn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields := make(map[string]string)
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}

		if ph.svc.ProcessCallback(r.Context(), fields) {
			http.Redirect(w, r, "/payment/success", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/payment/failure", http.StatusFound)
	}
}

// MomoIPN handles the server-to-server notification. It always acknowledges
// receipt so the provider does not keep retrying delivery.
// 204 — always.
func (ph *PaymentHandler) MomoIPN() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		// numeric fields (amount, resultCode, ...) must keep their exact
		// wire representation for signature recomputation
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()

		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		fields := make(map[string]string, len(raw))
		for key, value := range raw {
			switch v := value.(type) {
			case string:
				fields[key] = v
			case json.Number:
				fields[key] = v.String()
			case bool:
				fields[key] = strconv.FormatBool(v)
			}
		}

		ph.svc.ProcessCallback(r.Context(), fields)

		w.WriteHeader(http.StatusNoContent)
	}
}

type paymentStatusResponse struct {
	Status string `json:"status"`
}

// GetPaymentStatus returns payment status of order
// 200 — success (status may be "Unknown");
// 400 — bad order id;
// 401 — user is not authenticated.
func (ph *PaymentHandler) GetPaymentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}

		status := ph.svc.GetPaymentStatus(r.Context(), orderID)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(paymentStatusResponse{Status: status}); err != nil {
			return
		}
	}
}
