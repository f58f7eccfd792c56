package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easyui/easyui-backend/internal/handler/http/mocks"
	"github.com/easyui/easyui-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_CreateOrder(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 201 — order created;
			name:  "valid_request_return_201",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"paymentMethod":"momo"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Create(gomock.Any(), userID, "momo").
					Return(&models.Order{
						ID:          uuid.New(),
						UserID:      userID,
						TotalAmount: decimal.RequireFromString("9.99"),
						Status:      models.OrderStatusPending,
					}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			// 400 — empty cart;
			name:  "empty_cart_return_400",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"paymentMethod":"momo"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrCartEmpty).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 400 — bad request format;
			name:  "bad_body_return_400",
			token: &models.TokenPayload{UserID: userID},
			body:  `not json`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 401 — user is not authenticated;
			name: "unauthorized_request_return_401",
			body: `{"paymentMethod":"momo"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 500 — internal server error.
			name:  "internal_error_return_500",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"paymentMethod":"momo"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/user/orders", strings.NewReader(tt.body))
			require.NoError(t, err)

			ctx := req.Context()
			if tt.token != nil {
				ctx = context.WithValue(ctx, authPayloadKey, tt.token)
			}

			w := httptest.NewRecorder()
			handler := NewOrderHandler(tt.setup(t))
			handler.CreateOrder()(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_ListUserOrders(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	createdAt := time.Now()

	tests := []struct {
		name           string
		token          *models.TokenPayload
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
		wantBody       []orderResp
	}{
		{
			// 200 — success.
			name:  "valid_request_return_200",
			token: &models.TokenPayload{UserID: userID},
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), userID).Return([]models.Order{
					{
						ID:            orderID,
						UserID:        userID,
						TotalAmount:   decimal.RequireFromString("24.48"),
						Status:        models.OrderStatusProcessing,
						PaymentMethod: models.ProviderMomo,
						PaymentStatus: models.PaymentStatusCompleted,
						TransactionID: "4088878653",
						CreatedAt:     createdAt,
					},
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: []orderResp{{
				ID:            orderID.String(),
				TotalAmount:   "24.48",
				Status:        models.OrderStatusProcessing,
				PaymentMethod: models.ProviderMomo,
				PaymentStatus: models.PaymentStatusCompleted,
				TransactionID: "4088878653",
				CreatedAt:     createdAt.Format(time.RFC3339),
			}},
		},
		{
			// 401 — user is not authenticated.
			name: "unauthorized_request_return_401",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 500 — internal server error.
			name:  "internal_error_return_500",
			token: &models.TokenPayload{UserID: userID},
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).
					Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/user/orders", nil)
			require.NoError(t, err)

			ctx := req.Context()
			if tt.token != nil {
				ctx = context.WithValue(ctx, authPayloadKey, tt.token)
			}

			w := httptest.NewRecorder()
			handler := NewOrderHandler(tt.setup(t))
			handler.ListUserOrders()(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantBody != nil {
				resBody, err := io.ReadAll(res.Body)
				require.NoError(t, err)

				var got []orderResp
				require.NoError(t, json.Unmarshal(resBody, &got))

				if diff := cmp.Diff(tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 204 — status updated;
			name: "valid_request_return_204",
			body: `{"status":"Completed"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().UpdateStatus(gomock.Any(), orderID, models.OrderStatusCompleted).
					Return(nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			// 400 — unknown status;
			name: "unknown_status_return_400",
			body: `{"status":"Shipped"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.ErrInvalidOrderStatus).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 404 — order not found.
			name: "order_not_found_return_404",
			body: `{"status":"Completed"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPut,
				"/api/admin/orders/"+orderID.String()+"/status", strings.NewReader(tt.body))
			require.NoError(t, err)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", orderID.String())
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)

			w := httptest.NewRecorder()
			handler := NewOrderHandler(tt.setup(t))
			handler.UpdateOrderStatus()(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}
