package momo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementAmount(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  int64
	}{
		{
			name:  "one_unit",
			total: "1",
			want:  25000,
		},
		{
			name:  "zero_clamped_to_minimum",
			total: "0",
			want:  1000,
		},
		{
			name:  "tiny_total_clamped_to_minimum",
			total: "0.00004",
			want:  1000,
		},
		{
			name:  "fractional_rounds_up",
			total: "0.999999",
			want:  25000,
		},
		{
			name:  "exact_product",
			total: "1.23456",
			want:  30864,
		},
		{
			name:  "large_total",
			total: "49.99",
			want:  1249750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := decimal.NewFromString(tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, SettlementAmount(total))
		})
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	var gotBody CreateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CreateResponse{
			PartnerCode: testPartnerCode,
			RequestID:   gotBody.RequestID,
			OrderID:     gotBody.OrderID,
			Amount:      gotBody.Amount,
			ResultCode:  0,
			Message:     "Successful.",
			PayURL:      "https://test-payment.momo.vn/pay/abc",
		})
	}))
	defer srv.Close()

	c := testClient()
	c.endpoint = srv.URL

	req := c.NewCreateRequest("req-1", "order-1", "info", "https://example.com/return", 25000)

	resp, raw, err := c.CreateTransaction(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 0, resp.ResultCode)
	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", resp.PayURL)
	assert.NotEmpty(t, raw)

	// wire payload carries credentials, correlation ids and the signature
	assert.Equal(t, testPartnerCode, gotBody.PartnerCode)
	assert.Equal(t, "captureWallet", gotBody.RequestType)
	assert.Equal(t, "vi", gotBody.Lang)
	assert.Equal(t, testIPNURL, gotBody.IpnURL)
	assert.Equal(t, req.Signature, gotBody.Signature)
}

func TestCreateTransaction_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad signature", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient()
	c.endpoint = srv.URL

	req := c.NewCreateRequest("req-1", "order-1", "info", "https://example.com/return", 25000)

	resp, _, err := c.CreateTransaction(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)

	var provErr models.PaymentProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusUnauthorized, provErr.Code)
}

func TestCreateTransaction_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := testClient()
	c.endpoint = srv.URL

	req := c.NewCreateRequest("req-1", "order-1", "info", "https://example.com/return", 25000)

	resp, raw, err := c.CreateTransaction(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "<html>not json</html>", string(raw))

	var provErr models.PaymentProviderError
	assert.True(t, errors.As(err, &provErr))
}
