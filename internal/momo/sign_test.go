package momo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPartnerCode = "MOMO"
	testAccessKey   = "F8BBA842ECF85"
	testSecretKey   = "K951B6PE1waDMi640xX08PD3vg6EkVlz"
	testIPNURL      = "https://api.easyui.dev/api/payment/momo/ipn"
)

func testClient() *Client {
	return NewClient(Config{
		Endpoint:    "https://test-payment.momo.vn/v2/gateway/api/create",
		PartnerCode: testPartnerCode,
		AccessKey:   testAccessKey,
		SecretKey:   testSecretKey,
		IPNURL:      testIPNURL,
	})
}

func TestSigningString(t *testing.T) {
	pairs := [][2]string{
		{"accessKey", "key"},
		{"amount", "1000"},
		{"extraData", ""},
	}
	assert.Equal(t, "accessKey=key&amount=1000&extraData=", signingString(pairs))
}

func TestRequestSignature_GoldenVector(t *testing.T) {
	c := testClient()

	req := c.NewCreateRequest(
		"0f14d0ab-9605-4a62-a9e4-5ed26688389b",
		"EUI1700000000000000000",
		"Thanh toan don hang 6f9619ff-8b86-4d01-b42d-00cf4fc964ff",
		"https://easyui.dev/checkout/return",
		25000,
	)

	assert.Equal(t, "43c6ceaf360e72da8a9a26888e3ce221828923477544cd67a16e27f01078a374", req.Signature)
}

func TestRequestSignature_FieldChangeAltersDigest(t *testing.T) {
	c := testClient()

	base := c.NewCreateRequest("req-1", "order-1", "info", "https://example.com/return", 25000)

	tests := []struct {
		name   string
		mutate func(r *CreateRequest)
	}{
		{
			name:   "amount",
			mutate: func(r *CreateRequest) { r.Amount = 25001 },
		},
		{
			name:   "order_id",
			mutate: func(r *CreateRequest) { r.OrderID = "order-2" },
		},
		{
			name:   "order_info",
			mutate: func(r *CreateRequest) { r.OrderInfo = "other" },
		},
		{
			name:   "redirect_url",
			mutate: func(r *CreateRequest) { r.RedirectURL = "https://example.com/other" },
		},
		{
			name:   "request_id",
			mutate: func(r *CreateRequest) { r.RequestID = "req-2" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := *base
			tt.mutate(&changed)
			sig := sign(c.secretKey, requestSigningPairs(c.accessKey, &changed))
			assert.NotEqual(t, base.Signature, sig)
		})
	}
}

func validCallbackFields() map[string]string {
	return map[string]string{
		"partnerCode":  testPartnerCode,
		"orderId":      "EUI1700000000000000000",
		"requestId":    "0f14d0ab-9605-4a62-a9e4-5ed26688389b",
		"amount":       "25000",
		"orderInfo":    "Thanh toan don hang 6f9619ff-8b86-4d01-b42d-00cf4fc964ff",
		"orderType":    "momo_wallet",
		"transId":      "4088878653",
		"resultCode":   "0",
		"message":      "Successful.",
		"payType":      "qr",
		"responseTime": "1700000001000",
		"extraData":    "",
		"signature":    "377eea849e87d91ff61aace04cd3ea32ee1ef532405230ef0d4b21b9283eace5",
	}
}

func TestVerifyCallback(t *testing.T) {
	tests := []struct {
		name   string
		fields func() map[string]string
		want   bool
	}{
		{
			name:   "valid_signature",
			fields: validCallbackFields,
			want:   true,
		},
		{
			name: "tampered_amount",
			fields: func() map[string]string {
				f := validCallbackFields()
				f["amount"] = "1"
				return f
			},
			want: false,
		},
		{
			name: "tampered_result_code",
			fields: func() map[string]string {
				f := validCallbackFields()
				f["resultCode"] = "9000"
				return f
			},
			want: false,
		},
		{
			name: "missing_signature",
			fields: func() map[string]string {
				f := validCallbackFields()
				delete(f, "signature")
				return f
			},
			want: false,
		},
		{
			name: "empty_signature",
			fields: func() map[string]string {
				f := validCallbackFields()
				f["signature"] = ""
				return f
			},
			want: false,
		},
		{
			name: "extra_field_ignored",
			fields: func() map[string]string {
				f := validCallbackFields()
				f["lang"] = "vi"
				return f
			},
			want: true,
		},
	}

	c := testClient()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.VerifyCallback(tt.fields()))
		})
	}
}

func TestVerifyCallback_MissingFieldSignedAsEmpty(t *testing.T) {
	c := testClient()

	fields := validCallbackFields()
	delete(fields, "extraData")
	fields["signature"] = sign(testSecretKey, callbackSigningPairs(testAccessKey, fields))

	require.True(t, c.VerifyCallback(fields))

	fields["extraData"] = ""
	assert.True(t, c.VerifyCallback(fields), "absent field and empty field must sign identically")
}
