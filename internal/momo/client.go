package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// MinAmount is the provider's minimum transaction amount in VND
	MinAmount = 1000
	// ExchangeRate is the fixed conversion rate from the reference currency to VND
	ExchangeRate = 25000

	requestType = "captureWallet"
	lang        = "vi"
)

// Config carries gateway credentials and endpoints
type Config struct {
	Endpoint    string
	PartnerCode string
	AccessKey   string
	SecretKey   string
	IPNURL      string
}

// Client is HTTP client to the MoMo payment gateway
type Client struct {
	client      *http.Client
	endpoint    string
	partnerCode string
	accessKey   string
	secretKey   string
	ipnURL      string
}

// NewClient creates new Client instance
func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		endpoint:    cfg.Endpoint,
		partnerCode: cfg.PartnerCode,
		accessKey:   cfg.AccessKey,
		secretKey:   cfg.SecretKey,
		ipnURL:      cfg.IPNURL,
	}
}

// CreateRequest is the outbound create-transaction payload
type CreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IpnURL      string `json:"ipnUrl"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

// CreateResponse is the gateway's answer to a create request
type CreateResponse struct {
	PartnerCode  string `json:"partnerCode"`
	RequestID    string `json:"requestId"`
	OrderID      string `json:"orderId"`
	Amount       int64  `json:"amount"`
	ResponseTime int64  `json:"responseTime"`
	Message      string `json:"message"`
	ResultCode   int    `json:"resultCode"`
	PayURL       string `json:"payUrl"`
	Deeplink     string `json:"deeplink"`
	QRCodeURL    string `json:"qrCodeUrl"`
	Signature    string `json:"signature"`
}

// NewCreateRequest builds a signed create request with client credentials
func (c *Client) NewCreateRequest(requestID, orderID, orderInfo, redirectURL string, amount int64) *CreateRequest {
	req := &CreateRequest{
		PartnerCode: c.partnerCode,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     orderID,
		OrderInfo:   orderInfo,
		RedirectURL: redirectURL,
		IpnURL:      c.ipnURL,
		RequestType: requestType,
		ExtraData:   "",
		Lang:        lang,
	}
	req.Signature = sign(c.secretKey, requestSigningPairs(c.accessKey, req))
	return req
}

// CreateTransaction submits the request and returns the decoded response
// along with the raw body for audit storage.
func (c *Client) CreateTransaction(ctx context.Context, createReq *CreateRequest) (*CreateResponse, []byte, error) {
	body, err := json.Marshal(createReq)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, raw, models.NewPaymentProviderError(resp.StatusCode, string(raw))
	}

	createResp := CreateResponse{}
	if err := json.Unmarshal(raw, &createResp); err != nil {
		return nil, raw, models.NewPaymentProviderError(resp.StatusCode, "undecodable provider response")
	}

	return &createResp, raw, nil
}

// SettlementAmount converts a reference-currency total to VND, rounding up
// and clamping to the provider minimum
func SettlementAmount(total decimal.Decimal) int64 {
	amount := total.Mul(decimal.NewFromInt(ExchangeRate)).Ceil().IntPart()
	if amount < MinAmount {
		amount = MinAmount
	}
	return amount
}

func formatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}
