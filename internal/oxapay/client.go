package oxapay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client talks to the OxaPay merchant API.
type Client struct {
	baseURL    string
	apiKey     string
	merchantID string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, merchantID string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		merchantID: merchantID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type InvoiceRequest struct {
	Amount      decimal.Decimal
	Currency    string
	OrderID     string
	CallbackURL string
	Description string
	ChatID      string
	PackageID   string
}

// Invoice is the processor's answer to a created invoice: a hosted payment
// page and the track id its webhooks will later carry.
type Invoice struct {
	TrackID    string
	PaymentURL string
}

func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	payload := map[string]interface{}{
		"amount":       req.Amount.String(),
		"currency":     req.Currency,
		"order_id":     req.OrderID,
		"callback_url": req.CallbackURL,
		"description":  req.Description,
		"metadata": map[string]string{
			"chat_id":    req.ChatID,
			"package_id": req.PackageID,
		},
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/payment/invoice", bytes.NewReader(payloadJSON))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("merchant_api_key", c.apiKey)
	if c.merchantID != "" {
		httpReq.Header.Set("merchant", c.merchantID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oxapay status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Data struct {
			TrackID    string `json:"track_id"`
			PaymentURL string `json:"payment_url"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Data.TrackID == "" {
		return nil, fmt.Errorf("oxapay rejected invoice: %s", result.Message)
	}

	return &Invoice{
		TrackID:    result.Data.TrackID,
		PaymentURL: result.Data.PaymentURL,
	}, nil
}
