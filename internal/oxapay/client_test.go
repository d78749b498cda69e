package oxapay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoice(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("merchant_api_key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"track_id":    "INV1",
				"payment_url": "https://pay.oxapay.com/INV1",
			},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "api-key", "merchant-1")
	inv, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		Amount:      decimal.NewFromInt(10),
		Currency:    "USDT",
		OrderID:     "order-1",
		CallbackURL: "https://shop.example/api/oxapay/webhook",
		ChatID:      "123",
		PackageID:   "pro",
	})
	require.NoError(t, err)
	assert.Equal(t, "INV1", inv.TrackID)
	assert.Equal(t, "https://pay.oxapay.com/INV1", inv.PaymentURL)

	assert.Equal(t, "/payment/invoice", gotPath)
	assert.Equal(t, "api-key", gotAPIKey)
	assert.Equal(t, "10", gotBody["amount"])
	assert.Equal(t, "https://shop.example/api/oxapay/webhook", gotBody["callback_url"])
	meta, ok := gotBody["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "123", meta["chat_id"])
	assert.Equal(t, "pro", meta["package_id"])
}

func TestCreateInvoiceAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid currency"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "api-key", "")
	_, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		Amount:   decimal.NewFromInt(10),
		Currency: "NOPE",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestCreateInvoiceRejectedWithoutTrackID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":"merchant suspended"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "api-key", "")
	_, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		Amount:   decimal.NewFromInt(10),
		Currency: "USDT",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merchant suspended")
}

func TestParseWebhookPayload(t *testing.T) {
	raw := []byte(`{
		"status": "completed",
		"track_id": "INV1",
		"order_id": "order-1",
		"amount": "10",
		"currency": "USDT",
		"metadata": {"chat_id": "123", "package_id": "pro"}
	}`)

	p, err := ParseWebhookPayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "completed", p.Status)
	assert.Equal(t, "INV1", p.TrackID)
	assert.Equal(t, "123", p.Metadata.ChatID)
	assert.Equal(t, "pro", p.Metadata.PackageID)

	_, err = ParseWebhookPayload([]byte("{not json"))
	assert.Error(t, err)
}
