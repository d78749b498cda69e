package oxapay

import (
	"encoding/json"
	"fmt"
)

// WebhookPayload is the notification OxaPay posts on invoice status
// changes. Metadata echoes what was sent at invoice creation, so the chat
// id survives even when the track id is unknown to this process.
type WebhookPayload struct {
	Status   string `json:"status"`
	TrackID  string `json:"track_id"`
	OrderID  string `json:"order_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Metadata struct {
		ChatID    string `json:"chat_id"`
		PackageID string `json:"package_id"`
	} `json:"metadata"`
}

func ParseWebhookPayload(raw []byte) (*WebhookPayload, error) {
	var p WebhookPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse webhook payload: %w", err)
	}
	return &p, nil
}
