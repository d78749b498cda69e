package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingOrder is a buyer registration or an in-flight purchase. It is
// written twice per purchase: once keyed by chat id at registration and
// once keyed by the processor's invoice id after invoice creation; the
// webhook handler removes both entries together.
type PendingOrder struct {
	ChatID      string          `json:"chat_id"`
	Username    string          `json:"username,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	PackageID   string          `json:"package_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Terminal reports whether the processor will send no further updates for
// the invoice. Only completed payments produce an activation key.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}
