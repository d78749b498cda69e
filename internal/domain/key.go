package domain

import "time"

// ActivationKey is a single-use credential proving a completed payment.
// It exists at most until its first successful verification.
type ActivationKey struct {
	Code      string    `json:"code"`
	ChatID    string    `json:"chat_id"`
	PackageID string    `json:"package_id"`
	CreatedAt time.Time `json:"created_at"`
}
