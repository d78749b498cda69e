package store

import (
	"context"

	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
)

// OrderStore keeps pending orders keyed by chat id or by the processor's
// invoice id. Take is an atomic delete-and-return so that concurrent
// webhook deliveries for the same invoice resolve the order at most once.
type OrderStore interface {
	Put(ctx context.Context, key string, order domain.PendingOrder) error
	Get(ctx context.Context, key string) (domain.PendingOrder, error)
	Take(ctx context.Context, key string) (domain.PendingOrder, error)
	Delete(ctx context.Context, key string) error
}

// KeyStore keeps issued activation keys by code.
type KeyStore interface {
	Put(ctx context.Context, code string, key domain.ActivationKey) error
	Get(ctx context.Context, code string) (domain.ActivationKey, error)
	Delete(ctx context.Context, code string) error
}
