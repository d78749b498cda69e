package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
	"github.com/loveawm50-hub/otp-bots.com/internal/oxapay"
	"github.com/loveawm50-hub/otp-bots.com/internal/store"
	"github.com/shopspring/decimal"
)

// InvoiceCreator is the slice of the payment processor the order service
// needs. Satisfied by *oxapay.Client.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, req oxapay.InvoiceRequest) (*oxapay.Invoice, error)
}

// Notifier delivers an issued activation key to the buyer and operational
// notices to the admin chat.
type Notifier interface {
	SendActivationKey(ctx context.Context, chatID, packageID, code string) error
	NotifyAdmin(ctx context.Context, text string) error
}

type OrderService struct {
	orders      store.OrderStore
	keys        store.KeyStore
	processor   InvoiceCreator
	notifier    Notifier
	verifier    *oxapay.Verifier
	callbackURL string
}

func NewOrderService(orders store.OrderStore, keys store.KeyStore, processor InvoiceCreator, notifier Notifier, verifier *oxapay.Verifier, callbackURL string) *OrderService {
	return &OrderService{
		orders:      orders,
		keys:        keys,
		processor:   processor,
		notifier:    notifier,
		verifier:    verifier,
		callbackURL: callbackURL,
	}
}

// Register stores the buyer's registration keyed by chat id. Re-registering
// overwrites the previous entry.
func (s *OrderService) Register(ctx context.Context, chatID, username, displayName string) error {
	order := domain.PendingOrder{
		ChatID:      chatID,
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	if err := s.orders.Put(ctx, chatID, order); err != nil {
		return fmt.Errorf("store registration: %w", err)
	}
	return nil
}

// CreateInvoice asks the processor for a hosted payment page and records a
// second pending order keyed by the returned track id. The registration
// entry is untouched; nothing is written when the processor call fails.
func (s *OrderService) CreateInvoice(ctx context.Context, chatID, packageID string, amount decimal.Decimal, currency string) (*oxapay.Invoice, error) {
	reg, err := s.orders.Get(ctx, chatID)
	if err != nil {
		return nil, domain.ErrNotRegistered
	}

	inv, err := s.processor.CreateInvoice(ctx, oxapay.InvoiceRequest{
		Amount:      amount,
		Currency:    currency,
		OrderID:     uuid.New().String(),
		CallbackURL: s.callbackURL,
		Description: fmt.Sprintf("Package %s for %s", packageID, chatID),
		ChatID:      chatID,
		PackageID:   packageID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvoiceCreation, err)
	}

	pending := domain.PendingOrder{
		ChatID:      chatID,
		Username:    reg.Username,
		DisplayName: reg.DisplayName,
		PackageID:   packageID,
		Amount:      amount,
		Currency:    currency,
		CreatedAt:   time.Now(),
	}
	if err := s.orders.Put(ctx, inv.TrackID, pending); err != nil {
		return nil, fmt.Errorf("store pending order: %w", err)
	}

	return inv, nil
}

// WebhookResult reports how a processor notification was handled.
type WebhookResult struct {
	// Ignored is set for authentic notifications with a non-terminal
	// status; they produce no state change.
	Ignored bool
	Key     *domain.ActivationKey
}

// HandleWebhook processes a payment notification: verify, correlate,
// issue the activation key, notify the buyer best-effort.
func (s *OrderService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if !s.verifier.Verify(payload, signature) {
		return nil, domain.ErrInvalidSignature
	}

	p, err := oxapay.ParseWebhookPayload(payload)
	if err != nil {
		return nil, err
	}

	if domain.PaymentStatus(p.Status) != domain.PaymentStatusCompleted {
		slog.Info("webhook ignored", "status", p.Status, "track_id", p.TrackID)
		return &WebhookResult{Ignored: true}, nil
	}

	order, err := s.resolveOrder(ctx, p)
	if err != nil {
		return nil, err
	}

	key, err := s.issueKey(ctx, order)
	if err != nil {
		return nil, err
	}

	// Delivery is best-effort: the buyer can still redeem the key later,
	// and the processor must receive a success either way.
	if err := s.notifier.SendActivationKey(ctx, key.ChatID, key.PackageID, key.Code); err != nil {
		slog.Warn("activation key delivery failed", "chat_id", key.ChatID, "error", err)
	}
	notice := fmt.Sprintf("Payment completed: chat %s, package %s, %s %s",
		order.ChatID, order.PackageID, order.Amount.String(), order.Currency)
	if err := s.notifier.NotifyAdmin(ctx, notice); err != nil {
		slog.Warn("admin notice failed", "error", err)
	}

	return &WebhookResult{Key: key}, nil
}

// resolveOrder correlates the notification with the originating buyer: by
// track id first, then by the chat id echoed in the metadata. Both pending
// entries are removed so the payment cannot issue twice.
func (s *OrderService) resolveOrder(ctx context.Context, p *oxapay.WebhookPayload) (domain.PendingOrder, error) {
	if p.TrackID != "" {
		order, err := s.orders.Take(ctx, p.TrackID)
		if err == nil {
			if order.ChatID != "" {
				_ = s.orders.Delete(ctx, order.ChatID)
			}
			return order, nil
		}
	}

	if chatID := p.Metadata.ChatID; chatID != "" {
		order, err := s.orders.Take(ctx, chatID)
		if err == nil {
			if order.PackageID == "" {
				order.PackageID = p.Metadata.PackageID
			}
			return order, nil
		}
	}

	return domain.PendingOrder{}, domain.ErrOrderNotFound
}

const keyIssueAttempts = 5

func (s *OrderService) issueKey(ctx context.Context, order domain.PendingOrder) (*domain.ActivationKey, error) {
	for i := 0; i < keyIssueAttempts; i++ {
		code := newActivationCode()
		if _, err := s.keys.Get(ctx, code); err == nil {
			continue // collision, try again
		}
		key := domain.ActivationKey{
			Code:      code,
			ChatID:    order.ChatID,
			PackageID: order.PackageID,
			CreatedAt: time.Now(),
		}
		if err := s.keys.Put(ctx, code, key); err != nil {
			return nil, fmt.Errorf("store activation key: %w", err)
		}
		return &key, nil
	}
	return nil, fmt.Errorf("generate activation key: %d collisions in a row", keyIssueAttempts)
}
