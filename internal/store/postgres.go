package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
	"github.com/shopspring/decimal"
)

// PostgresOrderStore persists pending orders so they survive restarts.
// Amounts travel as text to keep the numeric column lossless.
type PostgresOrderStore struct {
	db *pgxpool.Pool
}

func NewPostgresOrderStore(db *pgxpool.Pool) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (s *PostgresOrderStore) Put(ctx context.Context, key string, order domain.PendingOrder) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO pending_orders (store_key, chat_id, username, display_name, package_id, amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
		ON CONFLICT (store_key) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			package_id = EXCLUDED.package_id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			created_at = EXCLUDED.created_at`,
		key, order.ChatID, order.Username, order.DisplayName, order.PackageID,
		order.Amount.String(), order.Currency, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

func (s *PostgresOrderStore) Get(ctx context.Context, key string) (domain.PendingOrder, error) {
	row := s.db.QueryRow(ctx, `
		SELECT chat_id, username, display_name, package_id, amount::text, currency, created_at
		FROM pending_orders WHERE store_key = $1`, key)
	return scanOrder(row)
}

func (s *PostgresOrderStore) Take(ctx context.Context, key string) (domain.PendingOrder, error) {
	row := s.db.QueryRow(ctx, `
		DELETE FROM pending_orders WHERE store_key = $1
		RETURNING chat_id, username, display_name, package_id, amount::text, currency, created_at`, key)
	return scanOrder(row)
}

func (s *PostgresOrderStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM pending_orders WHERE store_key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (domain.PendingOrder, error) {
	var (
		order     domain.PendingOrder
		amount    string
		createdAt time.Time
	)
	err := row.Scan(&order.ChatID, &order.Username, &order.DisplayName,
		&order.PackageID, &amount, &order.Currency, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PendingOrder{}, domain.ErrOrderNotFound
		}
		return domain.PendingOrder{}, fmt.Errorf("scan order: %w", err)
	}
	order.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.PendingOrder{}, fmt.Errorf("parse amount: %w", err)
	}
	order.CreatedAt = createdAt
	return order, nil
}

type PostgresKeyStore struct {
	db *pgxpool.Pool
}

func NewPostgresKeyStore(db *pgxpool.Pool) *PostgresKeyStore {
	return &PostgresKeyStore{db: db}
}

func (s *PostgresKeyStore) Put(ctx context.Context, code string, key domain.ActivationKey) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO activation_keys (code, chat_id, package_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		code, key.ChatID, key.PackageID, key.CreatedAt)
	if err != nil {
		return fmt.Errorf("put activation key: %w", err)
	}
	return nil
}

func (s *PostgresKeyStore) Get(ctx context.Context, code string) (domain.ActivationKey, error) {
	var key domain.ActivationKey
	err := s.db.QueryRow(ctx, `
		SELECT code, chat_id, package_id, created_at
		FROM activation_keys WHERE code = $1`, code).
		Scan(&key.Code, &key.ChatID, &key.PackageID, &key.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ActivationKey{}, domain.ErrKeyNotFound
		}
		return domain.ActivationKey{}, fmt.Errorf("get activation key: %w", err)
	}
	return key, nil
}

func (s *PostgresKeyStore) Delete(ctx context.Context, code string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM activation_keys WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete activation key: %w", err)
	}
	return nil
}
