package service

import (
	"context"
	"testing"
	"time"

	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
	"github.com/loveawm50-hub/otp-bots.com/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyFixture(t *testing.T) (*VerifyService, *store.MemoryKeyStore) {
	t.Helper()
	keys := store.NewMemoryKeyStore()
	require.NoError(t, keys.Put(context.Background(), "ABCDEF0123456789ABCDEF0123456789", domain.ActivationKey{
		Code:      "ABCDEF0123456789ABCDEF0123456789",
		ChatID:    "123",
		PackageID: "pro",
		CreatedAt: time.Now(),
	}))
	return NewVerifyService(keys), keys
}

func TestVerifyConsumesKey(t *testing.T) {
	ctx := context.Background()
	svc, keys := newVerifyFixture(t)

	packageID, err := svc.Verify(ctx, "123", "ABCDEF0123456789ABCDEF0123456789")
	require.NoError(t, err)
	assert.Equal(t, "pro", packageID)

	// Single use: a second attempt is indistinguishable from never-issued.
	_, err = svc.Verify(ctx, "123", "ABCDEF0123456789ABCDEF0123456789")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	_, err = keys.Get(ctx, "ABCDEF0123456789ABCDEF0123456789")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestVerifyUnknownKey(t *testing.T) {
	svc, _ := newVerifyFixture(t)

	_, err := svc.Verify(context.Background(), "123", "00000000000000000000000000000000")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestVerifyOwnerMismatchKeepsKey(t *testing.T) {
	ctx := context.Background()
	svc, keys := newVerifyFixture(t)

	_, err := svc.Verify(ctx, "456", "ABCDEF0123456789ABCDEF0123456789")
	assert.ErrorIs(t, err, domain.ErrOwnerMismatch)

	// The rightful owner can still redeem.
	_, err = keys.Get(ctx, "ABCDEF0123456789ABCDEF0123456789")
	require.NoError(t, err)
	packageID, err := svc.Verify(ctx, "123", "ABCDEF0123456789ABCDEF0123456789")
	require.NoError(t, err)
	assert.Equal(t, "pro", packageID)
}
