package service

import (
	"context"
	"fmt"

	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
	"github.com/loveawm50-hub/otp-bots.com/internal/store"
)

type VerifyService struct {
	keys store.KeyStore
}

func NewVerifyService(keys store.KeyStore) *VerifyService {
	return &VerifyService{keys: keys}
}

// Verify consumes an activation key and returns the package it unlocks.
// A used code and a never-issued code are indistinguishable to the caller.
// An owner mismatch leaves the key in place.
func (s *VerifyService) Verify(ctx context.Context, chatID, code string) (string, error) {
	key, err := s.keys.Get(ctx, code)
	if err != nil {
		return "", domain.ErrKeyNotFound
	}

	if key.ChatID != chatID {
		return "", domain.ErrOwnerMismatch
	}

	if err := s.keys.Delete(ctx, code); err != nil {
		return "", fmt.Errorf("consume activation key: %w", err)
	}

	return key.PackageID, nil
}
