package domain

import "errors"

var (
	ErrNotRegistered    = errors.New("chat not registered")
	ErrInvoiceCreation  = errors.New("invoice creation failed")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrOrderNotFound    = errors.New("order not found")
	ErrKeyNotFound      = errors.New("activation key not found")
	ErrOwnerMismatch    = errors.New("activation key belongs to another chat")
)
