package services

import (
	"errors"
	"time"
)

// Failure taxonomy shared by the services. Handlers map these onto HTTP
// statuses; nothing here is fatal.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrConflict           = errors.New("order is not awaiting confirmation")
	ErrBadPaymentMethod   = errors.New("unknown payment method")
)

// pause stands in for network round-trip time. The store backend mimics a
// remote API, so every operation can be configured to take a moment; tests
// run with zero delay.
func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
