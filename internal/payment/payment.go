// Package payment talks to external payment providers.
package payment

import (
	"context"
	"errors"
	"math"
)

// ErrNotConfigured is returned by Unconfigured for every call.
var ErrNotConfigured = errors.New("payment provider is not configured")

// Intent describes a charge the client will complete on its side.
type Intent struct {
	Amount             int64 // smallest currency unit
	Currency           string
	PaymentMethodTypes []string
	IdempotencyKey     string
	Metadata           map[string]string
}

// ToMinorUnits converts a decimal amount into the provider's smallest unit.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Unconfigured stands in when no provider secret is set.
type Unconfigured struct{}

func (Unconfigured) CreateIntent(context.Context, Intent) (string, error) {
	return "", ErrNotConfigured
}
