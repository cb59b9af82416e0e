package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Stripe creates PaymentIntents and hands back their client secret.
type Stripe struct {
	api *client.API
}

// NewStripe constructs a Stripe provider for secretKey.
func NewStripe(secretKey string) *Stripe {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Stripe{api: api}
}

// CreateIntent creates a PaymentIntent and returns its client secret.
func (s *Stripe) CreateIntent(ctx context.Context, in Intent) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(in.Amount),
		Currency:           stripe.String(in.Currency),
		PaymentMethodTypes: stripe.StringSlice(in.PaymentMethodTypes),
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
