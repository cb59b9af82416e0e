package payment

import (
	"context"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Omise creates a payment source; its id is what the client completes.
type Omise struct {
	c          *omise.Client
	sourceType string
}

// NewOmise constructs an Omise provider. sourceType defaults to promptpay.
func NewOmise(publicKey, secretKey, sourceType string) (*Omise, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	c.SetDebug(false)
	if sourceType == "" {
		sourceType = "promptpay"
	}
	return &Omise{c: c, sourceType: sourceType}, nil
}

// CreateIntent creates a source for the amount and returns the source id.
func (o *Omise) CreateIntent(ctx context.Context, in Intent) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src := &omise.Source{}
	req := &operations.CreateSource{
		Type:     o.sourceType,
		Amount:   in.Amount,
		Currency: in.Currency,
	}
	if err := o.c.Do(src, req); err != nil {
		return "", fmt.Errorf("create omise source: %w", err)
	}
	return src.ID, nil
}
