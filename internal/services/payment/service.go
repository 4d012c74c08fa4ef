package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
)

var ErrChargeFailed = errors.New("payment capture failed")

// Service captures the adjusted order total at confirmation time.
type Service interface {
	Capture(ctx context.Context, amount int64, currency, reference string) (string, error)
}

type service struct {
	apiKey string
}

func NewService(apiKey string) Service {
	return &service{
		apiKey: apiKey,
	}
}

func (s *service) Capture(ctx context.Context, amount int64, currency, reference string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: invalid amount %d", ErrChargeFailed, amount)
	}

	stripe.Key = s.apiKey

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Description: stripe.String("Flight order " + reference),
	}
	params.Context = ctx
	params.AddMetadata("order_reference", reference)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrChargeFailed, err)
	}
	return intent.ID, nil
}
