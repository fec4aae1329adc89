package app

import (
	"errors"
	"fmt"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// InitStripe wires the Stripe API key from the environment.
func InitStripe() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config for stripe")
	}
	stripe.Key = cfg.Stripe.SecretKey
}

// gatewayError wraps a payment-processor failure so handlers can map it to
// 502 without leaking processor internals to the client.
type gatewayError struct {
	op  string
	err error
}

func (e gatewayError) Error() string { return fmt.Sprintf("payment gateway %s: %v", e.op, e.err) }
func (e gatewayError) Unwrap() error { return e.err }

// IsGatewayError reports whether err came from the payment processor.
func IsGatewayError(err error) bool {
	var ge gatewayError
	return errors.As(err, &ge)
}

// createIntent is swapped out in tests so handler tests never call Stripe.
var createIntent = createStripePaymentIntent

// createStripePaymentIntent reserves a charge with Stripe and returns the
// client secret plus the server-side intent id.
func createStripePaymentIntent(amountCents int64, currency string, metadata map[string]string) (clientSecret, intentID string, err error) {
	if amountCents <= 0 {
		return "", "", fmt.Errorf("invalid amount: %d", amountCents)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", gatewayError{op: "create payment intent", err: err}
	}
	return pi.ClientSecret, pi.ID, nil
}
