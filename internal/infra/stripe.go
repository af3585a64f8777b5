package infra

// stripe.go — card payments through Stripe PaymentIntents.
//
// The client is nil-safe: when no secret key is configured (local dev,
// cash-only deployments) every call fails with ErrPagosDeshabilitados and
// the handler degrades to 503. All network calls go through the circuit
// breaker so a Stripe outage fast-fails instead of piling up requests.

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrPagosDeshabilitados is returned when no Stripe key is configured.
var ErrPagosDeshabilitados = errors.New("pagos con tarjeta no disponibles")

// PaymentIntent is the subset of Stripe's intent the API exposes.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       decimal.Decimal
}

type StripeClient struct {
	api *client.API
	cb  *CircuitBreaker
}

// NewStripeClient returns a client, or a disabled one when secretKey is empty.
func NewStripeClient(secretKey string, cb *CircuitBreaker) *StripeClient {
	sc := &StripeClient{cb: cb}
	if secretKey != "" {
		sc.api = client.New(secretKey, nil)
	}
	return sc
}

// Enabled reports whether a Stripe key was configured.
func (s *StripeClient) Enabled() bool { return s.api != nil }

// CrearIntent creates a PaymentIntent. amount is in currency units; Stripe
// wants cents.
func (s *StripeClient) CrearIntent(amount decimal.Decimal, currency string) (*PaymentIntent, error) {
	if s.api == nil {
		return nil, ErrPagosDeshabilitados
	}
	if currency == "" {
		currency = "usd"
	}

	var pi *stripe.PaymentIntent
	err := s.cb.Execute(func() error {
		params := &stripe.PaymentIntentParams{
			Amount:             stripe.Int64(amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
			Currency:           stripe.String(currency),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		}
		var err error
		pi, err = s.api.PaymentIntents.New(params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       decimal.NewFromInt(pi.Amount).Div(decimal.NewFromInt(100)),
	}, nil
}

// ObtenerIntent retrieves an existing PaymentIntent by id.
func (s *StripeClient) ObtenerIntent(id string) (*PaymentIntent, error) {
	if s.api == nil {
		return nil, ErrPagosDeshabilitados
	}

	var pi *stripe.PaymentIntent
	err := s.cb.Execute(func() error {
		var err error
		pi, err = s.api.PaymentIntents.Get(id, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       decimal.NewFromInt(pi.Amount).Div(decimal.NewFromInt(100)),
	}, nil
}
