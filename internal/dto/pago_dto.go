package dto

import "github.com/shopspring/decimal"

type CrearPaymentIntentRequest struct {
	Amount   decimal.Decimal `json:"amount"   validate:"required"`
	Currency string          `json:"currency" validate:"omitempty,len=3"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type ConfirmarPagoRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

type ConfirmarPagoResponse struct {
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}
