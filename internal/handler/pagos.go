package handler

import (
	"errors"
	"net/http"

	"pastelpos/internal/apierror"
	"pastelpos/internal/dto"
	"pastelpos/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PagosHandler fronts the card-payment provider. When no API key is
// configured the endpoints answer 503 and the store falls back to
// cash-on-delivery.
type PagosHandler struct{ stripe *infra.StripeClient }

func NewPagosHandler(stripe *infra.StripeClient) *PagosHandler {
	return &PagosHandler{stripe: stripe}
}

// CrearIntent godoc
// @Summary      Crear intento de pago con tarjeta
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearPaymentIntentRequest true "Monto"
// @Success      200  {object} dto.PaymentIntentResponse
// @Failure      503  {object} apierror.APIError
// @Router       /v1/pagos/intent [post]
func (h *PagosHandler) CrearIntent(c *gin.Context) {
	if h.stripe == nil || !h.stripe.Enabled() {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Pagos con tarjeta no disponibles"))
		return
	}
	var req dto.CrearPaymentIntentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, apierror.New("El monto debe ser mayor a cero"))
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	intent, err := h.stripe.CrearIntent(req.Amount, currency)
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("Proveedor de pagos temporalmente no disponible"))
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, dto.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

// ConfirmarPago godoc
// @Summary      Consultar estado de un pago
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body body dto.ConfirmarPagoRequest true "Payment intent"
// @Success      200  {object} dto.ConfirmarPagoResponse
// @Failure      503  {object} apierror.APIError
// @Router       /v1/pagos/confirmar [post]
func (h *PagosHandler) ConfirmarPago(c *gin.Context) {
	if h.stripe == nil || !h.stripe.Enabled() {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Pagos con tarjeta no disponibles"))
		return
	}
	var req dto.ConfirmarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	intent, err := h.stripe.ObtenerIntent(req.PaymentIntentID)
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("Proveedor de pagos temporalmente no disponible"))
			return
		}
		c.JSON(http.StatusNotFound, apierror.New("Pago no encontrado"))
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmarPagoResponse{
		Status: intent.Status,
		Amount: intent.Amount,
	})
}
