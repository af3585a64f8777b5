package handler

import (
	"errors"
	"net/http"

	"pastelpos/internal/apierror"
	"pastelpos/internal/dto"
	"pastelpos/internal/middleware"
	"pastelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

func ventaErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrStockInsuficiente),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrDatosCliente):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.Error(err) //nolint:errcheck
	}
}

// RegistrarVenta godoc
// @Summary      Registrar una venta de mostrador
// @Description  Crea una venta ACID: valida el carrito, descuenta stock y registra la venta en una sola transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarVenta(c.Request.Context(), service.ActorEmpleado(usuarioID, claims.Nombre), req)
	if err != nil {
		ventaErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarVentaOnline is the store-front checkout. No staff token: the sale
// is attributed to the anonymous online actor and goes through the exact same
// transactional path as a counter sale.
//
// @Summary      Checkout de la tienda online
// @Tags         tienda
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVentaRequest true "Carrito"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/tienda/checkout [post]
func (h *VentasHandler) RegistrarVentaOnline(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), service.ActorOnline(), req)
	if err != nil {
		ventaErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Lista paginada filtrada por rango de fechas, vendedor y método de pago.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_desde query string false "YYYY-MM-DD"
// @Param        fecha_hasta query string false "YYYY-MM-DD"
// @Param        usuario     query string false "Nombre parcial del vendedor"
// @Param        metodo_pago query string false "Efectivo | Tarjeta | Transferencia"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.VentaListResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), filter)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasHoy returns today's sales for the authenticated seller.
func (h *VentasHandler) VentasHoy(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Token mal formado"))
		return
	}
	resp, err := h.svc.VentasHoy(c.Request.Context(), usuarioID)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Venta no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
