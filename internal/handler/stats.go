package handler

import (
	"net/http"

	"pastelpos/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc service.EstadisticasService }

func NewStatsHandler(svc service.EstadisticasService) *StatsHandler { return &StatsHandler{svc: svc} }

// VentasPorProducto godoc
// @Summary      Ventas agregadas por producto
// @Description  Unidades totales e ingresos por nombre de producto, sobre todo el historial.
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.VentasPorProducto
// @Router       /v1/estadisticas/productos [get]
func (h *StatsHandler) VentasPorProducto(c *gin.Context) {
	resp, err := h.svc.VentasPorProducto(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenHoy godoc
// @Summary      Resumen del día
// @Description  Total de ventas, ingresos y detalle de las ventas de hoy para el dashboard.
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResumenDia
// @Router       /v1/estadisticas/hoy [get]
func (h *StatsHandler) ResumenHoy(c *gin.Context) {
	resp, err := h.svc.ResumenHoy(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}
