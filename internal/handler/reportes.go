package handler

import (
	"bytes"
	"net/http"

	"pastelpos/internal/apierror"
	"pastelpos/internal/middleware"
	"pastelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ReporteVentas godoc
// @Summary      Reporte de ventas en PDF
// @Description  Genera y descarga el reporte A4. vista=today limita a las ventas de hoy; vista=all cubre todo el historial. Los empleados solo ven sus propias ventas.
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        vista query string false "today | all (default today)"
// @Success      200 {file} binary
// @Router       /v1/reportes/ventas [get]
func (h *ReportesHandler) ReporteVentas(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)
	actor := service.ActorEmpleado(usuarioID, claims.Nombre)

	vista := service.ViewMode(c.DefaultQuery("vista", string(service.VistaHoy)))

	// Buffer the PDF so a generation error can still produce a JSON error
	// response instead of a truncated download.
	var buf bytes.Buffer
	filename, err := h.svc.GenerarReporteVentas(c.Request.Context(), &buf, actor, claims.Rol, vista)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el reporte"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Recibo godoc
// @Summary      Recibo de una venta en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "ID de la venta"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/recibo [get]
func (h *ReportesHandler) Recibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}

	var buf bytes.Buffer
	filename, err := h.svc.GenerarRecibo(c.Request.Context(), &buf, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Venta no encontrada"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
