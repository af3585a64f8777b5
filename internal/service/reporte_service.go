package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"pastelpos/internal/dto"
	"pastelpos/internal/infra"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"

	"github.com/google/uuid"
)

// ViewMode scopes the sales report: today's sales only, or the full history.
type ViewMode string

const (
	VistaHoy   ViewMode = "today"
	VistaTodas ViewMode = "all"
)

type ReporteService interface {
	// GenerarReporteVentas streams an A4 PDF to w. Employees see their own
	// sales; admins see everything. Returns the suggested filename.
	GenerarReporteVentas(ctx context.Context, w io.Writer, actor Actor, rol string, vista ViewMode) (string, error)

	// GenerarRecibo streams the A7 receipt for a single sale into w.
	GenerarRecibo(ctx context.Context, w io.Writer, ventaID uuid.UUID) (string, error)
}

type reporteService struct {
	ventas  repository.VentaRepository
	negocio string
}

func NewReporteService(ventas repository.VentaRepository, negocio string) ReporteService {
	return &reporteService{ventas: ventas, negocio: negocio}
}

func (s *reporteService) GenerarReporteVentas(ctx context.Context, w io.Writer, actor Actor, rol string, vista ViewMode) (string, error) {
	if vista != VistaTodas {
		vista = VistaHoy
	}

	var (
		ventas []model.Venta
		err    error
	)
	var scope *uuid.UUID
	if rol != "Admin" {
		scope = actor.UsuarioID
	}

	switch vista {
	case VistaHoy:
		ventas, err = s.ventas.ListHoy(ctx, scope)
	default:
		filter := dto.VentaFilter{Page: 1, Limit: 10000}
		if scope != nil {
			filter.Usuario = actor.Nombre
		}
		ventas, _, err = s.ventas.List(ctx, filter)
	}
	if err != nil {
		return "", err
	}

	hoy := time.Now()
	titulo := "Reporte de Ventas"
	subtitulo := "Historial completo"
	if vista == VistaHoy {
		subtitulo = "Ventas del " + hoy.Format("02/01/2006")
	}

	if err := infra.WriteReporteVentasPDF(w, s.negocio, titulo, subtitulo, actor.Nombre, ventas); err != nil {
		return "", err
	}
	return fmt.Sprintf("reporte_ventas_%s.pdf", hoy.Format("2006-01-02")), nil
}

func (s *reporteService) GenerarRecibo(ctx context.Context, w io.Writer, ventaID uuid.UUID) (string, error) {
	v, err := s.ventas.FindByID(ctx, ventaID)
	if err != nil {
		return "", fmt.Errorf("venta no encontrada: %w", err)
	}
	if err := infra.WriteReciboPDF(w, v, s.negocio); err != nil {
		return "", err
	}
	return fmt.Sprintf("recibo_%s.pdf", v.ID), nil
}
