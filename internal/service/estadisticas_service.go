package service

import (
	"context"

	"pastelpos/internal/dto"
	"pastelpos/internal/repository"
)

type EstadisticasService interface {
	VentasPorProducto(ctx context.Context) ([]dto.VentasPorProducto, error)
	ResumenHoy(ctx context.Context) (*dto.ResumenDia, error)
}

type estadisticasService struct {
	ventas repository.VentaRepository
}

func NewEstadisticasService(ventas repository.VentaRepository) EstadisticasService {
	return &estadisticasService{ventas: ventas}
}

func (s *estadisticasService) VentasPorProducto(ctx context.Context) ([]dto.VentasPorProducto, error) {
	rows, err := s.ventas.VentasPorProducto(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.VentasPorProducto{}
	}
	return rows, nil
}

func (s *estadisticasService) ResumenHoy(ctx context.Context) (*dto.ResumenDia, error) {
	total, ingresos, err := s.ventas.ResumenHoy(ctx)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventas.ListHoy(ctx, nil)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		resp[i] = *ventaToResponse(&ventas[i])
	}
	return &dto.ResumenDia{
		TotalVentas:   total,
		TotalIngresos: ingresos,
		Ventas:        resp,
	}, nil
}
