package service_test

import (
	"context"
	"testing"

	"pastelpos/internal/dto"
	"pastelpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearProductoConMargenPorDefecto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo, nil)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Torta de Chocolate",
		Costo:  decimal.NewFromInt(100),
		Stock:  10,
	})

	require.NoError(t, err)
	assert.True(t, resp.MargenPct.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.PrecioVenta.Equal(decimal.NewFromInt(130)),
		"precio_venta = 100 × 1.30, got %s", resp.PrecioVenta)
}

func TestCrearProductoConMargenExplicito(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo, nil)

	margen := decimal.NewFromInt(50)
	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:    "Cheesecake",
		Costo:     decimal.NewFromFloat(8.40),
		MargenPct: &margen,
		Stock:     3,
	})

	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(decimal.NewFromFloat(12.60)),
		"precio_venta = 8.40 × 1.50, got %s", resp.PrecioVenta)
}

func TestActualizarProductoRecalculaPrecioVenta(t *testing.T) {
	torta := producto("Torta", 10.00, 5)
	repo := newStubProductoRepo(torta)
	svc := service.NewProductoService(repo, nil)

	nuevoCosto := decimal.NewFromInt(20)
	resp, err := svc.Actualizar(context.Background(), torta.ID, dto.ActualizarProductoRequest{
		Costo: &nuevoCosto,
	})

	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(decimal.NewFromInt(26)),
		"precio_venta recomputed from new costo, got %s", resp.PrecioVenta)
}

func TestActualizarProductoInexistente(t *testing.T) {
	svc := service.NewProductoService(newStubProductoRepo(), nil)

	nombre := "Nuevo"
	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.ActualizarProductoRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestEliminarProducto(t *testing.T) {
	torta := producto("Torta", 10.00, 5)
	repo := newStubProductoRepo(torta)
	svc := service.NewProductoService(repo, nil)

	require.NoError(t, svc.Eliminar(context.Background(), torta.ID))
	assert.ErrorIs(t, svc.Eliminar(context.Background(), torta.ID), service.ErrProductoNoEncontrado)
}
