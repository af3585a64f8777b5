package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pastelpos/internal/dto"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"
	"pastelpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVentaRepo is an in-memory VentaRepository for testing.
type stubVentaRepo struct {
	mu     sync.Mutex
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListHoy(_ context.Context, _ *uuid.UUID) ([]model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVentaRepo) VentasPorProducto(_ context.Context) ([]dto.VentasPorProducto, error) {
	return nil, nil
}

func (r *stubVentaRepo) ResumenHoy(_ context.Context) (int64, decimal.Decimal, error) {
	return int64(len(r.ventas)), decimal.Zero, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// stubProductoRepo keeps products in memory. DecrementarStockTx applies the
// same conditional check-and-decrement semantics as the SQL UPDATE, guarded
// by a mutex so concurrent sale tests behave like the database would.
type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo(ps ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
	for _, p := range ps {
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductoRepo) FindByNombre(_ context.Context, nombre string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.Nombre == nombre {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) DecrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return 0, nil
	}
	if p.Stock < cantidad {
		return 0, nil
	}
	p.Stock -= cantidad
	return 1, nil
}

func (r *stubProductoRepo) stockDe(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.productos[id].Stock
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func producto(nombre string, costo float64, stock int) *model.Producto {
	c := decimal.NewFromFloat(costo)
	return &model.Producto{
		ID:          uuid.New(),
		Nombre:      nombre,
		Costo:       c,
		MargenPct:   decimal.NewFromInt(30),
		PrecioVenta: c.Mul(decimal.NewFromFloat(1.3)).Round(2),
		Stock:       stock,
	}
}

func ventaRequest(items ...dto.ItemVentaRequest) dto.RegistrarVentaRequest {
	return dto.RegistrarVentaRequest{
		Items:   items,
		Cliente: dto.ClienteVentaRequest{Nombre: "Maria Lopez"},
	}
}

func newVentaService(vr repository.VentaRepository, pr repository.ProductoRepository) service.VentaService {
	return service.NewVentaService(vr, pr, nil, service.FuenteCosto)
}

var actorCajero = service.ActorEmpleado(uuid.New(), "Carlos Perez")

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarVentaDescuentaStockYCalculaTotal(t *testing.T) {
	muffin := producto("Muffin", 2.50, 5)
	productoRepo := newStubProductoRepo(muffin)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	resp, err := svc.RegistrarVenta(context.Background(), actorCajero,
		ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 3}))

	require.NoError(t, err)
	assert.Equal(t, 2, productoRepo.stockDe(muffin.ID))
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(7.50)), "total = 3 × 2.50, got %s", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Muffin", resp.Items[0].Nombre)
	assert.Equal(t, "Carlos Perez", resp.Usuario)
	assert.Equal(t, "Efectivo", resp.MetodoPago)
	assert.Len(t, ventaRepo.ventas, 1)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	muffin := producto("Muffin", 2.50, 2)
	productoRepo := newStubProductoRepo(muffin)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	_, err := svc.RegistrarVenta(context.Background(), actorCajero,
		ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 3}))

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Contains(t, err.Error(), "Disponible: 2")
	assert.Equal(t, 2, productoRepo.stockDe(muffin.ID), "stock must be untouched")
	assert.Empty(t, ventaRepo.ventas)
}

func TestRegistrarVentaProductoInexistente(t *testing.T) {
	productoRepo := newStubProductoRepo()
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	_, err := svc.RegistrarVenta(context.Background(), actorCajero,
		ventaRequest(dto.ItemVentaRequest{ProductoID: uuid.NewString(), Cantidad: 1}))

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
	assert.Empty(t, ventaRepo.ventas)
}

func TestRegistrarVentaCarritoMixtoNoCreaVenta(t *testing.T) {
	// Unknown product first: nothing may be decremented, no sale recorded.
	torta := producto("Torta de Chocolate", 15.00, 4)
	productoRepo := newStubProductoRepo(torta)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	_, err := svc.RegistrarVenta(context.Background(), actorCajero, ventaRequest(
		dto.ItemVentaRequest{ProductoID: uuid.NewString(), Cantidad: 1},
		dto.ItemVentaRequest{ProductoID: torta.ID.String(), Cantidad: 2},
	))

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
	assert.Equal(t, 4, productoRepo.stockDe(torta.ID))
	assert.Empty(t, ventaRepo.ventas)
}

func TestRegistrarVentaCantidadInvalida(t *testing.T) {
	muffin := producto("Muffin", 2.50, 5)
	productoRepo := newStubProductoRepo(muffin)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	_, err := svc.RegistrarVenta(context.Background(), actorCajero,
		ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 0}))

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)
	assert.Equal(t, 5, productoRepo.stockDe(muffin.ID))
	assert.Empty(t, ventaRepo.ventas)
}

func TestRegistrarVentaCarritoVacio(t *testing.T) {
	svc := newVentaService(newStubVentaRepo(), newStubProductoRepo())

	_, err := svc.RegistrarVenta(context.Background(), actorCajero, ventaRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)
}

func TestRegistrarVentaSinNombreDeCliente(t *testing.T) {
	muffin := producto("Muffin", 2.50, 5)
	svc := newVentaService(newStubVentaRepo(), newStubProductoRepo(muffin))

	req := ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 1})
	req.Cliente.Nombre = ""

	_, err := svc.RegistrarVenta(context.Background(), actorCajero, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrDatosCliente)
}

func TestRegistrarVentaConcurrenteNoSobrevende(t *testing.T) {
	// Last unit, two simultaneous buyers: exactly one wins.
	muffin := producto("Muffin", 2.50, 1)
	productoRepo := newStubProductoRepo(muffin)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RegistrarVenta(context.Background(), actorCajero,
				ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 1}))
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, service.ErrStockInsuficiente)
		}
	}
	assert.Equal(t, 1, exitos, "exactly one sale must win the last unit")
	assert.Equal(t, 0, productoRepo.stockDe(muffin.ID))
	assert.Len(t, ventaRepo.ventas, 1)
}

func TestRegistrarVentaReenvioNoEsIdempotente(t *testing.T) {
	// Submitting the same cart twice records two sales and decrements twice.
	muffin := producto("Muffin", 2.50, 5)
	productoRepo := newStubProductoRepo(muffin)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, productoRepo)

	req := ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 2})
	_, err := svc.RegistrarVenta(context.Background(), actorCajero, req)
	require.NoError(t, err)
	_, err = svc.RegistrarVenta(context.Background(), actorCajero, req)
	require.NoError(t, err)

	assert.Equal(t, 1, productoRepo.stockDe(muffin.ID))
	assert.Len(t, ventaRepo.ventas, 2)
}

func TestRegistrarVentaFuenteDePrecio(t *testing.T) {
	casos := []struct {
		nombre string
		fuente service.PrecioFuente
		total  float64
	}{
		{"costo", service.FuenteCosto, 20.00},
		{"precio_venta", service.FuenteVenta, 26.00},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			torta := producto("Torta", 10.00, 10) // precio_venta 13.00
			svc := service.NewVentaService(newStubVentaRepo(), newStubProductoRepo(torta), nil, tc.fuente)

			resp, err := svc.RegistrarVenta(context.Background(), actorCajero,
				ventaRequest(dto.ItemVentaRequest{ProductoID: torta.ID.String(), Cantidad: 2}))

			require.NoError(t, err)
			assert.True(t, resp.Total.Equal(decimal.NewFromFloat(tc.total)),
				"want %v, got %s", tc.total, resp.Total)
		})
	}
}

func TestRegistrarVentaOnlineUsaActorAnonimo(t *testing.T) {
	muffin := producto("Muffin", 2.50, 5)
	ventaRepo := newStubVentaRepo()
	svc := newVentaService(ventaRepo, newStubProductoRepo(muffin))

	resp, err := svc.RegistrarVenta(context.Background(), service.ActorOnline(),
		ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 1}))

	require.NoError(t, err)
	assert.Equal(t, model.ActorClienteOnline, resp.Usuario)
	for _, v := range ventaRepo.ventas {
		assert.Nil(t, v.UsuarioID)
	}
}

func TestRegistrarVentaMetodoPagoExplicito(t *testing.T) {
	muffin := producto("Muffin", 2.50, 5)
	svc := newVentaService(newStubVentaRepo(), newStubProductoRepo(muffin))

	req := ventaRequest(dto.ItemVentaRequest{ProductoID: muffin.ID.String(), Cantidad: 1})
	req.MetodoPago = "Tarjeta"

	resp, err := svc.RegistrarVenta(context.Background(), actorCajero, req)
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta", resp.MetodoPago)
}
