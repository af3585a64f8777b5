package service

import (
	"context"
	"fmt"

	"pastelpos/internal/dto"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"
	"pastelpos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecioFuente selects which product field becomes the unit-price snapshot
// on sale items. FuenteCosto reproduces the historical behavior (line items
// record the production cost, useful for margin analysis); FuenteVenta
// records the marked-up customer price.
type PrecioFuente string

const (
	FuenteCosto PrecioFuente = "costo"
	FuenteVenta PrecioFuente = "precio_venta"
)

// Actor identifies who initiated a sale: an authenticated employee, or the
// anonymous online-store marker.
type Actor struct {
	UsuarioID *uuid.UUID
	Nombre    string
}

func ActorEmpleado(id uuid.UUID, nombre string) Actor {
	return Actor{UsuarioID: &id, Nombre: nombre}
}

func ActorOnline() Actor {
	return Actor{Nombre: model.ActorClienteOnline}
}

type VentaService interface {
	// RegistrarVenta converts a submitted cart into a committed, immutable
	// Venta, decrementing stock atomically. All-or-nothing: any validation
	// failure aborts with no stock mutation.
	RegistrarVenta(ctx context.Context, actor Actor, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	VentasHoy(ctx context.Context, usuarioID uuid.UUID) ([]dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	dispatcher   *worker.Dispatcher
	fuente       PrecioFuente
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
	fuente PrecioFuente,
) VentaService {
	if fuente != FuenteVenta {
		fuente = FuenteCosto
	}
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		dispatcher:   dispatcher,
		fuente:       fuente,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Single ACID transaction for the whole cart:
//   1. For each item in caller order: product must exist, cantidad must be a
//      positive integer, stock must cover the request.
//   2. Conditional decrement (stock >= cantidad guard) per item — this is the
//      authoritative check under concurrency; two sales racing over the same
//      product can never both consume the same units.
//   3. Insert the Venta with its item snapshots and server timestamp.
//   4. COMMIT — any failure rolls back every decrement.
//   5. (async) dispatch the receipt email job if the customer left an address.

func (s *ventaService) RegistrarVenta(ctx context.Context, actor Actor, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: debe incluir al menos un producto", ErrCantidadInvalida)
	}
	if req.Cliente.Nombre == "" {
		return nil, ErrDatosCliente
	}

	metodoPago := req.MetodoPago
	if metodoPago == "" {
		metodoPago = "Efectivo"
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]model.VentaItem, 0, len(req.Items))

		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductoID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
			}
			p, err := s.productoRepo.FindByIDTx(tx, pid)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
			}
			if item.Cantidad <= 0 {
				return fmt.Errorf("%w: %s", ErrCantidadInvalida, p.Nombre)
			}
			if p.Stock < item.Cantidad {
				return fmt.Errorf("%w para %s. Disponible: %d", ErrStockInsuficiente, p.Nombre, p.Stock)
			}

			// The read above gives a friendly error message; the conditional
			// UPDATE below is what actually guarantees no overselling when
			// another sale commits between our read and our write.
			rows, err := s.productoRepo.DecrementarStockTx(tx, pid, item.Cantidad)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w para %s. Disponible: %d", ErrStockInsuficiente, p.Nombre, p.Stock)
			}

			precio := s.precioUnitario(p)
			subtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
			total = total.Add(subtotal)

			items = append(items, model.VentaItem{
				Nombre:         p.Nombre,
				Cantidad:       item.Cantidad,
				PrecioUnitario: precio,
				Subtotal:       subtotal,
			})
		}

		venta = model.Venta{
			Total:            total,
			MetodoPago:       metodoPago,
			ClienteNombre:    req.Cliente.Nombre,
			ClienteCI:        req.Cliente.CI,
			ClienteTelefono:  req.Cliente.Telefono,
			ClienteDireccion: req.Cliente.Direccion,
			UsuarioID:        actor.UsuarioID,
			UsuarioNombre:    actor.Nombre,
			Items:            items,
		}
		return s.repo.Create(ctx, tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt email — best-effort, fire & forget.
	if s.dispatcher != nil && req.ClienteEmail != nil && *req.ClienteEmail != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, map[string]interface{}{
			"venta_id":      venta.ID.String(),
			"cliente_email": *req.ClienteEmail,
		})
	}

	return ventaToResponse(&venta), nil
}

// precioUnitario applies the configured price-source policy in exactly one place.
func (s *ventaService) precioUnitario(p *model.Producto) decimal.Decimal {
	if s.fuente == FuenteVenta {
		return p.PrecioVenta
	}
	return p.Costo
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venta no encontrada: %w", err)
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) VentasHoy(ctx context.Context, usuarioID uuid.UUID) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.ListHoy(ctx, &usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:         v.ID.String(),
		Items:      items,
		Total:      v.Total,
		MetodoPago: v.MetodoPago,
		Cliente: dto.ClienteVentaResponse{
			Nombre:    v.ClienteNombre,
			CI:        v.ClienteCI,
			Telefono:  v.ClienteTelefono,
			Direccion: v.ClienteDireccion,
		},
		Usuario:   v.UsuarioNombre,
		CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
