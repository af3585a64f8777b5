package service

import (
	"context"
	"encoding/json"
	"time"

	"pastelpos/internal/dto"
	"pastelpos/internal/model"
	"pastelpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	catalogoCacheKey = "cache:catalogo"
	catalogoCacheTTL = 60 * time.Second
)

var margenDefault = decimal.NewFromInt(30)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	margen := margenDefault
	if req.MargenPct != nil {
		margen = *req.MargenPct
	}

	p := &model.Producto{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Costo:        req.Costo,
		MargenPct:    margen,
		PrecioVenta:  precioVenta(req.Costo, margen),
		Stock:        req.Stock,
		Unidad:       req.Unidad,
		Imagen:       req.Imagen,
		NombreImagen: req.NombreImagen,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCatalogo(ctx)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, catalogoCacheKey).Result(); err == nil {
			var resp []dto.ProductoResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, catalogoCacheKey, payload, catalogoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el catálogo")
			}
		}
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.Costo != nil {
		p.Costo = *req.Costo
	}
	if req.MargenPct != nil {
		p.MargenPct = *req.MargenPct
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Unidad != nil {
		p.Unidad = *req.Unidad
	}
	if req.Imagen != nil {
		p.Imagen = *req.Imagen
	}
	if req.NombreImagen != nil {
		p.NombreImagen = *req.NombreImagen
	}

	// PrecioVenta is derived, never accepted from the client.
	p.PrecioVenta = precioVenta(p.Costo, p.MargenPct)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCatalogo(ctx)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCatalogo(ctx)
	return nil
}

func (s *productoService) invalidarCatalogo(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogoCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el caché del catálogo")
	}
}

// precioVenta computes costo * (1 + margen/100) rounded to 2 decimals.
func precioVenta(costo, margenPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(margenPct.Div(decimal.NewFromInt(100)))
	return costo.Mul(factor).Round(2)
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:           p.ID.String(),
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Costo:        p.Costo,
		PrecioVenta:  p.PrecioVenta,
		MargenPct:    p.MargenPct,
		Stock:        p.Stock,
		Unidad:       p.Unidad,
		Imagen:       p.Imagen,
		NombreImagen: p.NombreImagen,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
