package repository

import (
	"context"
	"time"

	"pastelpos/internal/dto"
	"pastelpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	// Create must be called with a live transaction: the sale insert and the
	// stock decrements commit or roll back together.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// ListHoy returns today's sales; usuarioID nil means all users (admin view).
	ListHoy(ctx context.Context, usuarioID *uuid.UUID) ([]model.Venta, error)
	VentasPorProducto(ctx context.Context) ([]dto.VentasPorProducto, error)
	ResumenHoy(ctx context.Context) (int64, decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").Preload("Usuario").Where("id = ?", id).First(&v).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.FechaDesde != "" {
		q = q.Where("created_at >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		if hasta, err := time.Parse("2006-01-02", filter.FechaHasta); err == nil {
			q = q.Where("created_at < ?", hasta.AddDate(0, 0, 1))
		}
	}
	if filter.Usuario != "" {
		q = q.Where("usuario_nombre ILIKE ?", "%"+filter.Usuario+"%")
	}
	if filter.MetodoPago != "" {
		q = q.Where("metodo_pago = ?", filter.MetodoPago)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) ListHoy(ctx context.Context, usuarioID *uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	q := r.db.WithContext(ctx).Where("DATE(created_at) = CURRENT_DATE")
	if usuarioID != nil {
		q = q.Where("usuario_id = ?", *usuarioID)
	}
	err := q.Preload("Items").Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) VentasPorProducto(ctx context.Context) ([]dto.VentasPorProducto, error) {
	var rows []dto.VentasPorProducto
	err := r.db.WithContext(ctx).Raw(`
		SELECT vi.nombre,
		       SUM(vi.cantidad)                      AS total_cantidad,
		       SUM(vi.cantidad * vi.precio_unitario) AS revenue
		FROM venta_items vi
		GROUP BY vi.nombre
		ORDER BY total_cantidad DESC
	`).Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) ResumenHoy(ctx context.Context) (int64, decimal.Decimal, error) {
	var res struct {
		Total    int64
		Ingresos decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total, COALESCE(SUM(total), 0) AS ingresos
		FROM ventas
		WHERE DATE(created_at) = CURRENT_DATE
	`).Scan(&res).Error
	return res.Total, res.Ingresos, err
}
