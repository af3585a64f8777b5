package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. PrecioVenta is always derived server-side as
// Costo × (1 + MargenPct/100); clients never set it directly.
// Stock is the only field with a cross-entity invariant: it may never go
// negative, and only the sale processor decrements it (catalog CRUD sets it
// to explicit non-negative values).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion string
	Costo       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MargenPct   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:30"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"`
	Unidad      string          `gorm:"not null;default:'unidad'"`
	Imagen      string
	// NombreImagen keeps the original upload filename for the admin UI.
	NombreImagen string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
