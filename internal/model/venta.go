package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActorClienteOnline is the anonymous actor marker recorded on sales that
// come in through the online store without an authenticated employee.
const ActorClienteOnline = "Cliente Online"

// Venta is an immutable record of a completed transaction. There is no
// update or delete path: once committed, a sale is only ever read by the
// history, statistics and report views.
type Venta struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null;default:'Efectivo'"`

	// Customer snapshot — embedded, not a foreign key. The sale must stay
	// readable as-sold even if the customer record changes later.
	ClienteNombre    string `gorm:"not null"`
	ClienteCI        *string
	ClienteTelefono  *string
	ClienteDireccion *string

	// UsuarioID is nil for online-store sales; UsuarioNombre then carries
	// the ActorClienteOnline marker.
	UsuarioID     *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioNombre string     `gorm:"not null"`

	Items     []VentaItem `gorm:"foreignKey:VentaID"`
	CreatedAt time.Time   `gorm:"index"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// VentaItem snapshots name and unit price at the time of processing so the
// sale stays stable under later catalog edits.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
