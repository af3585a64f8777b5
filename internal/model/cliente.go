package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is an online-store account. Sales never reference it by foreign
// key — the processor embeds a customer snapshot in the Venta instead.
type Cliente struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Apellidos    string    `gorm:"not null"`
	Correo       string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Direccion    string
	Celular      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
