package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Usuario stores employees and administrators.
// Rol: "Admin" | "Employee"
// One table serves both authentication and staff management — the payroll
// fields (Sueldo, UltimoPago, Horario) are only edited through the staff
// endpoints.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Apellidos    string    `gorm:"not null"`
	Correo       string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Edad         int       `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null;default:'Employee'"`
	Horario      string    `gorm:"not null;default:'9:00-18:00'"`
	Contacto     string
	Sueldo       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:2500"`
	UltimoPago   *time.Time
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
