package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoginRequest accepts the canonical field names only. The legacy client
// sent duplicate spellings for the same concept (correo/email,
// contraseña/password); those are normalized by the frontend now and the
// API rejects anything else at the boundary.
type LoginRequest struct {
	Correo       string `json:"correo"   validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	CaptchaID    string `json:"captcha_id"`
	CaptchaValue string `json:"captcha_value"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CaptchaResponse struct {
	CaptchaID string `json:"captcha_id"`
	// Imagen is a base64 data URI the frontend renders directly.
	Imagen string `json:"imagen"`
}

// ─── Staff management ────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Nombre    string           `json:"nombre"    validate:"required"`
	Apellidos string           `json:"apellidos" validate:"required"`
	Correo    string           `json:"correo"    validate:"required,email"`
	Password  string           `json:"password"  validate:"required"`
	Edad      int              `json:"edad"      validate:"required,min=16,max=100"`
	Rol       string           `json:"rol"       validate:"omitempty,oneof=Admin Employee"`
	Horario   string           `json:"horario"`
	Contacto  string           `json:"contacto"`
	Sueldo    *decimal.Decimal `json:"sueldo"    validate:"omitempty,gt=0"`
}

type ActualizarUsuarioRequest struct {
	Nombre     *string          `json:"nombre"`
	Apellidos  *string          `json:"apellidos"`
	Correo     *string          `json:"correo"     validate:"omitempty,email"`
	Password   *string          `json:"password"`
	Edad       *int             `json:"edad"       validate:"omitempty,min=16,max=100"`
	Rol        *string          `json:"rol"        validate:"omitempty,oneof=Admin Employee"`
	Horario    *string          `json:"horario"`
	Contacto   *string          `json:"contacto"`
	Sueldo     *decimal.Decimal `json:"sueldo"     validate:"omitempty,gt=0"`
	UltimoPago *time.Time       `json:"ultimo_pago"`
}

type UsuarioResponse struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Apellidos  string          `json:"apellidos"`
	Correo     string          `json:"correo"`
	Edad       int             `json:"edad"`
	Rol        string          `json:"rol"`
	Horario    string          `json:"horario"`
	Contacto   string          `json:"contacto,omitempty"`
	Sueldo     decimal.Decimal `json:"sueldo"`
	UltimoPago *time.Time      `json:"ultimo_pago,omitempty"`
	Activo     bool            `json:"activo"`
}

// PasswordStrength reports the scoring of a candidate password so the
// frontend can show live feedback while typing.
type PasswordStrength struct {
	Strength string `json:"strength"` // debil | normal | segura
	Score    int    `json:"score"`
	Message  string `json:"message"`
}
