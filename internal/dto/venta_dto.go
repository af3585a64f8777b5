package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

// ClienteVentaRequest is the customer snapshot submitted with a sale.
// Only the name is mandatory.
type ClienteVentaRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=1"`
	CI        *string `json:"ci"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type RegistrarVentaRequest struct {
	Items      []ItemVentaRequest  `json:"items"       validate:"required,min=1,dive"`
	MetodoPago string              `json:"metodo_pago" validate:"omitempty,oneof=Efectivo Tarjeta Transferencia"`
	Cliente    ClienteVentaRequest `json:"cliente"     validate:"required"`
	// ClienteEmail: optional — when present, the worker pool mails the
	// receipt PDF after the sale commits.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	FechaDesde string `form:"fecha_desde"` // YYYY-MM-DD
	FechaHasta string `form:"fecha_hasta"` // YYYY-MM-DD
	Usuario    string `form:"usuario"`     // partial match on the seller name
	MetodoPago string `form:"metodo_pago"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type ClienteVentaResponse struct {
	Nombre    string  `json:"nombre"`
	CI        *string `json:"ci,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}

type VentaResponse struct {
	ID         string               `json:"id"`
	Items      []ItemVentaResponse  `json:"items"`
	Total      decimal.Decimal      `json:"total"`
	MetodoPago string               `json:"metodo_pago"`
	Cliente    ClienteVentaResponse `json:"cliente"`
	Usuario    string               `json:"usuario"`
	CreatedAt  string               `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
