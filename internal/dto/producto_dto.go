package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required,min=1"`
	Descripcion string          `json:"descripcion"`
	Costo       decimal.Decimal `json:"costo"       validate:"required,gt=0"`
	// MargenPct defaults to 30 when omitted; PrecioVenta is always computed
	// server-side from Costo and MargenPct.
	MargenPct    *decimal.Decimal `json:"margen_pct"    validate:"omitempty,min=0"`
	Stock        int              `json:"stock"         validate:"min=0"`
	Unidad       string           `json:"unidad"`
	Imagen       string           `json:"imagen"`
	NombreImagen string           `json:"nombre_imagen"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=1"`
	Descripcion  *string          `json:"descripcion"`
	Costo        *decimal.Decimal `json:"costo"         validate:"omitempty,gt=0"`
	MargenPct    *decimal.Decimal `json:"margen_pct"    validate:"omitempty,min=0"`
	Stock        *int             `json:"stock"         validate:"omitempty,min=0"`
	Unidad       *string          `json:"unidad"`
	Imagen       *string          `json:"imagen"`
	NombreImagen *string          `json:"nombre_imagen"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	Costo        decimal.Decimal `json:"costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	MargenPct    decimal.Decimal `json:"margen_pct"`
	Stock        int             `json:"stock"`
	Unidad       string          `json:"unidad"`
	Imagen       string          `json:"imagen,omitempty"`
	NombreImagen string          `json:"nombre_imagen,omitempty"`
	CreatedAt    string          `json:"created_at"`
}
