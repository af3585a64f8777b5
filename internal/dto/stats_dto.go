package dto

import "github.com/shopspring/decimal"

// VentasPorProducto is one row of the sales-by-product aggregation:
// total units and revenue per product name, across all recorded sales.
type VentasPorProducto struct {
	Nombre        string          `json:"nombre"`
	TotalCantidad int64           `json:"total_cantidad"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// ResumenDia summarizes today's sales for the dashboard.
type ResumenDia struct {
	TotalVentas   int64           `json:"total_ventas"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	Ventas        []VentaResponse `json:"ventas"`
}
