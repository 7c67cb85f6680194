package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VentaDetalle is one row of the date-ranged sales report. Unlike the
// history, the product join here is an inner join: sales whose product was
// deleted are excluded from the report.
type VentaDetalle struct {
	ID             int64           `json:"id"`
	FechaVenta     time.Time       `json:"fecha_venta"`
	CodigoProducto string          `json:"codigo_producto"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
	Vendedor       string          `json:"vendedor"`
}

// ReporteKPIs are the aggregate indicators for a date range. A range with no
// sales yields zero values, never an absent result.
type ReporteKPIs struct {
	Transacciones int64           `json:"transacciones"`
	Ingresos      decimal.Decimal `json:"ingresos"`
	Productos     int64           `json:"productos"`
}
