package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoVenta is the terminal outcome of one RegistrarVenta invocation.
// Business-rule failures are values, not errors: callers must branch.
type EstadoVenta string

const (
	VentaRegistrada      EstadoVenta = "registrada"
	CantidadInvalida     EstadoVenta = "cantidad_invalida"
	ProductoNoEncontrado EstadoVenta = "producto_no_encontrado"
	StockInsuficiente    EstadoVenta = "stock_insuficiente"
	UsuarioInvalido      EstadoVenta = "usuario_invalido"
)

type RegistrarVentaRequest struct {
	CodigoProducto string `json:"codigo_producto" validate:"required"`
	Cantidad       int    `json:"cantidad"        validate:"required"`
	// PrecioUnitario is the price snapshot the caller captured at selection
	// time; the ledger does not re-read the stored price.
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	VendidoPor     int64           `json:"vendido_por"     validate:"required"`
}

// ResultadoVenta carries the outcome plus, on success, the computed total and
// the post-decrement stock so the caller can refresh its view without a
// second read.
type ResultadoVenta struct {
	Estado     EstadoVenta     `json:"estado"`
	Mensaje    string          `json:"mensaje"`
	VentaID    int64           `json:"venta_id,omitempty"`
	Total      decimal.Decimal `json:"total"`
	NuevoStock int             `json:"nuevo_stock"`
}

// OK reports whether the sale committed.
func (r *ResultadoVenta) OK() bool { return r.Estado == VentaRegistrada }

// VentaHistorial is one row of the recent-sales history. The product join is
// an outer join: sales whose product was deleted still appear, with
// NombreProducto set to an explicit placeholder.
type VentaHistorial struct {
	ID             int64           `json:"id"`
	CodigoProducto string          `json:"codigo_producto"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
	FechaVenta     time.Time       `json:"fecha_venta"`
}
