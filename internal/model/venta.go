package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta is an immutable record of one completed transaction. PrecioUnitario
// is the price snapshot captured by the caller at selection time, not a live
// reference to the product's current price; Total is persisted as
// cantidad * precio_unitario and never recomputed on read.
//
// IDProducto is set at creation and nulled by the store if the product is
// later deleted — the sale itself is never removed.
type Venta struct {
	ID             int64           `gorm:"column:id;primaryKey"`
	IDProducto     *int64          `gorm:"column:id_producto"`
	Cantidad       int             `gorm:"column:cantidad;not null"`
	PrecioUnitario decimal.Decimal `gorm:"column:precio_unitario;type:decimal(10,2)"`
	Total          decimal.Decimal `gorm:"column:total;type:decimal(10,2)"`
	VendidoPor     int64           `gorm:"column:vendido_por;not null"`
	FechaVenta     time.Time       `gorm:"column:fecha_venta;not null"`
}

func (Venta) TableName() string { return "ventas" }
