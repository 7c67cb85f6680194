package repository

import (
	"context"
	"fmt"

	"autopartes/internal/dto"
	"autopartes/internal/infra"
	"autopartes/internal/model"

	"gorm.io/gorm"
)

// ProductoVenta is the in-transaction snapshot of a product about to be sold.
type ProductoVenta struct {
	ID     int64  `gorm:"column:id"`
	Stock  int    `gorm:"column:stock"`
	Nombre string `gorm:"column:nombre"`
}

// VentaRepository persists the sale ledger. The Tx-suffixed methods must run
// inside the caller's transaction: the read and the stock decrement have to
// share one atomic unit, or two concurrent sales of the same product race
// into a lost update.
type VentaRepository interface {
	ProductoParaVentaTx(tx *gorm.DB, codigo string) (*ProductoVenta, error)
	CrearTx(tx *gorm.DB, v *model.Venta) error
	DescontarStockTx(tx *gorm.DB, idProducto int64, cantidad int) error

	// ObtenerHistorial returns the most recent sales, newest first, joined
	// OUTER against products: a sale whose product was deleted still shows,
	// with the name replaced by a placeholder.
	ObtenerHistorial(ctx context.Context, limite int) ([]dto.VentaHistorial, error)

	// Proveedor exposes the connection provider so the service can open the
	// sale transaction on a handle it owns.
	Proveedor() *infra.DB
}

type ventaRepo struct{ db *infra.DB }

func NewVentaRepository(db *infra.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) Proveedor() *infra.DB { return r.db }

func (r *ventaRepo) ProductoParaVentaTx(tx *gorm.DB, codigo string) (*ProductoVenta, error) {
	var p ProductoVenta
	res := tx.Raw("SELECT id, stock, nombre FROM productos WHERE codigo = ?", codigo).Scan(&p)
	if res.Error != nil {
		return nil, fmt.Errorf("leer producto %q para venta: %w", codigo, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *ventaRepo) CrearTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) DescontarStockTx(tx *gorm.DB, idProducto int64, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", idProducto).
		Update("stock", gorm.Expr("stock - ?", cantidad)).Error
}

const placeholderProductoEliminado = "(producto eliminado)"

func (r *ventaRepo) ObtenerHistorial(ctx context.Context, limite int) ([]dto.VentaHistorial, error) {
	h, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}
	defer r.db.Release(h)

	var historial []dto.VentaHistorial
	err = h.WithContext(ctx).Raw(`
		SELECT v.id,
		       COALESCE(p.codigo, '') AS codigo_producto,
		       COALESCE(p.nombre, ?)  AS nombre_producto,
		       v.cantidad, v.precio_unitario, v.total, v.fecha_venta
		FROM ventas v
		LEFT JOIN productos p ON v.id_producto = p.id
		ORDER BY v.id DESC
		LIMIT ?`, placeholderProductoEliminado, limite).Scan(&historial).Error
	if err != nil {
		return nil, fmt.Errorf("obtener historial: %w", err)
	}
	return historial, nil
}
