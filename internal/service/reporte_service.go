package service

import (
	"context"

	"autopartes/internal/dto"
	"autopartes/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReporteService backs passive dashboard widgets and the PDF report. Reads
// here never raise to the caller: a storage failure is logged and degrades
// to an empty/zeroed result, so a broken report cannot crash an otherwise
// usable screen. This tolerance is deliberate and local to reporting — the
// sale ledger never swallows errors this way.
type ReporteService interface {
	// VentasPorFecha returns the detailed sale rows whose timestamp's DATE
	// component falls within [inicio, fin], both inclusive (YYYY-MM-DD).
	// The product join is INNER: sales of deleted products are excluded
	// here, unlike the history. Both behaviors are load-bearing.
	VentasPorFecha(ctx context.Context, inicio, fin string) []dto.VentaDetalle

	// KPIs computes the aggregate indicators; no matching rows means zero
	// values, never an error.
	KPIs(ctx context.Context, inicio, fin string) dto.ReporteKPIs

	// GenerarPDF renders the ranged report to a PDF file and returns its
	// path. Unlike the queries, rendering failures are real errors.
	GenerarPDF(ctx context.Context, inicio, fin string) (string, error)
}

type reporteService struct {
	db          *infra.DB
	dirReportes string
}

func NewReporteService(db *infra.DB, dirReportes string) ReporteService {
	return &reporteService{db: db, dirReportes: dirReportes}
}

func (s *reporteService) VentasPorFecha(ctx context.Context, inicio, fin string) []dto.VentaDetalle {
	h, err := s.db.Acquire()
	if err != nil {
		log.Error().Err(err).Msg("reporte detallado: sin conexion")
		return []dto.VentaDetalle{}
	}
	defer s.db.Release(h)

	var detalles []dto.VentaDetalle
	err = h.WithContext(ctx).Raw(`
		SELECT v.id,
		       v.fecha_venta,
		       p.codigo AS codigo_producto,
		       p.nombre AS nombre_producto,
		       v.cantidad,
		       v.precio_unitario,
		       v.total,
		       COALESCE(u.nombre, '') AS vendedor
		FROM ventas v
		INNER JOIN productos p ON v.id_producto = p.id
		LEFT JOIN usuarios u ON v.vendido_por = u.id
		WHERE date(v.fecha_venta) BETWEEN date(?) AND date(?)
		ORDER BY v.fecha_venta DESC, v.id DESC`, inicio, fin).Scan(&detalles).Error
	if err != nil {
		log.Error().Err(err).Str("inicio", inicio).Str("fin", fin).Msg("reporte detallado fallido")
		return []dto.VentaDetalle{}
	}
	if detalles == nil {
		detalles = []dto.VentaDetalle{}
	}
	return detalles
}

func (s *reporteService) KPIs(ctx context.Context, inicio, fin string) dto.ReporteKPIs {
	vacio := dto.ReporteKPIs{Ingresos: decimal.Zero}

	h, err := s.db.Acquire()
	if err != nil {
		log.Error().Err(err).Msg("kpis: sin conexion")
		return vacio
	}
	defer s.db.Release(h)

	var kpis dto.ReporteKPIs
	err = h.WithContext(ctx).Raw(`
		SELECT COUNT(*)                 AS transacciones,
		       COALESCE(SUM(total), 0)  AS ingresos,
		       COALESCE(SUM(cantidad), 0) AS productos
		FROM ventas
		WHERE date(fecha_venta) BETWEEN date(?) AND date(?)`, inicio, fin).Scan(&kpis).Error
	if err != nil {
		log.Error().Err(err).Str("inicio", inicio).Str("fin", fin).Msg("kpis fallidos")
		return vacio
	}
	return kpis
}

func (s *reporteService) GenerarPDF(ctx context.Context, inicio, fin string) (string, error) {
	detalles := s.VentasPorFecha(ctx, inicio, fin)
	kpis := s.KPIs(ctx, inicio, fin)
	return infra.GenerarReporteVentasPDF(detalles, kpis, inicio, fin, s.dirReportes)
}
