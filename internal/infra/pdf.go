package infra

// pdf.go — sales report rendering with go-pdf/fpdf. The renderer consumes
// the ordered detail rows and the KPI mapping verbatim; it runs no queries.

import (
	"fmt"
	"os"
	"path/filepath"

	"autopartes/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerarReporteVentasPDF writes the ranged sales report (KPI summary plus
// the line-item detail table) under dirSalida and returns the file path.
func GenerarReporteVentasPDF(detalles []dto.VentaDetalle, kpis dto.ReporteKPIs, inicio, fin, dirSalida string) (string, error) {
	if err := os.MkdirAll(dirSalida, 0o755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio de salida: %w", err)
	}

	nombre := fmt.Sprintf("reporte_ventas_%s_%s.pdf", inicio, fin)
	ruta := filepath.Join(dirSalida, nombre)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte de Ventas", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Periodo: %s a %s", inicio, fin), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── KPI summary ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	kpiW := contentW / 3
	pdf.CellFormat(kpiW, 6, fmt.Sprintf("Transacciones: %d", kpis.Transacciones), "", 0, "L", false, 0, "")
	pdf.CellFormat(kpiW, 6, "Ingresos: $"+kpis.Ingresos.StringFixed(2), "", 0, "C", false, 0, "")
	pdf.CellFormat(kpiW, 6, fmt.Sprintf("Unidades: %d", kpis.Productos), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Detail table ─────────────────────────────────────────────────────────
	colFecha := contentW * 0.17
	colCodigo := contentW * 0.14
	colNombre := contentW * 0.28
	colCant := contentW * 0.08
	colPrecio := contentW * 0.12
	colTotal := contentW * 0.12
	colVend := contentW * 0.09

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colFecha, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCodigo, 6, "Codigo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colNombre, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCant, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrecio, 6, "P.Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colVend, 6, "Vendedor", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, d := range detalles {
		nombreProd := d.NombreProducto
		if r := []rune(nombreProd); len(r) > 30 {
			nombreProd = string(r[:27]) + "..."
		}
		pdf.CellFormat(colFecha, 5, d.FechaVenta.Format("02/01/2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colCodigo, 5, d.CodigoProducto, "", 0, "L", false, 0, "")
		pdf.CellFormat(colNombre, 5, nombreProd, "", 0, "L", false, 0, "")
		pdf.CellFormat(colCant, 5, fmt.Sprintf("%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(colPrecio, 5, d.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 5, d.Total.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colVend, 5, d.Vendedor, "", 1, "L", false, 0, "")
	}

	if len(detalles) == 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "Sin ventas en el periodo seleccionado.", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(ruta); err != nil {
		return "", fmt.Errorf("pdf: escribir archivo: %w", err)
	}
	return ruta, nil
}
