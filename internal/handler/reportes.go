package handler

import (
	"net/http"
	"time"

	"autopartes/internal/apierror"
	"autopartes/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// rangoFechas reads inicio/fin (YYYY-MM-DD) from the query, defaulting both
// to today.
func rangoFechas(c *gin.Context) (string, string, bool) {
	hoy := time.Now().Format("2006-01-02")
	inicio := c.DefaultQuery("inicio", hoy)
	fin := c.DefaultQuery("fin", hoy)
	for _, fecha := range []string{inicio, fin} {
		if _, err := time.Parse("2006-01-02", fecha); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida, formato esperado YYYY-MM-DD"))
			return "", "", false
		}
	}
	return inicio, fin, true
}

func (h *ReportesHandler) Ventas(c *gin.Context) {
	inicio, fin, ok := rangoFechas(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.VentasPorFecha(c.Request.Context(), inicio, fin))
}

func (h *ReportesHandler) KPIs(c *gin.Context) {
	inicio, fin, ok := rangoFechas(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.KPIs(c.Request.Context(), inicio, fin))
}

func (h *ReportesHandler) PDF(c *gin.Context) {
	inicio, fin, ok := rangoFechas(c)
	if !ok {
		return
	}
	ruta, err := h.svc.GenerarPDF(c.Request.Context(), inicio, fin)
	if err != nil {
		c.Error(err)
		return
	}
	c.FileAttachment(ruta, "reporte_ventas.pdf")
}
