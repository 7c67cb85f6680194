package handler

import (
	"net/http"
	"strconv"

	"autopartes/internal/dto"
	"autopartes/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

// Registrar maps each terminal outcome of the sale to a distinct status so
// the frontend can branch without parsing messages.
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resultado, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	switch resultado.Estado {
	case dto.VentaRegistrada:
		c.JSON(http.StatusCreated, resultado)
	case dto.ProductoNoEncontrado:
		c.JSON(http.StatusNotFound, resultado)
	case dto.CantidadInvalida:
		c.JSON(http.StatusUnprocessableEntity, resultado)
	default: // stock insuficiente, usuario invalido
		c.JSON(http.StatusConflict, resultado)
	}
}

func (h *VentasHandler) Historial(c *gin.Context) {
	limite, _ := strconv.Atoi(c.DefaultQuery("limite", "50"))
	historial, err := h.svc.ObtenerHistorial(c.Request.Context(), limite)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, historial)
}
