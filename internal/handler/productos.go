package handler

import (
	"errors"
	"net/http"

	"autopartes/internal/apierror"
	"autopartes/internal/dto"
	"autopartes/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	resumen, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resumen)
}

func (h *ProductosHandler) ObtenerPorCodigo(c *gin.Context) {
	p, err := h.svc.ObtenerPorCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		c.Error(err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apierror.ErrValidacion):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, apierror.ErrCodigoDuplicado):
			c.JSON(http.StatusConflict, apierror.New("El codigo de producto ya existe"))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ok, err := h.svc.Actualizar(c.Request.Context(), c.Param("codigo"), req)
	if err != nil {
		switch {
		case errors.Is(err, apierror.ErrValidacion):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, apierror.ErrCodigoDuplicado):
			c.JSON(http.StatusConflict, apierror.New("El codigo de producto ya existe"))
		default:
			c.Error(err)
		}
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	ok, err := h.svc.Eliminar(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.Status(http.StatusNoContent)
}

type asignarImagenRequest struct {
	RutaOrigen string `json:"ruta_origen" validate:"required"`
}

func (h *ProductosHandler) AsignarImagen(c *gin.Context) {
	var req asignarImagenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	nombre, err := h.svc.AsignarImagen(c.Request.Context(), c.Param("codigo"), req.RutaOrigen)
	if err != nil {
		if errors.Is(err, apierror.ErrValidacion) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imagen": nombre})
}
