package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"autopartes/internal/apierror"
	"autopartes/internal/dto"
	"autopartes/internal/infra"
	"autopartes/internal/model"
	"autopartes/internal/repository"
)

type ProductoService interface {
	Listar(ctx context.Context) ([]dto.ProductoResumen, error)
	Crear(ctx context.Context, req dto.CrearProductoRequest) (int64, error)
	// ObtenerPorCodigo returns nil when no product matches.
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, codigoOriginal string, req dto.ActualizarProductoRequest) (bool, error)
	Eliminar(ctx context.Context, codigo string) (bool, error)
	// AsignarImagen copies the source file into the image directory and
	// persists the resulting bare filename on the product.
	AsignarImagen(ctx context.Context, codigo, rutaOrigen string) (string, error)
}

type productoService struct {
	repo        repository.ProductoRepository
	dirImagenes string
}

func NewProductoService(repo repository.ProductoRepository, dirImagenes string) ProductoService {
	return &productoService{repo: repo, dirImagenes: dirImagenes}
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResumen, error) {
	return s.repo.ListarTodos(ctx)
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (int64, error) {
	codigo := strings.TrimSpace(req.Codigo)
	nombre := strings.TrimSpace(req.Nombre)
	if codigo == "" || nombre == "" {
		return 0, fmt.Errorf("%w: codigo y nombre son obligatorios", apierror.ErrValidacion)
	}

	medidas := model.Medidas(req.Medidas)
	if medidas == nil {
		medidas = model.Medidas{}
	}

	// Only the bare filename is stored; the caller may hand us a full path.
	imagen := ""
	if req.RutaImagen != "" {
		imagen = filepath.Base(req.RutaImagen)
	}

	p := &model.Producto{
		Codigo:       codigo,
		Nombre:       nombre,
		TipoRepuesto: strings.TrimSpace(req.TipoRepuesto),
		Categoria:    strings.TrimSpace(req.Categoria),
		Aplicacion:   strings.TrimSpace(req.Aplicacion),
		CodOriginal:  strings.TrimSpace(req.CodOriginal),
		Descripcion:  strings.TrimSpace(req.Descripcion),
		Medidas:      medidas,
		Stock:        req.Stock,
		Precio:       req.Precio,
		Imagen:       imagen,
	}
	return s.repo.Insertar(ctx, p)
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorCodigo(ctx, codigo)
	if err != nil || p == nil {
		return nil, err
	}
	return &dto.ProductoResponse{
		ID:           p.ID,
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		TipoRepuesto: p.TipoRepuesto,
		Categoria:    p.Categoria,
		Aplicacion:   p.Aplicacion,
		CodOriginal:  p.CodOriginal,
		Descripcion:  p.Descripcion,
		Medidas:      p.Medidas,
		Stock:        p.Stock,
		Precio:       p.Precio,
		Imagen:       p.Imagen,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, codigoOriginal string, req dto.ActualizarProductoRequest) (bool, error) {
	campos := map[string]interface{}{}

	cadenas := map[string]*string{
		"codigo":        req.Codigo,
		"nombre":        req.Nombre,
		"tipo_repuesto": req.TipoRepuesto,
		"categoria":     req.Categoria,
		"aplicacion":    req.Aplicacion,
		"cod_original":  req.CodOriginal,
		"descripcion":   req.Descripcion,
		"imagen":        req.Imagen,
	}
	for columna, valor := range cadenas {
		if valor != nil {
			campos[columna] = strings.TrimSpace(*valor)
		}
	}
	if req.Medidas != nil {
		campos["medidas"] = model.Medidas(*req.Medidas)
	}
	if req.Stock != nil {
		campos["stock"] = *req.Stock
	}
	if req.Precio != nil {
		campos["precio"] = *req.Precio
	}

	return s.repo.Actualizar(ctx, codigoOriginal, campos)
}

func (s *productoService) Eliminar(ctx context.Context, codigo string) (bool, error) {
	return s.repo.Eliminar(ctx, codigo)
}

func (s *productoService) AsignarImagen(ctx context.Context, codigo, rutaOrigen string) (string, error) {
	nombre, err := infra.GuardarImagenProducto(s.dirImagenes, rutaOrigen, codigo)
	if err != nil {
		return "", err
	}
	ok, err := s.repo.Actualizar(ctx, codigo, map[string]interface{}{"imagen": nombre})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: producto %q no encontrado", apierror.ErrValidacion, codigo)
	}
	return nombre, nil
}
