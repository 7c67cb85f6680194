package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"autopartes/internal/apierror"
	"autopartes/internal/dto"
	"autopartes/internal/infra"
	"autopartes/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
//
// Writes go through the schema introspector: only the intersection of the
// requested fields and the table's live columns is persisted, so installs
// whose schema lags behind (or ran ad-hoc migrations) keep working.
type ProductoRepository interface {
	// ListarTodos returns the inventory ordered by name, case-insensitive.
	ListarTodos(ctx context.Context) ([]dto.ProductoResumen, error)

	// Insertar persists a new product and returns its assigned id.
	// A duplicate code maps to apierror.ErrCodigoDuplicado.
	Insertar(ctx context.Context, p *model.Producto) (int64, error)

	// ObtenerPorCodigo returns nil (not an error) when no product matches
	// or codigo is empty.
	ObtenerPorCodigo(ctx context.Context, codigo string) (*model.Producto, error)

	// Actualizar applies a partial update keyed by the original code and
	// reports whether a row matched. An empty effective field set (after
	// schema intersection) is apierror.ErrValidacion.
	Actualizar(ctx context.Context, codigoOriginal string, campos map[string]interface{}) (bool, error)

	// Eliminar removes the product and reports whether a row was actually
	// deleted. Historical sales keep their rows; the store nulls their
	// product reference.
	Eliminar(ctx context.Context, codigo string) (bool, error)
}

type productoRepo struct{ db *infra.DB }

func NewProductoRepository(db *infra.DB) ProductoRepository { return &productoRepo{db: db} }

// columnasListado maps each listed field to its substitution when the live
// schema lacks the column: a typed zero value keeps the row shape stable.
var columnasListado = []struct {
	columna     string
	sustitucion string
}{
	{"codigo", "'' AS codigo"},
	{"nombre", "'' AS nombre"},
	{"categoria", "'' AS categoria"},
	{"stock", "0 AS stock"},
	{"precio", "0.0 AS precio"},
}

func (r *productoRepo) ListarTodos(ctx context.Context) ([]dto.ProductoResumen, error) {
	h, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}
	defer r.db.Release(h)

	columnas, err := ColumnasTabla(h, "productos")
	if err != nil {
		return nil, err
	}

	seleccion := make([]string, 0, len(columnasListado))
	for _, c := range columnasListado {
		if columnas[c.columna] {
			seleccion = append(seleccion, c.columna)
		} else {
			seleccion = append(seleccion, c.sustitucion)
		}
	}

	sql := fmt.Sprintf("SELECT %s FROM productos ORDER BY nombre COLLATE NOCASE",
		strings.Join(seleccion, ", "))

	var resumen []dto.ProductoResumen
	if err := h.WithContext(ctx).Raw(sql).Scan(&resumen).Error; err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return resumen, nil
}

func (r *productoRepo) Insertar(ctx context.Context, p *model.Producto) (int64, error) {
	h, err := r.db.Acquire()
	if err != nil {
		return 0, err
	}
	defer r.db.Release(h)

	medidas := p.Medidas
	if medidas == nil {
		medidas = model.Medidas{}
	}

	// Candidate column/value pairs: required identity always, optional
	// descriptive strings only when they carry a value.
	candidatos := map[string]interface{}{
		"codigo":  p.Codigo,
		"nombre":  p.Nombre,
		"medidas": medidas,
		"stock":   p.Stock,
		"precio":  p.Precio,
	}
	opcionales := map[string]string{
		"tipo_repuesto": p.TipoRepuesto,
		"categoria":     p.Categoria,
		"aplicacion":    p.Aplicacion,
		"cod_original":  p.CodOriginal,
		"descripcion":   p.Descripcion,
		"imagen":        p.Imagen,
	}
	for columna, valor := range opcionales {
		if valor != "" {
			candidatos[columna] = valor
		}
	}

	var nuevoID int64
	txErr := h.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		columnas, err := ColumnasTabla(tx, "productos")
		if err != nil {
			return err
		}

		valores := make(map[string]interface{}, len(candidatos))
		for columna, valor := range candidatos {
			if columnas[columna] {
				valores[columna] = valor
			}
		}
		if len(valores) == 0 {
			return fmt.Errorf("%w: ningun campo del producto existe en la tabla productos", apierror.ErrValidacion)
		}

		if err := tx.Table("productos").Create(valores).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %q", apierror.ErrCodigoDuplicado, p.Codigo)
			}
			return fmt.Errorf("insertar producto %q: %w", p.Codigo, err)
		}

		return tx.Raw("SELECT last_insert_rowid()").Scan(&nuevoID).Error
	})
	if txErr != nil {
		return 0, txErr
	}
	return nuevoID, nil
}

func (r *productoRepo) ObtenerPorCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	if strings.TrimSpace(codigo) == "" {
		return nil, nil
	}

	h, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}
	defer r.db.Release(h)

	// SELECT * into a map: the row shape follows whatever columns the
	// table has today, and missing optional fields default below.
	fila := map[string]interface{}{}
	res := h.WithContext(ctx).Table("productos").Where("codigo = ?", codigo).Take(&fila)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener producto %q: %w", codigo, res.Error)
	}
	if len(fila) == 0 {
		return nil, nil
	}

	var medidas model.Medidas
	_ = medidas.Scan(fila["medidas"]) // tolerant: garbage degrades to {}

	p := &model.Producto{
		ID:           enteroDe(fila, "id"),
		Codigo:       cadenaDe(fila, "codigo"),
		Nombre:       cadenaDe(fila, "nombre"),
		TipoRepuesto: cadenaDe(fila, "tipo_repuesto"),
		Categoria:    cadenaDe(fila, "categoria"),
		Aplicacion:   cadenaDe(fila, "aplicacion"),
		CodOriginal:  cadenaDe(fila, "cod_original"),
		Descripcion:  cadenaDe(fila, "descripcion"),
		Medidas:      medidas,
		Stock:        int(enteroDe(fila, "stock")),
		Precio:       decimalDe(fila, "precio"),
		Imagen:       cadenaDe(fila, "imagen"),
	}
	return p, nil
}

func (r *productoRepo) Actualizar(ctx context.Context, codigoOriginal string, campos map[string]interface{}) (bool, error) {
	if strings.TrimSpace(codigoOriginal) == "" {
		return false, fmt.Errorf("%w: falta el codigo original", apierror.ErrValidacion)
	}

	h, err := r.db.Acquire()
	if err != nil {
		return false, err
	}
	defer r.db.Release(h)

	var actualizado bool
	txErr := h.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		columnas, err := ColumnasTabla(tx, "productos")
		if err != nil {
			return err
		}

		efectivos := make(map[string]interface{}, len(campos))
		for columna, valor := range campos {
			if !columnas[columna] {
				continue
			}
			if m, ok := valor.(map[string]string); ok {
				valor = model.Medidas(m)
			}
			efectivos[columna] = valor
		}
		if len(efectivos) == 0 {
			return fmt.Errorf("%w: no hay campos validos para actualizar", apierror.ErrValidacion)
		}

		res := tx.Table("productos").Where("codigo = ?", codigoOriginal).Updates(efectivos)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w", apierror.ErrCodigoDuplicado)
			}
			return fmt.Errorf("actualizar producto %q: %w", codigoOriginal, res.Error)
		}
		actualizado = res.RowsAffected > 0
		return nil
	})
	if txErr != nil {
		return false, txErr
	}
	return actualizado, nil
}

func (r *productoRepo) Eliminar(ctx context.Context, codigo string) (bool, error) {
	if strings.TrimSpace(codigo) == "" {
		return false, nil
	}

	h, err := r.db.Acquire()
	if err != nil {
		return false, err
	}
	defer r.db.Release(h)

	res := h.WithContext(ctx).Exec("DELETE FROM productos WHERE codigo = ?", codigo)
	if res.Error != nil {
		return false, fmt.Errorf("eliminar producto %q: %w", codigo, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ── row map helpers ──────────────────────────────────────────────────────────
// SELECT * reads come back as driver-typed maps; these normalize them.

func cadenaDe(fila map[string]interface{}, clave string) string {
	switch v := fila[clave].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func enteroDe(fila map[string]interface{}, clave string) int64 {
	switch v := fila[clave].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func decimalDe(fila map[string]interface{}, clave string) decimal.Decimal {
	switch v := fila[clave].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return decimal.NewFromFloat(f)
		}
	}
	return decimal.Zero
}
