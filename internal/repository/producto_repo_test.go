package repository

import (
	"context"
	"testing"

	"autopartes/internal/apierror"
	"autopartes/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productoPrueba(codigo, nombre string) *model.Producto {
	return &model.Producto{
		Codigo:       codigo,
		Nombre:       nombre,
		TipoRepuesto: "junta",
		Categoria:    "motor",
		Aplicacion:   "Toyota Hilux 2.4",
		CodOriginal:  "OEM-9981",
		Descripcion:  "Junta de culata",
		Medidas:      model.Medidas{"ancho": "12cm", "alto": "3cm"},
		Stock:        10,
		Precio:       decimal.NewFromFloat(25.00),
	}
}

func TestInsertarYObtenerRoundTrip(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	id, err := repo.Insertar(ctx, productoPrueba("GSP-1", "Gasket"))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-1")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "GSP-1", p.Codigo)
	assert.Equal(t, "Gasket", p.Nombre)
	assert.Equal(t, "junta", p.TipoRepuesto)
	assert.Equal(t, "motor", p.Categoria)
	assert.Equal(t, "Toyota Hilux 2.4", p.Aplicacion)
	assert.Equal(t, "OEM-9981", p.CodOriginal)
	assert.Equal(t, 10, p.Stock)
	assert.True(t, p.Precio.Equal(decimal.NewFromFloat(25.00)), "precio: %s", p.Precio)
	// La igualdad del mapa no depende del orden de claves del JSON almacenado
	assert.Equal(t, model.Medidas{"ancho": "12cm", "alto": "3cm"}, p.Medidas)
}

func TestInsertarCodigoDuplicado(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-1", "Gasket"))
	require.NoError(t, err)

	_, err = repo.Insertar(ctx, productoPrueba("GSP-1", "Otro nombre"))
	require.ErrorIs(t, err, apierror.ErrCodigoDuplicado)

	// El primero queda intacto
	p, err := repo.ObtenerPorCodigo(ctx, "GSP-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Gasket", p.Nombre)
}

func TestInsertarSinMedidasGuardaObjetoVacio(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	p := productoPrueba("GSP-2", "Filtro")
	p.Medidas = nil
	_, err := repo.Insertar(ctx, p)
	require.NoError(t, err)

	leido, err := repo.ObtenerPorCodigo(ctx, "GSP-2")
	require.NoError(t, err)
	require.NotNil(t, leido)
	assert.Equal(t, model.Medidas{}, leido.Medidas)
}

func TestInsertarConColumnaAusenteDescartaElCampo(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	h, err := db.Acquire()
	require.NoError(t, err)
	require.NoError(t, h.Exec("ALTER TABLE productos DROP COLUMN aplicacion").Error)
	db.Release(h)

	// aplicacion viene con valor pero la columna ya no existe: se descarta
	// en silencio, el resto del producto se inserta.
	_, err = repo.Insertar(ctx, productoPrueba("GSP-3", "Correa"))
	require.NoError(t, err)

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-3")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Correa", p.Nombre)
	assert.Equal(t, "", p.Aplicacion)
}

func TestObtenerPorCodigoAusente(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	p, err := repo.ObtenerPorCodigo(ctx, "NO-EXISTE")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = repo.ObtenerPorCodigo(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestObtenerMedidasCorruptasDegradaAVacio(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-4", "Bujia"))
	require.NoError(t, err)

	h, err := db.Acquire()
	require.NoError(t, err)
	require.NoError(t, h.Exec("UPDATE productos SET medidas = 'esto no es json' WHERE codigo = 'GSP-4'").Error)
	db.Release(h)

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-4")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.Medidas{}, p.Medidas)
}

func TestActualizarParcial(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-5", "Amortiguador"))
	require.NoError(t, err)

	ok, err := repo.Actualizar(ctx, "GSP-5", map[string]interface{}{
		"nombre": "Amortiguador trasero",
		"precio": decimal.NewFromFloat(99.90),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-5")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Amortiguador trasero", p.Nombre)
	assert.True(t, p.Precio.Equal(decimal.NewFromFloat(99.90)))
	// Los campos no enviados no se tocan
	assert.Equal(t, "motor", p.Categoria)
	assert.Equal(t, 10, p.Stock)
}

func TestActualizarCodigoInexistente(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))

	ok, err := repo.Actualizar(context.Background(), "NO-EXISTE", map[string]interface{}{"nombre": "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActualizarSinCodigoOriginal(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))

	_, err := repo.Actualizar(context.Background(), "  ", map[string]interface{}{"nombre": "x"})
	require.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestActualizarSinCamposEfectivos(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-6", "Radiador"))
	require.NoError(t, err)

	// Solo columnas que el esquema no tiene: la interseccion queda vacia.
	_, err = repo.Actualizar(ctx, "GSP-6", map[string]interface{}{"columna_fantasma": 1})
	require.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestActualizarDescartaColumnasDesconocidas(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-7", "Bomba de agua"))
	require.NoError(t, err)

	ok, err := repo.Actualizar(ctx, "GSP-7", map[string]interface{}{
		"nombre":           "Bomba",
		"columna_fantasma": "se descarta",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-7")
	require.NoError(t, err)
	assert.Equal(t, "Bomba", p.Nombre)
}

func TestActualizarMedidas(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-8", "Disco"))
	require.NoError(t, err)

	ok, err := repo.Actualizar(ctx, "GSP-8", map[string]interface{}{
		"medidas": map[string]string{"diametro": "280mm"},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-8")
	require.NoError(t, err)
	assert.Equal(t, model.Medidas{"diametro": "280mm"}, p.Medidas)
}

func TestEliminar(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-9", "Pastillas"))
	require.NoError(t, err)

	ok, err := repo.Eliminar(ctx, "GSP-9")
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := repo.ObtenerPorCodigo(ctx, "GSP-9")
	require.NoError(t, err)
	assert.Nil(t, p)

	// Repetir la eliminacion ya no afecta filas
	ok, err = repo.Eliminar(ctx, "GSP-9")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Eliminar(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListarTodosOrdenaSinDistinguirMayusculas(t *testing.T) {
	repo := NewProductoRepository(nuevaDBPrueba(t))
	ctx := context.Background()

	for _, nombre := range []string{"zeta", "Alfa", "beta"} {
		p := productoPrueba("COD-"+nombre, nombre)
		_, err := repo.Insertar(ctx, p)
		require.NoError(t, err)
	}

	resumen, err := repo.ListarTodos(ctx)
	require.NoError(t, err)
	require.Len(t, resumen, 3)
	assert.Equal(t, "Alfa", resumen[0].Nombre)
	assert.Equal(t, "beta", resumen[1].Nombre)
	assert.Equal(t, "zeta", resumen[2].Nombre)
	assert.Equal(t, 10, resumen[0].Stock)
	assert.True(t, resumen[0].Precio.Equal(decimal.NewFromFloat(25.00)))
}

func TestListarTodosSustituyeColumnasAusentes(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewProductoRepository(db)
	ctx := context.Background()

	_, err := repo.Insertar(ctx, productoPrueba("GSP-10", "Termostato"))
	require.NoError(t, err)

	h, err := db.Acquire()
	require.NoError(t, err)
	require.NoError(t, h.Exec("ALTER TABLE productos DROP COLUMN categoria").Error)
	db.Release(h)

	resumen, err := repo.ListarTodos(ctx)
	require.NoError(t, err)
	require.Len(t, resumen, 1)
	// La forma de la fila es estable: la columna ausente llega como ""
	assert.Equal(t, "", resumen[0].Categoria)
	assert.Equal(t, "Termostato", resumen[0].Nombre)
	assert.Equal(t, 10, resumen[0].Stock)
}
