package infra

import (
	"os"
	"path/filepath"
	"testing"

	"autopartes/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfgPrueba(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:       filepath.Join(t.TempDir(), "data"),
		DBFile:        "inventario.db",
		BusyTimeoutMS: 5000,
	}
}

func TestNewDBCreaCarpetaYEsquema(t *testing.T) {
	cfg := cfgPrueba(t)
	db, err := NewDB(cfg)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.DataDir, cfg.DBFile))
	require.NoError(t, err)

	// Bootstrapping twice must be a no-op
	_, err = NewDB(cfg)
	require.NoError(t, err)

	h, err := db.Acquire()
	require.NoError(t, err)
	defer db.Release(h)

	var n int
	err = h.Raw("SELECT COUNT(*) FROM productos").Scan(&n).Error
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestClavesForaneasAplicadas(t *testing.T) {
	db, err := NewDB(cfgPrueba(t))
	require.NoError(t, err)

	h, err := db.Acquire()
	require.NoError(t, err)
	defer db.Release(h)

	// vendido_por apunta a un usuario inexistente: debe rechazarse,
	// no solo estar declarado.
	err = h.Exec(`INSERT INTO ventas (id_producto, cantidad, precio_unitario, total, vendido_por, fecha_venta)
		VALUES (NULL, 1, 10, 10, 999, CURRENT_TIMESTAMP)`).Error
	require.Error(t, err)
}

func TestGuardarImagenProducto(t *testing.T) {
	dirImagenes := filepath.Join(t.TempDir(), "imagenes")

	origen := filepath.Join(t.TempDir(), "foto original.PNG")
	require.NoError(t, os.WriteFile(origen, []byte("imagen-de-prueba"), 0o644))

	nombre, err := GuardarImagenProducto(dirImagenes, origen, "GSP-1")
	require.NoError(t, err)

	// Solo el nombre de archivo, nunca una ruta, y con la extension normalizada
	assert.Equal(t, "GSP-1.png", nombre)

	contenido, err := os.ReadFile(filepath.Join(dirImagenes, nombre))
	require.NoError(t, err)
	assert.Equal(t, []byte("imagen-de-prueba"), contenido)
}

func TestGuardarImagenProductoEntradasVacias(t *testing.T) {
	_, err := GuardarImagenProducto(t.TempDir(), "", "GSP-1")
	require.Error(t, err)

	_, err = GuardarImagenProducto(t.TempDir(), "foto.png", "")
	require.Error(t, err)
}
