package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"autopartes/internal/apierror"
	"autopartes/internal/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the connection provider. It does not pool handles across the
// process: every logical operation acquires a fresh GORM handle over SQLite,
// uses it, and releases it — mirroring the store's one-connection-per-call
// model while keeping file locking to SQLite itself.
//
// Every handle is opened with foreign-key enforcement ON (enforced, not
// merely declared), a bounded busy timeout so a conflicting writer fails
// instead of hanging, and immediate transaction locking so concurrent sale
// transactions serialize rather than deadlock on lock upgrade.
type DB struct {
	ruta          string // full path to the .db file
	busyTimeoutMS int
}

// NewDB creates the data directory if needed, bootstraps the schema, and
// returns the provider. Failure to create the directory or open the store is
// ErrAlmacenNoDisponible — there is no degraded mode without a datastore.
func NewDB(cfg *config.Config) (*DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", cfg.DataDir).Msg("no se pudo crear la carpeta de datos")
		return nil, fmt.Errorf("%w: carpeta de datos %q: %v", apierror.ErrAlmacenNoDisponible, cfg.DataDir, err)
	}

	d := &DB{
		ruta:          filepath.Join(cfg.DataDir, cfg.DBFile),
		busyTimeoutMS: cfg.BusyTimeoutMS,
	}

	h, err := d.Acquire()
	if err != nil {
		return nil, err
	}
	defer d.Release(h)

	if err := bootstrapEsquema(h); err != nil {
		return nil, fmt.Errorf("%w: esquema inicial: %v", apierror.ErrAlmacenNoDisponible, err)
	}
	return d, nil
}

// Acquire opens a fresh handle. Callers must Release it on every exit path.
func (d *DB) Acquire() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d&_txlock=immediate&_loc=auto",
		d.ruta, d.busyTimeoutMS)

	h, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Error().Err(err).Str("db", d.ruta).Msg("no se pudo abrir el almacen")
		return nil, fmt.Errorf("%w: %v", apierror.ErrAlmacenNoDisponible, err)
	}

	sqlDB, err := h.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierror.ErrAlmacenNoDisponible, err)
	}
	// One underlying connection per handle: the DSN pragmas apply per
	// connection and a second one would silently skip them.
	sqlDB.SetMaxOpenConns(1)

	return h, nil
}

// Release closes the handle's underlying connection. A close failure is
// logged and swallowed: the operation that used the handle already finished.
func (d *DB) Release(h *gorm.DB) {
	if h == nil {
		return
	}
	sqlDB, err := h.DB()
	if err != nil {
		return
	}
	if cerr := sqlDB.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("error cerrando conexion sqlite")
	}
}

// Ruta returns the path of the store file (diagnostics, health check).
func (d *DB) Ruta() string { return d.ruta }

// bootstrapEsquema applies the idempotent base schema. External ad-hoc
// migrations may add columns later; readers and writers discover the live
// column set per call instead of assuming this shape.
func bootstrapEsquema(h *gorm.DB) error {
	sentencias := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			username       TEXT NOT NULL UNIQUE,
			nombre         TEXT NOT NULL,
			password_hash  TEXT NOT NULL,
			rol            TEXT NOT NULL DEFAULT 'vendedor',
			activo         BOOLEAN NOT NULL DEFAULT 1,
			fecha_creacion TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS productos (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			codigo         TEXT NOT NULL UNIQUE,
			nombre         TEXT NOT NULL,
			tipo_repuesto  TEXT,
			categoria      TEXT,
			aplicacion     TEXT,
			cod_original   TEXT,
			descripcion    TEXT,
			medidas        TEXT,
			stock          INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			precio         REAL NOT NULL DEFAULT 0,
			imagen         TEXT,
			fecha_creacion TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		// id_producto is nullable on purpose: deleting a product nulls the
		// reference but the sale row stays queryable forever.
		`CREATE TABLE IF NOT EXISTS ventas (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			id_producto     INTEGER REFERENCES productos(id) ON DELETE SET NULL,
			cantidad        INTEGER NOT NULL CHECK (cantidad > 0),
			precio_unitario REAL NOT NULL,
			total           REAL NOT NULL,
			vendido_por     INTEGER NOT NULL REFERENCES usuarios(id),
			fecha_venta     TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ventas_fecha ON ventas (fecha_venta)`,
	}
	for _, sql := range sentencias {
		if err := h.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}
