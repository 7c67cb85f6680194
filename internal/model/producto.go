package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Medidas is the open-ended dimensions mapping of a product (e.g. "ancho",
// "alto", "peso"), stored as a JSON object in a text column. An empty map is
// a valid value and serializes as "{}".
type Medidas map[string]string

// Value serializes the map as a JSON object; a nil map becomes "{}".
func (m Medidas) Value() (driver.Value, error) {
	if m == nil {
		m = Medidas{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads the stored JSON. Malformed or empty stored values degrade to an
// empty map instead of failing the read: legacy rows may carry garbage and a
// lossy read beats an unreadable product.
func (m *Medidas) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*m = Medidas{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		*m = Medidas{}
		return nil
	}

	if strings.TrimSpace(raw) == "" {
		*m = Medidas{}
		return nil
	}

	var parsed Medidas
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
		*m = Medidas{}
		return nil
	}
	*m = parsed
	return nil
}

// Producto represents one stock-keeping unit. Codigo is the user-assigned
// unique business key; ID is the surrogate assigned by the store.
type Producto struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	Codigo        string          `gorm:"column:codigo;uniqueIndex;not null"`
	Nombre        string          `gorm:"column:nombre;not null"`
	TipoRepuesto  string          `gorm:"column:tipo_repuesto"`
	Categoria     string          `gorm:"column:categoria"`
	Aplicacion    string          `gorm:"column:aplicacion"`
	CodOriginal   string          `gorm:"column:cod_original"`
	Descripcion   string          `gorm:"column:descripcion"`
	Medidas       Medidas         `gorm:"column:medidas;type:text"`
	Stock         int             `gorm:"column:stock;not null;default:0"`
	Precio        decimal.Decimal `gorm:"column:precio;type:decimal(10,2)"`
	// Imagen holds only the bare filename of the product image, never a
	// path, so the data directory stays portable.
	Imagen        string    `gorm:"column:imagen"`
	FechaCreacion time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
}

func (Producto) TableName() string { return "productos" }
