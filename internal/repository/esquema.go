package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// ColumnasTabla returns the set of columns the table currently has, read
// fresh on every call. The schema may change between calls (ad-hoc
// migrations add columns on live installs); caching here would make writes
// silently drop data, so there is none.
//
// The result is only ever used as an intersection guard between "fields the
// caller wants" and "fields the table has" — fields outside the intersection
// are dropped, never turned into an error.
func ColumnasTabla(h *gorm.DB, tabla string) (map[string]bool, error) {
	type columnaInfo struct {
		Name string `gorm:"column:name"`
	}
	var filas []columnaInfo
	if err := h.Raw(fmt.Sprintf("PRAGMA table_info(%q)", tabla)).Scan(&filas).Error; err != nil {
		return nil, fmt.Errorf("introspeccion de %s: %w", tabla, err)
	}
	columnas := make(map[string]bool, len(filas))
	for _, f := range filas {
		columnas[f.Name] = true
	}
	return columnas, nil
}
