package dto

import (
	"github.com/shopspring/decimal"
)

// ProductoResumen is one row of the inventory listing. Optional columns
// missing from the physical schema come back as typed zero values ("", 0,
// 0.0) so consumers always see the same shape.
type ProductoResumen struct {
	Codigo    string          `json:"codigo"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Stock     int             `json:"stock"`
	Precio    decimal.Decimal `json:"precio"`
}

type CrearProductoRequest struct {
	Codigo       string            `json:"codigo"        validate:"required"`
	Nombre       string            `json:"nombre"        validate:"required"`
	TipoRepuesto string            `json:"tipo_repuesto"`
	Categoria    string            `json:"categoria"`
	Aplicacion   string            `json:"aplicacion"`
	CodOriginal  string            `json:"cod_original"`
	Descripcion  string            `json:"descripcion"`
	Medidas      map[string]string `json:"medidas"`
	Stock        int               `json:"stock"         validate:"min=0"`
	Precio       decimal.Decimal   `json:"precio"        validate:"min=0"`
	// RutaImagen is a source path on the local filesystem; only the copied
	// file's bare name is persisted.
	RutaImagen string `json:"ruta_imagen"`
}

// ActualizarProductoRequest is a partial update: nil fields are untouched.
// Fields whose column is missing from the live schema are silently dropped.
type ActualizarProductoRequest struct {
	Codigo       *string            `json:"codigo"`
	Nombre       *string            `json:"nombre"`
	TipoRepuesto *string            `json:"tipo_repuesto"`
	Categoria    *string            `json:"categoria"`
	Aplicacion   *string            `json:"aplicacion"`
	CodOriginal  *string            `json:"cod_original"`
	Descripcion  *string            `json:"descripcion"`
	Medidas      *map[string]string `json:"medidas"`
	Stock        *int               `json:"stock"  validate:"omitempty,min=0"`
	Precio       *decimal.Decimal   `json:"precio" validate:"omitempty,min=0"`
	Imagen       *string            `json:"imagen"`
}

type ProductoResponse struct {
	ID           int64             `json:"id"`
	Codigo       string            `json:"codigo"`
	Nombre       string            `json:"nombre"`
	TipoRepuesto string            `json:"tipo_repuesto"`
	Categoria    string            `json:"categoria"`
	Aplicacion   string            `json:"aplicacion"`
	CodOriginal  string            `json:"cod_original"`
	Descripcion  string            `json:"descripcion"`
	Medidas      map[string]string `json:"medidas"`
	Stock        int               `json:"stock"`
	Precio       decimal.Decimal   `json:"precio"`
	Imagen       string            `json:"imagen"`
}
