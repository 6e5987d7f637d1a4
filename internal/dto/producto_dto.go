package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=120"`
	Descripcion  *string         `json:"descripcion"`
	CategoriaID  string          `json:"categoria_id"  validate:"required"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"  validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required,gt=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	ConImpuesto  bool            `json:"con_impuesto"`
	ImagenNombre *string         `json:"imagen_nombre"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=120"`
	Descripcion  *string          `json:"descripcion"`
	CategoriaID  *string          `json:"categoria_id"`
	PrecioCosto  *decimal.Decimal `json:"precio_costo"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	Stock        *int             `json:"stock"         validate:"omitempty,min=0"`
	ConImpuesto  *bool            `json:"con_impuesto"`
	ImagenNombre *string          `json:"imagen_nombre"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Busqueda    string // matches nombre/descripcion server-side
	CategoriaID string
	PageFilter
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductoResponse mirrors GET /api/productos items. The server computes the
// per-unit profit and margin from cost and price; the console passes the
// figures through to the cart untouched.
type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion"`
	CategoriaID  string          `json:"categoria_id"`
	Categoria    string          `json:"categoria"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Ganancia     decimal.Decimal `json:"ganancia"`
	MargenPct    decimal.Decimal `json:"margen_pct"`
	Stock        int             `json:"stock"`
	ConImpuesto  bool            `json:"con_impuesto"`
	ImagenNombre *string         `json:"imagen_nombre"`
}

type UploadImagenResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
