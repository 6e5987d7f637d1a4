package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter narrows GET /api/ventas. Dates are YYYY-MM-DD; empty means no
// bound on that side.
type VentaFilter struct {
	FechaDesde string
	FechaHasta string
	MetodoPago string
	PageFilter
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaItemRequest is one checkout line as sent to POST /api/ventas.
type VentaItemRequest struct {
	ProductoID     string          `json:"producto_id" validate:"required"`
	Cantidad       int             `json:"cantidad"    validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
	Ganancia       decimal.Decimal `json:"ganancia"`
	MargenPct      decimal.Decimal `json:"margen_pct"`
}

// CrearVentaRequest is the immutable checkout payload. Assembled once at
// submit time; later cart mutations never touch it.
type CrearVentaRequest struct {
	ClienteRef    string             `json:"cliente_ref"` // console-generated uuid for idempotent server logs
	Items         []VentaItemRequest `json:"items"        validate:"required,min=1,dive"`
	MetodoPago    string             `json:"metodo_pago"  validate:"required,oneof=efectivo tarjeta transferencia"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Impuesto      decimal.Decimal    `json:"impuesto"`
	Total         decimal.Decimal    `json:"total"`
	GananciaTotal decimal.Decimal    `json:"ganancia_total"`
	MargenPromPct decimal.Decimal    `json:"margen_prom_pct"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Items      []VentaItemResponse `json:"items"`
	MetodoPago string              `json:"metodo_pago"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Impuesto   decimal.Decimal     `json:"impuesto"`
	Total      decimal.Decimal     `json:"total"`
	UsuarioID  string              `json:"usuario_id"`
	CreatedAt  string              `json:"created_at"`
}
