package dto

import "github.com/shopspring/decimal"

// ─── Gastos ──────────────────────────────────────────────────────────────────

type CrearGastoRequest struct {
	Descripcion string          `json:"descripcion"  validate:"required,min=2,max=200"`
	Monto       decimal.Decimal `json:"monto"        validate:"required,gt=0"`
	CategoriaID string          `json:"categoria_id" validate:"required"`
	Fecha       string          `json:"fecha"        validate:"required"` // YYYY-MM-DD
}

type ActualizarGastoRequest struct {
	Descripcion *string          `json:"descripcion"  validate:"omitempty,min=2,max=200"`
	Monto       *decimal.Decimal `json:"monto"`
	CategoriaID *string          `json:"categoria_id"`
	Fecha       *string          `json:"fecha"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	CategoriaID string          `json:"categoria_id"`
	Categoria   string          `json:"categoria"`
	Fecha       string          `json:"fecha"`
}

type GastoFilter struct {
	FechaDesde  string
	FechaHasta  string
	CategoriaID string
	PageFilter
}

// ─── Categorias de gasto (sub-resource) ──────────────────────────────────────

type CrearGastoCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=80"`
}

type GastoCategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
