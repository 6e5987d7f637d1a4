package dto

import "github.com/shopspring/decimal"

// The report endpoints return server-computed aggregates. The console passes
// them straight to presentation; nothing is recomputed client-side.

type ResumenGeneralResponse struct {
	VentasHoy      decimal.Decimal `json:"ventas_hoy"`
	VentasMes      decimal.Decimal `json:"ventas_mes"`
	GastosMes      decimal.Decimal `json:"gastos_mes"`
	GananciaMes    decimal.Decimal `json:"ganancia_mes"`
	TotalProductos int             `json:"total_productos"`
	ProductosBajos int             `json:"productos_bajos"`
	VentasCantidad int             `json:"ventas_cantidad"`
	TicketPromedio decimal.Decimal `json:"ticket_promedio"`
}

type VentaDiariaPunto struct {
	Fecha string          `json:"fecha"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type VentaPorHoraPunto struct {
	Hora  int             `json:"hora"` // 0..23
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type TendenciaPunto struct {
	Periodo string          `json:"periodo"` // YYYY-MM
	Total   decimal.Decimal `json:"total"`
}

type ProductoVendido struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

type MetodoPagoResumen struct {
	Metodo string          `json:"metodo"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

type ProductoBajoStock struct {
	ProductoID string `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Stock      int    `json:"stock"`
}

// RangoFechas bounds the date-filtered report endpoints.
type RangoFechas struct {
	Desde string // YYYY-MM-DD, empty = server default
	Hasta string
}
