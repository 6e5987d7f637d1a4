package api

import (
	"context"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

// ReporteClient reads server-computed aggregates. Strict pass-through: the
// dashboard renders whatever comes back, nothing is recomputed here.
type ReporteClient struct {
	gw *gateway.Client
}

func NewReporteClient(gw *gateway.Client) *ReporteClient {
	return &ReporteClient{gw: gw}
}

func (c *ReporteClient) ResumenGeneral(ctx context.Context) (*dto.ResumenGeneralResponse, error) {
	var resp dto.ResumenGeneralResponse
	if err := c.gw.Get(ctx, "/api/reportes/resumen-general", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ReporteClient) VentasDiarias(ctx context.Context, rango dto.RangoFechas) ([]dto.VentaDiariaPunto, error) {
	var puntos []dto.VentaDiariaPunto
	if err := c.gw.Get(ctx, "/api/reportes/ventas-diarias", rangoParams(rango), &puntos); err != nil {
		return nil, err
	}
	return puntos, nil
}

func (c *ReporteClient) VentasPorHora(ctx context.Context, rango dto.RangoFechas) ([]dto.VentaPorHoraPunto, error) {
	var puntos []dto.VentaPorHoraPunto
	if err := c.gw.Get(ctx, "/api/reportes/ventas-por-hora", rangoParams(rango), &puntos); err != nil {
		return nil, err
	}
	return puntos, nil
}

func (c *ReporteClient) TendenciaVentas(ctx context.Context, rango dto.RangoFechas) ([]dto.TendenciaPunto, error) {
	var puntos []dto.TendenciaPunto
	if err := c.gw.Get(ctx, "/api/reportes/tendencia-ventas", rangoParams(rango), &puntos); err != nil {
		return nil, err
	}
	return puntos, nil
}

func (c *ReporteClient) ProductosMasVendidos(ctx context.Context, rango dto.RangoFechas) ([]dto.ProductoVendido, error) {
	var items []dto.ProductoVendido
	if err := c.gw.Get(ctx, "/api/reportes/productos-mas-vendidos", rangoParams(rango), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *ReporteClient) ResumenMetodoPago(ctx context.Context, rango dto.RangoFechas) ([]dto.MetodoPagoResumen, error) {
	var items []dto.MetodoPagoResumen
	if err := c.gw.Get(ctx, "/api/reportes/resumen-metodo-pago", rangoParams(rango), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *ReporteClient) ProductosBajoStock(ctx context.Context) ([]dto.ProductoBajoStock, error) {
	var items []dto.ProductoBajoStock
	if err := c.gw.Get(ctx, "/api/reportes/productos-bajo-stock", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func rangoParams(r dto.RangoFechas) gateway.Params {
	params := gateway.Params{}
	params.Set("desde", r.Desde)
	params.Set("hasta", r.Hasta)
	return params
}
