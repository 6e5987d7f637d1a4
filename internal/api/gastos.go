package api

import (
	"context"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

type GastoClient struct {
	gw *gateway.Client
}

func NewGastoClient(gw *gateway.Client) *GastoClient {
	return &GastoClient{gw: gw}
}

func (c *GastoClient) List(ctx context.Context, filter dto.GastoFilter) (*dto.Page[dto.GastoResponse], error) {
	params := c.filterParams(filter)
	var page dto.Page[dto.GastoResponse]
	if err := c.gw.Get(ctx, "/api/gastos", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *GastoClient) Create(ctx context.Context, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	var resp dto.GastoResponse
	if err := c.gw.Post(ctx, "/api/gastos", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GastoClient) Update(ctx context.Context, id string, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error) {
	var resp dto.GastoResponse
	if err := c.gw.Put(ctx, "/api/gastos/"+id, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GastoClient) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/api/gastos/"+id, nil)
}

// ─── Categorias de gasto (sub-resource) ──────────────────────────────────────

func (c *GastoClient) ListCategorias(ctx context.Context) ([]dto.GastoCategoriaResponse, error) {
	var cats []dto.GastoCategoriaResponse
	if err := c.gw.Get(ctx, "/api/gastos/categorias", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *GastoClient) CreateCategoria(ctx context.Context, req dto.CrearGastoCategoriaRequest) (*dto.GastoCategoriaResponse, error) {
	var resp dto.GastoCategoriaResponse
	if err := c.gw.Post(ctx, "/api/gastos/categorias", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ─── Exportacion ─────────────────────────────────────────────────────────────
// The server renders the export; the console only streams bytes to disk.

func (c *GastoClient) ExportCSV(ctx context.Context, filter dto.GastoFilter, dest string) (int64, error) {
	return c.gw.Download(ctx, "/api/gastos/exportar/csv", c.filterParams(filter), dest)
}

func (c *GastoClient) ExportPDF(ctx context.Context, filter dto.GastoFilter, dest string) (int64, error) {
	return c.gw.Download(ctx, "/api/gastos/exportar/pdf", c.filterParams(filter), dest)
}

func (c *GastoClient) filterParams(filter dto.GastoFilter) gateway.Params {
	params := gateway.Params{}
	params.Set("fecha_desde", filter.FechaDesde)
	params.Set("fecha_hasta", filter.FechaHasta)
	params.Set("categoria_id", filter.CategoriaID)
	params.SetInt("page", filter.Page)
	params.SetInt("per_page", filter.PerPage)
	return params
}
