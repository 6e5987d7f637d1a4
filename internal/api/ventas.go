package api

import (
	"context"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

// VentaCreator is the narrow dependency the cart engine submits through.
type VentaCreator interface {
	Create(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
}

type VentaClient struct {
	gw *gateway.Client
}

func NewVentaClient(gw *gateway.Client) *VentaClient {
	return &VentaClient{gw: gw}
}

var _ VentaCreator = (*VentaClient)(nil)

func (c *VentaClient) List(ctx context.Context, filter dto.VentaFilter) (*dto.Page[dto.VentaResponse], error) {
	params := gateway.Params{}
	params.Set("fecha_desde", filter.FechaDesde)
	params.Set("fecha_hasta", filter.FechaHasta)
	params.Set("metodo_pago", filter.MetodoPago)
	params.SetInt("page", filter.Page)
	params.SetInt("per_page", filter.PerPage)

	var page dto.Page[dto.VentaResponse]
	if err := c.gw.Get(ctx, "/api/ventas", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *VentaClient) Get(ctx context.Context, id string) (*dto.VentaResponse, error) {
	var resp dto.VentaResponse
	if err := c.gw.Get(ctx, "/api/ventas/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *VentaClient) Create(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	var resp dto.VentaResponse
	if err := c.gw.Post(ctx, "/api/ventas", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *VentaClient) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/api/ventas/"+id, nil)
}
