package api

import (
	"context"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

type CategoriaClient struct {
	gw *gateway.Client
}

func NewCategoriaClient(gw *gateway.Client) *CategoriaClient {
	return &CategoriaClient{gw: gw}
}

func (c *CategoriaClient) List(ctx context.Context, filter dto.CategoriaFilter) (*dto.Page[dto.CategoriaResponse], error) {
	params := gateway.Params{}
	params.Set("busqueda", filter.Busqueda)
	params.SetInt("page", filter.Page)
	params.SetInt("per_page", filter.PerPage)

	var page dto.Page[dto.CategoriaResponse]
	if err := c.gw.Get(ctx, "/api/categorias", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *CategoriaClient) Create(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	var resp dto.CategoriaResponse
	if err := c.gw.Post(ctx, "/api/categorias", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *CategoriaClient) Update(ctx context.Context, id string, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	var resp dto.CategoriaResponse
	if err := c.gw.Put(ctx, "/api/categorias/"+id, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *CategoriaClient) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/api/categorias/"+id, nil)
}
