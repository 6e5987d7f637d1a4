package api

import (
	"context"
	"io"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

type ProductoClient struct {
	gw *gateway.Client
}

func NewProductoClient(gw *gateway.Client) *ProductoClient {
	return &ProductoClient{gw: gw}
}

func (c *ProductoClient) List(ctx context.Context, filter dto.ProductoFilter) (*dto.Page[dto.ProductoResponse], error) {
	params := gateway.Params{}
	params.Set("busqueda", filter.Busqueda)
	params.Set("categoria_id", filter.CategoriaID)
	params.SetInt("page", filter.Page)
	params.SetInt("per_page", filter.PerPage)

	var page dto.Page[dto.ProductoResponse]
	if err := c.gw.Get(ctx, "/api/productos", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *ProductoClient) Create(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	var resp dto.ProductoResponse
	if err := c.gw.Post(ctx, "/api/productos", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ProductoClient) Update(ctx context.Context, id string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	var resp dto.ProductoResponse
	if err := c.gw.Put(ctx, "/api/productos/"+id, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ProductoClient) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/api/productos/"+id, nil)
}

// UploadImagen posts a product image as multipart form data.
func (c *ProductoClient) UploadImagen(ctx context.Context, productoID, filename string, r io.Reader) (*dto.UploadImagenResponse, error) {
	var resp dto.UploadImagenResponse
	extra := map[string]string{"producto_id": productoID}
	if err := c.gw.Upload(ctx, "/api/productos/upload-imagen", "imagen", filename, r, extra, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImagenURL builds the public path a product image is served from.
func ImagenURL(filename string) string {
	if filename == "" {
		return ""
	}
	return "/api/imagenes/productos/" + filename
}
