package api

import (
	"context"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

type UsuarioClient struct {
	gw *gateway.Client
}

func NewUsuarioClient(gw *gateway.Client) *UsuarioClient {
	return &UsuarioClient{gw: gw}
}

func (c *UsuarioClient) List(ctx context.Context, filter dto.UsuarioFilter) (*dto.Page[dto.UsuarioResponse], error) {
	params := gateway.Params{}
	params.Set("busqueda", filter.Busqueda)
	params.Set("rol", filter.Rol)
	params.SetInt("page", filter.Page)
	params.SetInt("per_page", filter.PerPage)

	var page dto.Page[dto.UsuarioResponse]
	if err := c.gw.Get(ctx, "/api/usuarios", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *UsuarioClient) UpdateRole(ctx context.Context, id, rol string) (*dto.UsuarioResponse, error) {
	var resp dto.UsuarioResponse
	req := dto.ActualizarRolRequest{Rol: rol}
	if err := c.gw.Put(ctx, "/api/usuarios/"+id+"/role", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *UsuarioClient) Permissions(ctx context.Context, id string) (*dto.PermisosResponse, error) {
	var resp dto.PermisosResponse
	if err := c.gw.Get(ctx, "/api/usuarios/"+id+"/permissions", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *UsuarioClient) ResetPassword(ctx context.Context, id, password string) error {
	req := dto.ResetPasswordRequest{Password: password}
	return c.gw.Put(ctx, "/api/usuarios/"+id+"/reset-password", req, nil)
}
