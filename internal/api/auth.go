// Package api contains one thin client per API resource. Pure
// request/response mappers: no retries, no caching, no business logic, and
// every failure propagates untouched to the calling screen.
package api

import (
	"context"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
)

type AuthClient struct {
	gw *gateway.Client
}

func NewAuthClient(gw *gateway.Client) *AuthClient {
	return &AuthClient{gw: gw}
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.gw.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	var resp dto.UsuarioResponse
	if err := c.gw.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
