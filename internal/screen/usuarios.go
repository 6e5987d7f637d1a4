package screen

import (
	"context"
	"sync"
	"time"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// Usuarios drives the admin-only user administration view: listing, role
// changes, permission inspection and password resets.
type Usuarios struct {
	usuarios *api.UsuarioClient
	gate     fetchGate
	Msgs     *Messages
	pageSize int

	mu         sync.Mutex
	items      []dto.UsuarioResponse
	filter     dto.UsuarioFilter
	totalPages int
}

func NewUsuarios(usuarios *api.UsuarioClient, pageSize int, msgTTL time.Duration) *Usuarios {
	return &Usuarios{
		usuarios: usuarios,
		Msgs:     NewMessages(msgTTL),
		pageSize: pageSize,
		filter:   dto.UsuarioFilter{PageFilter: dto.PageFilter{Page: 1}},
	}
}

func (s *Usuarios) Load(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)

	s.mu.Lock()
	filter := s.filter
	filter.PerPage = s.pageSize
	s.mu.Unlock()

	page, err := s.usuarios.List(ctx, filter)
	if !s.gate.Current(gen) {
		return nil
	}
	if err != nil {
		s.Msgs.PushError(err)
		return err
	}

	s.mu.Lock()
	s.items = page.Data
	s.totalPages = page.TotalPages
	s.mu.Unlock()
	return nil
}

// CambiarRol assigns a new role and reloads the list.
func (s *Usuarios) CambiarRol(parent context.Context, id, rol string) error {
	if err := validateForm(dto.ActualizarRolRequest{Rol: rol}); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.usuarios.UpdateRole(parent, id, rol); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

// Permisos fetches the effective permission list for one user.
func (s *Usuarios) Permisos(parent context.Context, id string) (*dto.PermisosResponse, error) {
	permisos, err := s.usuarios.Permissions(parent, id)
	if err != nil {
		s.Msgs.PushError(err)
		return nil, err
	}
	return permisos, nil
}

// ResetPassword sets a new password for the user.
func (s *Usuarios) ResetPassword(parent context.Context, id, password string) error {
	if err := validateForm(dto.ResetPasswordRequest{Password: password}); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if err := s.usuarios.ResetPassword(parent, id, password); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return nil
}

func (s *Usuarios) Items() []dto.UsuarioResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.UsuarioResponse, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Usuarios) Close() { s.gate.Close() }
