package screen

import (
	"context"
	"sync"
	"time"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// Categorias drives the product-category administration view.
type Categorias struct {
	categorias *api.CategoriaClient
	gate       fetchGate
	Msgs       *Messages
	pageSize   int

	mu         sync.Mutex
	items      []dto.CategoriaResponse
	page       int
	totalPages int
}

func NewCategorias(categorias *api.CategoriaClient, pageSize int, msgTTL time.Duration) *Categorias {
	return &Categorias{categorias: categorias, Msgs: NewMessages(msgTTL), pageSize: pageSize, page: 1}
}

func (s *Categorias) Load(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)

	s.mu.Lock()
	filter := dto.CategoriaFilter{PageFilter: dto.PageFilter{Page: s.page, PerPage: s.pageSize}}
	s.mu.Unlock()

	page, err := s.categorias.List(ctx, filter)
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

func (s *Categorias) Create(parent context.Context, req dto.CrearCategoriaRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.categorias.Create(parent, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Categorias) Update(parent context.Context, id string, req dto.ActualizarCategoriaRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.categorias.Update(parent, id, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Categorias) Delete(parent context.Context, id string) error {
	if err := s.categorias.Delete(parent, id); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Categorias) Items() []dto.CategoriaResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.CategoriaResponse, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Categorias) Close() { s.gate.Close() }
