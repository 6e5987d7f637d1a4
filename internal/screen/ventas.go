package screen

import (
	"context"
	"sync"
	"time"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// Ventas drives the sales-history view: date-range filtered listing, sale
// detail and deletion (void).
type Ventas struct {
	ventas   *api.VentaClient
	gate     fetchGate
	Msgs     *Messages
	pageSize int

	mu         sync.Mutex
	items      []dto.VentaResponse
	filter     dto.VentaFilter
	totalPages int
}

func NewVentas(ventas *api.VentaClient, pageSize int, msgTTL time.Duration) *Ventas {
	return &Ventas{
		ventas:   ventas,
		Msgs:     NewMessages(msgTTL),
		pageSize: pageSize,
		filter:   dto.VentaFilter{PageFilter: dto.PageFilter{Page: 1}},
	}
}

func (s *Ventas) Load(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)

	s.mu.Lock()
	filter := s.filter
	filter.PerPage = s.pageSize
	s.mu.Unlock()

	page, err := s.ventas.List(ctx, filter)
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

// SetRango filters the history to a date range and reloads from page one.
func (s *Ventas) SetRango(parent context.Context, desde, hasta string) error {
	s.mu.Lock()
	s.filter.FechaDesde = desde
	s.filter.FechaHasta = hasta
	s.filter.Page = 1
	s.mu.Unlock()
	return s.Load(parent)
}

// GoToPage jumps to page n (1-based) and reloads.
func (s *Ventas) GoToPage(parent context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.filter.Page = n
	s.mu.Unlock()
	return s.Load(parent)
}

// Detalle fetches one sale in full.
func (s *Ventas) Detalle(parent context.Context, id string) (*dto.VentaResponse, error) {
	venta, err := s.ventas.Get(parent, id)
	if err != nil {
		s.Msgs.PushError(err)
		return nil, err
	}
	return venta, nil
}

// Anular deletes (voids) a sale and reloads the list.
func (s *Ventas) Anular(parent context.Context, id string) error {
	if err := s.ventas.Delete(parent, id); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Ventas) Items() []dto.VentaResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.VentaResponse, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Ventas) Close() { s.gate.Close() }
