package screen

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// Gastos drives the expense-tracking view: date-filtered listing, CRUD, the
// expense-category sub-resource and server-rendered CSV/PDF exports.
type Gastos struct {
	gastos    *api.GastoClient
	gate      fetchGate
	Msgs      *Messages
	pageSize  int
	exportDir string

	mu         sync.Mutex
	items      []dto.GastoResponse
	categorias []dto.GastoCategoriaResponse
	filter     dto.GastoFilter
	totalPages int
}

func NewGastos(gastos *api.GastoClient, pageSize int, exportDir string, msgTTL time.Duration) *Gastos {
	return &Gastos{
		gastos:    gastos,
		Msgs:      NewMessages(msgTTL),
		pageSize:  pageSize,
		exportDir: exportDir,
		filter:    dto.GastoFilter{PageFilter: dto.PageFilter{Page: 1}},
	}
}

func (s *Gastos) Load(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)

	s.mu.Lock()
	filter := s.filter
	filter.PerPage = s.pageSize
	s.mu.Unlock()

	page, err := s.gastos.List(ctx, filter)
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

// SetRango narrows the list to a date range (YYYY-MM-DD, empty = unbounded)
// and reloads from page one.
func (s *Gastos) SetRango(parent context.Context, desde, hasta string) error {
	s.mu.Lock()
	s.filter.FechaDesde = desde
	s.filter.FechaHasta = hasta
	s.filter.Page = 1
	s.mu.Unlock()
	return s.Load(parent)
}

func (s *Gastos) Create(parent context.Context, req dto.CrearGastoRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.gastos.Create(parent, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Gastos) Update(parent context.Context, id string, req dto.ActualizarGastoRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.gastos.Update(parent, id, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Gastos) Delete(parent context.Context, id string) error {
	if err := s.gastos.Delete(parent, id); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

// LoadCategorias refreshes the expense-category sub-resource.
func (s *Gastos) LoadCategorias(parent context.Context) error {
	cats, err := s.gastos.ListCategorias(parent)
	if err != nil {
		s.Msgs.PushError(err)
		return err
	}
	s.mu.Lock()
	s.categorias = cats
	s.mu.Unlock()
	return nil
}

func (s *Gastos) CreateCategoria(parent context.Context, req dto.CrearGastoCategoriaRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.gastos.CreateCategoria(parent, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.LoadCategorias(parent)
}

// ExportCSV downloads the server-rendered CSV of the current filter into the
// export directory and returns the file path.
func (s *Gastos) ExportCSV(parent context.Context) (string, error) {
	return s.export(parent, "csv", s.gastos.ExportCSV)
}

// ExportPDF is the PDF counterpart of ExportCSV.
func (s *Gastos) ExportPDF(parent context.Context) (string, error) {
	return s.export(parent, "pdf", s.gastos.ExportPDF)
}

func (s *Gastos) export(parent context.Context, ext string, fn func(context.Context, dto.GastoFilter, string) (int64, error)) (string, error) {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	dest := filepath.Join(s.exportDir, fmt.Sprintf("gastos-%s.%s", time.Now().Format("20060102-150405"), ext))
	n, err := fn(parent, filter, dest)
	if err != nil {
		s.Msgs.PushError(err)
		return "", err
	}
	log.Info().Str("archivo", dest).Int64("bytes", n).Msg("exportacion de gastos completada")
	return dest, nil
}

func (s *Gastos) Items() []dto.GastoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.GastoResponse, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Gastos) Categorias() []dto.GastoCategoriaResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.GastoCategoriaResponse, len(s.categorias))
	copy(out, s.categorias)
	return out
}

func (s *Gastos) Close() { s.gate.Close() }
