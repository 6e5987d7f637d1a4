package screen

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// Catalog drives the product administration view: paged listing with a
// debounced search box, plus create/update/delete and image upload.
type Catalog struct {
	productos *api.ProductoClient
	gate      fetchGate
	debounce  *Debouncer
	Msgs      *Messages
	pageSize  int

	mu         sync.Mutex
	items      []dto.ProductoResponse
	page       int
	totalPages int
	total      int64
	busqueda   string
	categoria  string
	loading    bool
}

func NewCatalog(productos *api.ProductoClient, pageSize int, debounce, msgTTL time.Duration) *Catalog {
	return &Catalog{
		productos: productos,
		debounce:  NewDebouncer(debounce),
		Msgs:      NewMessages(msgTTL),
		pageSize:  pageSize,
		page:      1,
	}
}

// Load fetches the current page. A fetch superseded by a newer one (search
// change, pagination) is discarded on arrival regardless of order.
func (s *Catalog) Load(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)
	s.setLoading(true)

	s.mu.Lock()
	filter := dto.ProductoFilter{
		Busqueda:    s.busqueda,
		CategoriaID: s.categoria,
		PageFilter:  dto.PageFilter{Page: s.page, PerPage: s.pageSize},
	}
	s.mu.Unlock()

	page, err := s.productos.List(ctx, filter)
	if !s.gate.Current(gen) {
		// Superseded while in flight — drop the result, fresher state rules.
		return nil
	}
	s.setLoading(false)
	if err != nil {
		s.Msgs.PushError(err)
		return err
	}

	s.mu.Lock()
	s.items = page.Data
	s.totalPages = page.TotalPages
	s.total = page.TotalElements
	s.mu.Unlock()
	return nil
}

// Search updates the search term and schedules a debounced reload from page
// one.
func (s *Catalog) Search(parent context.Context, term string) {
	s.mu.Lock()
	s.busqueda = term
	s.page = 1
	s.mu.Unlock()
	s.debounce.Do(func() {
		if err := s.Load(parent); err != nil {
			log.Debug().Err(err).Msg("busqueda de productos fallida")
		}
	})
}

// FilterCategoria narrows the list to one category and reloads.
func (s *Catalog) FilterCategoria(parent context.Context, categoriaID string) error {
	s.mu.Lock()
	s.categoria = categoriaID
	s.page = 1
	s.mu.Unlock()
	return s.Load(parent)
}

// GoToPage jumps to page n (1-based) and reloads.
func (s *Catalog) GoToPage(parent context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.page = n
	s.mu.Unlock()
	return s.Load(parent)
}

// Create validates the form locally, posts it, and reloads on success. A
// failed write leaves the current list (and the caller's form state) intact.
func (s *Catalog) Create(parent context.Context, req dto.CrearProductoRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.productos.Create(parent, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Catalog) Update(parent context.Context, id string, req dto.ActualizarProductoRequest) error {
	if err := validateForm(req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	if _, err := s.productos.Update(parent, id, req); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

func (s *Catalog) Delete(parent context.Context, id string) error {
	if err := s.productos.Delete(parent, id); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

// UploadImagen attaches an image to a product and reloads so the new
// filename shows up.
func (s *Catalog) UploadImagen(parent context.Context, productoID, filename string, r io.Reader) error {
	if _, err := s.productos.UploadImagen(parent, productoID, filename, r); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return s.Load(parent)
}

// Items returns the current page's products.
func (s *Catalog) Items() []dto.ProductoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.ProductoResponse, len(s.items))
	copy(out, s.items)
	return out
}

// Pagination returns (page, totalPages, totalElements).
func (s *Catalog) Pagination() (int, int, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.totalPages, s.total
}

// Loading reports whether a fetch is in flight.
func (s *Catalog) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Catalog) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Close tears the screen down: pending debounce and in-flight fetches are
// cancelled so nothing updates a dismissed view.
func (s *Catalog) Close() {
	s.debounce.Stop()
	s.gate.Close()
}
