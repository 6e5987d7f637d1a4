package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/cart"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// POS drives the sales-capture view: a debounced product picker feeding the
// cart engine, payment method selection and checkout.
type POS struct {
	productos *api.ProductoClient
	Cart      *cart.Engine
	gate      fetchGate
	debounce  *Debouncer
	Msgs      *Messages
	pageSize  int

	mu       sync.Mutex
	catalogo []dto.ProductoResponse
	busqueda string
	page     int
}

func NewPOS(productos *api.ProductoClient, engine *cart.Engine, pageSize int, debounce, msgTTL time.Duration) *POS {
	return &POS{
		productos: productos,
		Cart:      engine,
		debounce:  NewDebouncer(debounce),
		Msgs:      NewMessages(msgTTL),
		pageSize:  pageSize,
		page:      1,
	}
}

// LoadCatalogo fetches the pick list and pushes the fresh stock figures into
// the cart, since the engine never decrements stock locally.
func (s *POS) LoadCatalogo(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)

	s.mu.Lock()
	filter := dto.ProductoFilter{
		Busqueda:   s.busqueda,
		PageFilter: dto.PageFilter{Page: s.page, PerPage: s.pageSize},
	}
	s.mu.Unlock()

	page, err := s.productos.List(ctx, filter)
	if !s.gate.Current(gen) {
		return nil
	}
	if err != nil {
		s.Msgs.PushError(err)
		return err
	}

	s.mu.Lock()
	s.catalogo = page.Data
	s.mu.Unlock()
	s.Cart.RefreshStock(page.Data)
	return nil
}

// Buscar updates the picker search term with the usual debounce.
func (s *POS) Buscar(parent context.Context, term string) {
	s.mu.Lock()
	s.busqueda = term
	s.page = 1
	s.mu.Unlock()
	s.debounce.Do(func() {
		if err := s.LoadCatalogo(parent); err != nil {
			log.Debug().Err(err).Msg("busqueda de punto de venta fallida")
		}
	})
}

// Agregar adds one unit of the picked product to the cart. A stock-exhausted
// rejection becomes a transient message; the cart is untouched.
func (s *POS) Agregar(productoID string) error {
	s.mu.Lock()
	var producto *dto.ProductoResponse
	for i := range s.catalogo {
		if s.catalogo[i].ID == productoID {
			producto = &s.catalogo[i]
			break
		}
	}
	s.mu.Unlock()

	if producto == nil {
		err := errors.New("producto no encontrado en el catalogo")
		s.Msgs.PushError(err)
		return err
	}
	if err := s.Cart.Add(*producto); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return nil
}

// CambiarCantidad sets a line's quantity directly; n < 1 removes the line.
func (s *POS) CambiarCantidad(productoID string, n int) error {
	if err := s.Cart.SetQuantity(productoID, n); err != nil {
		s.Msgs.PushError(err)
		return err
	}
	return nil
}

// Cobrar submits the cart. A duplicate click while a submit is in flight is
// swallowed silently (no message, no queueing). On success the catalog is
// reloaded so stock figures come back from the server.
func (s *POS) Cobrar(parent context.Context, metodo cart.MetodoPago) (*dto.VentaResponse, error) {
	venta, err := s.Cart.Submit(parent, metodo)
	if err != nil {
		if errors.Is(err, cart.ErrSubmitInFlight) {
			return nil, err
		}
		s.Msgs.PushError(err)
		return nil, err
	}

	log.Info().Str("venta_id", venta.ID).Str("metodo", string(metodo)).Msg("venta registrada")
	if loadErr := s.LoadCatalogo(parent); loadErr != nil {
		log.Warn().Err(loadErr).Msg("no se pudo refrescar el catalogo tras la venta")
	}
	return venta, nil
}

// Catalogo returns the current pick list.
func (s *POS) Catalogo() []dto.ProductoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.ProductoResponse, len(s.catalogo))
	copy(out, s.catalogo)
	return out
}

func (s *POS) Close() {
	s.debounce.Stop()
	s.gate.Close()
}
