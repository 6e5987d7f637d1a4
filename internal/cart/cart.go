// Package cart implements the point-of-sale cart as a standalone state
// machine, independent of any rendering concern. Mutations either produce the
// next state or a typed rejection leaving the cart untouched; totals are pure
// functions recomputed on every read.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// itbisRate is the Dominican value-added tax, applied per line only when the
// line is marked tax-inclusive.
var itbisRate = decimal.NewFromFloat(0.18)

// State of the engine.
type State int

const (
	Empty State = iota
	Populated
	Submitting
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MetodoPago is the payment method selected at checkout.
type MetodoPago string

const (
	Efectivo      MetodoPago = "efectivo"
	Tarjeta       MetodoPago = "tarjeta"
	Transferencia MetodoPago = "transferencia"
)

func (m MetodoPago) Valid() bool {
	switch m {
	case Efectivo, Tarjeta, Transferencia:
		return true
	}
	return false
}

// Line is one product entry in the cart. Cantidad is always >= 1 and
// never exceeds StockDisponible at the time of the last successful
// mutation.
type Line struct {
	ProductoID      string
	Nombre          string
	PrecioUnitario  decimal.Decimal
	Cantidad        int
	ConImpuesto     bool
	CostoUnitario   decimal.Decimal
	Ganancia        decimal.Decimal // per-unit profit, server-computed
	MargenPct       decimal.Decimal // per-unit margin percentage, server-computed
	StockDisponible int
}

// Totals is the derived money view of the cart. Never cached.
type Totals struct {
	Subtotal      decimal.Decimal
	Impuesto      decimal.Decimal
	Total         decimal.Decimal
	GananciaTotal decimal.Decimal
	MargenPromPct decimal.Decimal
	Unidades      int
}

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrSubmitInFlight rejects a second submit, and any cart mutation, while a
// checkout is already in flight. The attempt is ignored, never queued.
var ErrSubmitInFlight = errors.New("ya hay una venta en proceso")

// ErrCarritoVacio rejects submitting an empty cart.
var ErrCarritoVacio = errors.New("el carrito esta vacio")

// StockError is the stock-exhausted signal raised before any network call
// when a mutation would push a line past its available stock.
type StockError struct {
	Producto   string
	Disponible int
	Solicitado int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %d, solicitado %d",
		e.Producto, e.Disponible, e.Solicitado)
}

// StockValidationError consolidates every offending line found by the
// pre-submit check, one sentence per line.
type StockValidationError struct {
	Lineas []StockError
}

func (e *StockValidationError) Error() string {
	msgs := make([]string, 0, len(e.Lineas))
	for i := range e.Lineas {
		msgs = append(msgs, e.Lineas[i].Error())
	}
	return strings.Join(msgs, ". ")
}

// ─── Engine ──────────────────────────────────────────────────────────────────

// Engine owns the cart for one point-of-sale screen session. The UI event
// loop is single-threaded, but submission overlaps user input, so state is
// still guarded by a mutex.
type Engine struct {
	mu      sync.Mutex
	lines   []*Line
	index   map[string]int // productoID → position in lines
	state   State
	creator api.VentaCreator
}

func NewEngine(creator api.VentaCreator) *Engine {
	return &Engine{
		index:   make(map[string]int),
		state:   Empty,
		creator: creator,
	}
}

// State returns the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Lines returns a copy of the cart in insertion order.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Line, len(e.lines))
	for i, l := range e.lines {
		out[i] = *l
	}
	return out
}

// Len reports the number of distinct lines.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

// Add puts one unit of p into the cart. Adding a product already present
// merges into its existing line (+1) instead of duplicating it. A unit past
// the available stock is rejected with *StockError and the cart is left
// unchanged. While a checkout is in flight the cart is frozen and Add is
// rejected with ErrSubmitInFlight.
func (e *Engine) Add(p dto.ProductoResponse) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		return ErrSubmitInFlight
	}
	if i, ok := e.index[p.ID]; ok {
		line := e.lines[i]
		if line.Cantidad+1 > line.StockDisponible {
			return &StockError{Producto: line.Nombre, Disponible: line.StockDisponible, Solicitado: line.Cantidad + 1}
		}
		line.Cantidad++
		e.state = Populated
		return nil
	}

	if p.Stock < 1 {
		return &StockError{Producto: p.Nombre, Disponible: p.Stock, Solicitado: 1}
	}
	e.lines = append(e.lines, &Line{
		ProductoID:      p.ID,
		Nombre:          p.Nombre,
		PrecioUnitario:  p.PrecioVenta,
		Cantidad:        1,
		ConImpuesto:     p.ConImpuesto,
		CostoUnitario:   p.PrecioCosto,
		Ganancia:        p.Ganancia,
		MargenPct:       p.MargenPct,
		StockDisponible: p.Stock,
	})
	e.index[p.ID] = len(e.lines) - 1
	e.state = Populated
	return nil
}

// SetQuantity sets the line's quantity directly. n < 1 removes the line (a
// zero-quantity line is never persisted); n past the available stock is
// rejected, not clamped. Rejected with ErrSubmitInFlight while a checkout is
// in flight.
func (e *Engine) SetQuantity(productoID string, n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		return ErrSubmitInFlight
	}
	i, ok := e.index[productoID]
	if !ok {
		return fmt.Errorf("producto %s no esta en el carrito", productoID)
	}
	if n < 1 {
		e.removeAt(i)
		return nil
	}
	line := e.lines[i]
	if n > line.StockDisponible {
		return &StockError{Producto: line.Nombre, Disponible: line.StockDisponible, Solicitado: n}
	}
	line.Cantidad = n
	return nil
}

// Remove drops the line for productoID. Removing an absent product, or
// removing while a checkout is in flight, is a no-op.
func (e *Engine) Remove(productoID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Submitting {
		return
	}
	if i, ok := e.index[productoID]; ok {
		e.removeAt(i)
	}
}

// removeAt must be called under lock.
func (e *Engine) removeAt(i int) {
	delete(e.index, e.lines[i].ProductoID)
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	for j := i; j < len(e.lines); j++ {
		e.index[e.lines[j].ProductoID] = j
	}
	if len(e.lines) == 0 {
		e.state = Empty
	}
}

// Clear empties the cart. Ignored while a checkout is in flight.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Submitting {
		return
	}
	e.clearLocked()
}

func (e *Engine) clearLocked() {
	e.lines = nil
	e.index = make(map[string]int)
	e.state = Empty
}

// RefreshStock updates each line's available stock from the latest catalog
// snapshot. It does not alter quantities: a line left over-stock is caught by
// the pre-submit validation.
func (e *Engine) RefreshStock(productos []dto.ProductoResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range productos {
		if i, ok := e.index[p.ID]; ok {
			e.lines[i].StockDisponible = p.Stock
		}
	}
}

// Totals recomputes the money view from scratch:
//
//	subtotal = Σ precio × cantidad
//	impuesto = Σ (con_impuesto ? precio × cantidad × 0.18 : 0)
//	total    = subtotal + impuesto
//	ganancia = Σ ganancia_unitaria × cantidad
//	margen   = Σ margen_pct × cantidad / Σ cantidad
//
// The average margin weights the per-unit percentage by quantity, matching
// the server's reporting convention.
func (e *Engine) Totals() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalsLocked()
}

func (e *Engine) totalsLocked() Totals {
	t := Totals{
		Subtotal:      decimal.Zero,
		Impuesto:      decimal.Zero,
		GananciaTotal: decimal.Zero,
		MargenPromPct: decimal.Zero,
	}
	margenPonderado := decimal.Zero
	for _, l := range e.lines {
		qty := decimal.NewFromInt(int64(l.Cantidad))
		lineTotal := l.PrecioUnitario.Mul(qty)
		t.Subtotal = t.Subtotal.Add(lineTotal)
		if l.ConImpuesto {
			t.Impuesto = t.Impuesto.Add(lineTotal.Mul(itbisRate))
		}
		t.GananciaTotal = t.GananciaTotal.Add(l.Ganancia.Mul(qty))
		margenPonderado = margenPonderado.Add(l.MargenPct.Mul(qty))
		t.Unidades += l.Cantidad
	}
	t.Total = t.Subtotal.Add(t.Impuesto)
	if t.Unidades > 0 {
		t.MargenPromPct = margenPonderado.Div(decimal.NewFromInt(int64(t.Unidades)))
	}
	return t
}

// buildPayload projects the immutable checkout payload from the current
// lines. Must be called under lock; the copy it returns is what shields an
// in-flight submission from later cart mutations.
func (e *Engine) buildPayload(metodo MetodoPago) dto.CrearVentaRequest {
	t := e.totalsLocked()
	items := make([]dto.VentaItemRequest, 0, len(e.lines))
	for _, l := range e.lines {
		items = append(items, dto.VentaItemRequest{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			CostoUnitario:  l.CostoUnitario,
			Ganancia:       l.Ganancia,
			MargenPct:      l.MargenPct,
		})
	}
	return dto.CrearVentaRequest{
		ClienteRef:    uuid.NewString(),
		Items:         items,
		MetodoPago:    string(metodo),
		Subtotal:      t.Subtotal,
		Impuesto:      t.Impuesto,
		Total:         t.Total,
		GananciaTotal: t.GananciaTotal,
		MargenPromPct: t.MargenPromPct,
	}
}

// Submit runs the checkout:
//
//  1. a submit already in flight is rejected with ErrSubmitInFlight; the
//     cart stays frozen until the in-flight one resolves, so the success
//     clear can never swallow lines added in between;
//  2. an empty cart is rejected;
//  3. every line is re-checked against the latest stock snapshot — any
//     violation aborts with a consolidated *StockValidationError before any
//     network call, cart unchanged;
//  4. the payload is projected, state moves to Submitting and the sale is
//     posted;
//  5. success clears the cart atomically with the Completed transition
//     (never before — a failed submit must not lose the cart); failure
//     preserves the cart in Failed so the user can retry.
//
// The engine does not decrement stock locally; callers refresh the catalog
// after a completed sale.
func (e *Engine) Submit(ctx context.Context, metodo MetodoPago) (*dto.VentaResponse, error) {
	if !metodo.Valid() {
		return nil, fmt.Errorf("metodo de pago invalido: %q", metodo)
	}

	e.mu.Lock()
	if e.state == Submitting {
		e.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if len(e.lines) == 0 {
		e.mu.Unlock()
		return nil, ErrCarritoVacio
	}

	var violations []StockError
	for _, l := range e.lines {
		if l.Cantidad > l.StockDisponible {
			violations = append(violations, StockError{
				Producto:   l.Nombre,
				Disponible: l.StockDisponible,
				Solicitado: l.Cantidad,
			})
		}
	}
	if len(violations) > 0 {
		e.mu.Unlock()
		return nil, &StockValidationError{Lineas: violations}
	}

	payload := e.buildPayload(metodo)
	e.state = Submitting
	e.mu.Unlock()

	resp, err := e.creator.Create(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = Failed
		return nil, err
	}
	e.clearLocked()
	e.state = Completed
	return resp, nil
}
