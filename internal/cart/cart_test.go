package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVentaCreator records submissions and can block or fail on demand.
type stubVentaCreator struct {
	mu       sync.Mutex
	calls    int
	payloads []dto.CrearVentaRequest
	fail     error
	block    chan struct{} // when set, Create waits until closed
}

func (s *stubVentaCreator) Create(_ context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	s.mu.Lock()
	s.calls++
	s.payloads = append(s.payloads, req)
	block := s.block
	fail := s.fail
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if fail != nil {
		return nil, fail
	}
	return &dto.VentaResponse{ID: "venta-1", Total: req.Total}, nil
}

func (s *stubVentaCreator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var _ api.VentaCreator = (*stubVentaCreator)(nil)

func producto(id, nombre string, precio float64, stock int, conImpuesto bool) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          id,
		Nombre:      nombre,
		PrecioVenta: decimal.NewFromFloat(precio),
		Stock:       stock,
		ConImpuesto: conImpuesto,
	}
}

// ── Mutations ─────────────────────────────────────────────────────────────────

func TestAddMergesSameProduct(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})

	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, true)))
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, true)))

	lines := e.Lines()
	require.Len(t, lines, 1, "same product must merge, not duplicate")
	assert.Equal(t, 2, lines[0].Cantidad)
	assert.Equal(t, Populated, e.State())

	// Equivalent path: add once then set quantity +1.
	e2 := NewEngine(&stubVentaCreator{})
	require.NoError(t, e2.Add(producto("p1", "Cafe", 100, 5, true)))
	require.NoError(t, e2.SetQuantity("p1", 2))
	assert.Equal(t, e2.Lines(), lines)
}

func TestAddRejectsExhaustedStock(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})

	err := e.Add(producto("p1", "Cafe", 100, 0, false))
	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Disponible)
	assert.Equal(t, Empty, e.State())
	assert.Empty(t, e.Lines())
}

func TestAddStopsAtStockCeiling(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	p := producto("p1", "Cafe", 100, 2, false)

	require.NoError(t, e.Add(p))
	require.NoError(t, e.Add(p))
	err := e.Add(p)

	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.Solicitado)
	// Prior state preserved unchanged
	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Cantidad)
}

func TestSetQuantityRejectsOverStockWithoutClamping(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 3, false)))

	err := e.SetQuantity("p1", 10)
	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, e.Lines()[0].Cantidad, "rejected mutation must not clamp")
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 3, false)))
	require.NoError(t, e.Add(producto("p2", "Te", 50, 3, false)))

	require.NoError(t, e.SetQuantity("p1", 0))
	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductoID)
	assert.Equal(t, Populated, e.State())

	require.NoError(t, e.SetQuantity("p2", -1))
	assert.Empty(t, e.Lines())
	assert.Equal(t, Empty, e.State())
}

func TestRemoveLastLineEmptiesCart(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 3, false)))

	e.Remove("p1")
	assert.Equal(t, Empty, e.State())

	// Removing an absent product is a no-op
	e.Remove("p1")
	assert.Equal(t, Empty, e.State())
}

func TestClearAlwaysYieldsEmpty(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 3, true)))
	require.NoError(t, e.Add(producto("p2", "Te", 50, 3, false)))

	e.Clear()
	assert.Equal(t, Empty, e.State())
	assert.Empty(t, e.Lines())
	assert.True(t, e.Totals().Total.IsZero())
}

func TestQuantityNeverExceedsStockAcrossSequences(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	p1 := producto("p1", "Cafe", 100, 4, false)
	p2 := producto("p2", "Te", 50, 2, false)

	_ = e.Add(p1)
	_ = e.Add(p2)
	_ = e.SetQuantity("p1", 4)
	_ = e.Add(p1)              // rejected: 5 > 4
	_ = e.SetQuantity("p2", 9) // rejected
	_ = e.Add(p2)
	e.Remove("p1")
	_ = e.Add(p1)

	for _, l := range e.Lines() {
		assert.LessOrEqual(t, l.Cantidad, l.StockDisponible, "line %s", l.ProductoID)
		assert.GreaterOrEqual(t, l.Cantidad, 1)
	}
}

// ── Totals ────────────────────────────────────────────────────────────────────

func TestTotalsITBIS(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	// {price:100, qty:2, taxInclusive:true}, {price:50, qty:1, taxInclusive:false}
	p1 := producto("p1", "Cafe", 100, 10, true)
	require.NoError(t, e.Add(p1))
	require.NoError(t, e.Add(p1))
	require.NoError(t, e.Add(producto("p2", "Te", 50, 10, false)))

	tot := e.Totals()
	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", tot.Subtotal)
	assert.True(t, tot.Impuesto.Equal(decimal.NewFromInt(36)), "impuesto %s", tot.Impuesto)
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(286)), "total %s", tot.Total)
}

func TestTotalEqualsSubtotalPlusTax(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	require.NoError(t, e.Add(producto("p1", "Cafe", 33.33, 10, true)))
	require.NoError(t, e.Add(producto("p2", "Te", 17.77, 10, true)))
	require.NoError(t, e.SetQuantity("p1", 7))

	tot := e.Totals()
	assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.Impuesto)),
		"total %s != subtotal %s + impuesto %s", tot.Total, tot.Subtotal, tot.Impuesto)
}

func TestAverageMarginIsQuantityWeighted(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})
	p1 := producto("p1", "Cafe", 100, 10, false)
	p1.Ganancia = decimal.NewFromInt(20)
	p1.MargenPct = decimal.NewFromInt(20)
	p2 := producto("p2", "Te", 50, 10, false)
	p2.Ganancia = decimal.NewFromInt(5)
	p2.MargenPct = decimal.NewFromInt(10)

	require.NoError(t, e.Add(p1))
	require.NoError(t, e.SetQuantity("p1", 3))
	require.NoError(t, e.Add(p2))

	tot := e.Totals()
	// ganancia 3×20 + 1×5 = 65; margen (3×20 + 1×10)/4 = 17.5 — weighted by
	// quantity, not revenue.
	assert.True(t, tot.GananciaTotal.Equal(decimal.NewFromInt(65)), "ganancia %s", tot.GananciaTotal)
	assert.True(t, tot.MargenPromPct.Equal(decimal.NewFromFloat(17.5)), "margen %s", tot.MargenPromPct)
}

// ── Submit ────────────────────────────────────────────────────────────────────

func TestSubmitSuccessClearsCart(t *testing.T) {
	creator := &stubVentaCreator{}
	e := NewEngine(creator)
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, true)))

	venta, err := e.Submit(context.Background(), Efectivo)
	require.NoError(t, err)
	require.NotNil(t, venta)
	assert.Equal(t, Completed, e.State())
	assert.Empty(t, e.Lines())
	assert.Equal(t, 1, creator.callCount())

	payload := creator.payloads[0]
	assert.Equal(t, "efectivo", payload.MetodoPago)
	assert.NotEmpty(t, payload.ClienteRef)
	assert.True(t, payload.Total.Equal(decimal.NewFromInt(118)))
}

func TestSubmitFailurePreservesCart(t *testing.T) {
	creator := &stubVentaCreator{fail: errors.New("500 desde el servidor")}
	e := NewEngine(creator)
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, false)))

	_, err := e.Submit(context.Background(), Tarjeta)
	require.Error(t, err)
	assert.Equal(t, Failed, e.State())
	require.Len(t, e.Lines(), 1, "cart must survive a failed submit for retry")

	// Retry after the failure succeeds.
	creator.fail = nil
	_, err = e.Submit(context.Background(), Tarjeta)
	require.NoError(t, err)
	assert.Equal(t, Completed, e.State())
}

func TestSubmitAbortsOnStaleStockBeforeNetwork(t *testing.T) {
	creator := &stubVentaCreator{}
	e := NewEngine(creator)
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, false)))
	require.NoError(t, e.SetQuantity("p1", 4))
	require.NoError(t, e.Add(producto("p2", "Te", 50, 3, false)))
	require.NoError(t, e.SetQuantity("p2", 3))

	// Stock changed server-side since add-to-cart.
	e.RefreshStock([]dto.ProductoResponse{
		producto("p1", "Cafe", 100, 2, false),
		producto("p2", "Te", 50, 1, false),
	})

	_, err := e.Submit(context.Background(), Efectivo)
	var sve *StockValidationError
	require.ErrorAs(t, err, &sve)
	assert.Len(t, sve.Lineas, 2, "one sentence per offending line")
	assert.Equal(t, 0, creator.callCount(), "no network call on pre-submit violation")
	assert.Len(t, e.Lines(), 2, "cart unchanged")
	assert.NotEqual(t, Submitting, e.State())
}

func TestDoubleSubmitIsIgnored(t *testing.T) {
	creator := &stubVentaCreator{block: make(chan struct{})}
	e := NewEngine(creator)
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, false)))

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background(), Efectivo)
		done <- err
	}()

	// Wait until the first submit is in flight.
	require.Eventually(t, func() bool { return e.State() == Submitting }, time.Second, time.Millisecond)

	_, err := e.Submit(context.Background(), Efectivo)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(creator.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, creator.callCount(), "rapid double-click must produce one network call")
}

func TestSubmitRejectsEmptyCartAndBadMethod(t *testing.T) {
	e := NewEngine(&stubVentaCreator{})

	_, err := e.Submit(context.Background(), Efectivo)
	assert.ErrorIs(t, err, ErrCarritoVacio)

	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, false)))
	_, err = e.Submit(context.Background(), MetodoPago("bitcoin"))
	assert.Error(t, err)
}

func TestCartFrozenWhileSubmitting(t *testing.T) {
	creator := &stubVentaCreator{block: make(chan struct{})}
	e := NewEngine(creator)
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, false)))

	done := make(chan struct{})
	go func() {
		_, _ = e.Submit(context.Background(), Efectivo)
		close(done)
	}()
	require.Eventually(t, func() bool { return creator.callCount() == 1 }, time.Second, time.Millisecond)

	// Every mutation bounces off the in-flight checkout.
	assert.ErrorIs(t, e.Add(producto("p2", "Te", 50, 3, false)), ErrSubmitInFlight)
	assert.ErrorIs(t, e.SetQuantity("p1", 5), ErrSubmitInFlight)
	e.Remove("p1")
	e.Clear()
	require.Len(t, e.Lines(), 1, "cart must stay frozen until the checkout resolves")
	assert.Equal(t, Submitting, e.State())

	close(creator.block)
	<-done

	payload := creator.payloads[0]
	require.Len(t, payload.Items, 1)
	assert.Equal(t, 1, payload.Items[0].Cantidad, "in-flight payload must keep its snapshot")
	assert.Equal(t, Completed, e.State())
}

func TestSubmitAddSubmitPostsSingleSale(t *testing.T) {
	creator := &stubVentaCreator{block: make(chan struct{})}
	e := NewEngine(creator)
	require.NoError(t, e.Add(producto("p1", "Cafe", 100, 5, false)))

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background(), Efectivo)
		done <- err
	}()
	require.Eventually(t, func() bool { return e.State() == Submitting }, time.Second, time.Millisecond)

	// An add between the two clicks must not reopen the submit path.
	assert.ErrorIs(t, e.Add(producto("p2", "Te", 50, 3, false)), ErrSubmitInFlight)
	_, err := e.Submit(context.Background(), Efectivo)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(creator.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, creator.callCount(), "one checkout, one sale")
	assert.Empty(t, e.Lines())
}
