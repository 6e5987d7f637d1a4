package screen

import (
	"context"
	"sync"
	"time"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
)

// DashboardData is the server-computed aggregate snapshot the dashboard
// renders. Pure pass-through: nothing is recomputed client-side.
type DashboardData struct {
	Resumen       *dto.ResumenGeneralResponse
	VentasDiarias []dto.VentaDiariaPunto
	VentasPorHora []dto.VentaPorHoraPunto
	Tendencia     []dto.TendenciaPunto
	MasVendidos   []dto.ProductoVendido
	MetodosPago   []dto.MetodoPagoResumen
	BajoStock     []dto.ProductoBajoStock
}

// Dashboard drives the reporting view.
type Dashboard struct {
	reportes *api.ReporteClient
	gate     fetchGate
	Msgs     *Messages

	mu    sync.Mutex
	data  DashboardData
	rango dto.RangoFechas
}

func NewDashboard(reportes *api.ReporteClient, msgTTL time.Duration) *Dashboard {
	return &Dashboard{reportes: reportes, Msgs: NewMessages(msgTTL)}
}

// Load fetches every report section sequentially. The first failure aborts
// and surfaces; already-fetched sections of a superseded load are discarded.
func (s *Dashboard) Load(parent context.Context) error {
	ctx, gen := s.gate.Begin(parent)

	s.mu.Lock()
	rango := s.rango
	s.mu.Unlock()

	var data DashboardData
	err := func() error {
		var err error
		if data.Resumen, err = s.reportes.ResumenGeneral(ctx); err != nil {
			return err
		}
		if data.VentasDiarias, err = s.reportes.VentasDiarias(ctx, rango); err != nil {
			return err
		}
		if data.VentasPorHora, err = s.reportes.VentasPorHora(ctx, rango); err != nil {
			return err
		}
		if data.Tendencia, err = s.reportes.TendenciaVentas(ctx, rango); err != nil {
			return err
		}
		if data.MasVendidos, err = s.reportes.ProductosMasVendidos(ctx, rango); err != nil {
			return err
		}
		if data.MetodosPago, err = s.reportes.ResumenMetodoPago(ctx, rango); err != nil {
			return err
		}
		data.BajoStock, err = s.reportes.ProductosBajoStock(ctx)
		return err
	}()

	if !s.gate.Current(gen) {
		return nil
	}
	if err != nil {
		s.Msgs.PushError(err)
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// SetRango bounds the date-filtered sections and reloads.
func (s *Dashboard) SetRango(parent context.Context, desde, hasta string) error {
	s.mu.Lock()
	s.rango = dto.RangoFechas{Desde: desde, Hasta: hasta}
	s.mu.Unlock()
	return s.Load(parent)
}

// Data returns the last loaded snapshot.
func (s *Dashboard) Data() DashboardData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

func (s *Dashboard) Close() { s.gate.Close() }
