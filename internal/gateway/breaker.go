package gateway

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned while the gateway is fast-failing requests. It
// surfaces to callers as a transport-class failure.
var ErrCircuitOpen = errors.New("el servidor no responde, reintente en unos segundos")

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case breakerClosed:
		return "closed"
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// breaker fast-fails outbound requests after consecutive transport failures.
// Without it, a downed backend would hang every screen for the full transport
// timeout on each keystroke. While open it rejects everything until the
// cool-off elapses, then lets a single probe through: a successful probe
// closes it again, a failed one reopens it. It never retries anything.
type breaker struct {
	mu        sync.Mutex
	state     breakerState
	failures  int
	trippedAt time.Time

	threshold int           // consecutive transport failures to trip open
	cooloff   time.Duration // how long to fast-fail before probing
}

func newBreaker(threshold int, cooloff time.Duration) *breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooloff <= 0 {
		cooloff = 60 * time.Second
	}
	return &breaker{threshold: threshold, cooloff: cooloff}
}

// allow reports whether a request may go out, returning ErrCircuitOpen while
// fast-failing. An open breaker whose cool-off elapsed moves to half-open and
// admits the caller as its probe.
func (b *breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == breakerOpen {
		if time.Since(b.trippedAt) < b.cooloff {
			return ErrCircuitOpen
		}
		b.state = breakerHalfOpen
	}
	return nil
}

// record feeds the outcome of an admitted request back into the breaker.
// Only transport-level errors count; err is nil whenever the server managed
// to produce a response, whatever its status.
func (b *breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.state = breakerClosed
		b.failures = 0
		return
	}

	b.failures++
	b.trippedAt = time.Now()
	if b.state == breakerHalfOpen || b.failures >= b.threshold {
		if b.state != breakerOpen {
			log.Warn().Int("failures", b.failures).Msg("api sin respuesta, activando fast-fail")
		}
		b.state = breakerOpen
		b.failures = 0
	}
}

func (b *breaker) currentState() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
