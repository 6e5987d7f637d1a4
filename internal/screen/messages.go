package screen

import (
	"errors"
	"sync"
	"time"

	"github.com/romeroalan26/posfacturard-console/internal/apierror"
	"github.com/romeroalan26/posfacturard-console/internal/cart"
)

// Kind classifies a user-visible message.
type Kind int

const (
	KindInfo       Kind = iota
	KindAuth            // login-form errors, dismissed a second later than the rest
	KindValidation      // server/business rejections shown verbatim
	KindStock           // client-side stock insufficiency
	KindTransport       // generic network/server failures
)

// defaultMessageTTL applies when the caller passes no usable TTL.
const defaultMessageTTL = 4 * time.Second

// Message is one transient notice. It disappears on its own; screens only
// read Active.
type Message struct {
	Kind      Kind
	Text      string
	expiresAt time.Time
}

// Messages is the per-screen transient message area.
type Messages struct {
	mu   sync.Mutex
	list []Message
	ttl  time.Duration
	now  func() time.Time // replaceable in tests
}

// NewMessages builds a message area whose notices auto-dismiss after ttl
// (MESSAGE_TTL_SECONDS); ttl <= 0 falls back to 4s. Login-form errors get an
// extra second so they outlive the redraw after a failed attempt.
func NewMessages(ttl time.Duration) *Messages {
	if ttl <= 0 {
		ttl = defaultMessageTTL
	}
	return &Messages{ttl: ttl, now: time.Now}
}

// Push adds a message with the TTL of its kind.
func (m *Messages) Push(kind Kind, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl := m.ttl
	if kind == KindAuth {
		ttl += time.Second
	}
	m.list = append(m.list, Message{Kind: kind, Text: text, expiresAt: m.now().Add(ttl)})
}

// PushError classifies err per the error taxonomy and pushes it. Transport
// faults get a generic text; everything server-interpreted is shown verbatim.
func (m *Messages) PushError(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, apierror.ErrUnauthenticated):
		// The gateway already forced the logout; nothing to show here.
	case isStockErr(err):
		m.Push(KindStock, err.Error())
	case isValidationErr(err):
		m.Push(KindValidation, err.Error())
	case apierror.IsTransport(err):
		m.Push(KindTransport, "No se pudo contactar el servidor. Intente de nuevo.")
	default:
		m.Push(KindValidation, err.Error())
	}
}

// Active returns the not-yet-expired messages, pruning the rest.
func (m *Messages) Active() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	kept := m.list[:0]
	for _, msg := range m.list {
		if msg.expiresAt.After(now) {
			kept = append(kept, msg)
		}
	}
	m.list = kept
	out := make([]Message, len(kept))
	copy(out, kept)
	return out
}

func isStockErr(err error) bool {
	var se *cart.StockError
	var sve *cart.StockValidationError
	return errors.As(err, &se) || errors.As(err, &sve)
}

func isValidationErr(err error) bool {
	var ve *apierror.ValidationError
	var ae *apierror.APIError
	return errors.As(err, &ve) || errors.As(err, &ae)
}
