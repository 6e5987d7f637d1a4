// Package screen holds the controllers behind each console view. They run
// the fetch-filter-paginate-mutate cycles against the resource clients and
// own the machinery that keeps list state coherent: request generations,
// debounce and transient user messages.
package screen

import (
	"context"
	"sync"
)

// fetchGate serializes list fetches for one screen. Each Begin cancels the
// context of the previous fetch and bumps the generation; a response tagged
// with an older generation must be discarded, never applied over fresher
// state. This is what keeps a delayed response from a superseded search term
// from overwriting the newest results.
type fetchGate struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin starts a new fetch generation, cancelling the previous one.
func (g *fetchGate) Begin(parent context.Context) (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	g.cancel = cancel
	g.gen++
	return ctx, g.gen
}

// Current reports whether gen is still the latest generation.
func (g *fetchGate) Current(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.gen
}

// Close cancels any in-flight fetch. Called on screen teardown so pending
// responses never act on a dismissed view.
func (g *fetchGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.gen++
}
