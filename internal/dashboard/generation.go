package dashboard

import "sync"

// Generations hands out tokens for in-flight loads. Only the holder of the
// newest token may apply its result; older results are discarded.
type Generations struct {
	mu      sync.Mutex
	current uint64
}

// Begin starts a new generation and returns its token.
func (g *Generations) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

// Apply runs fn if token is still the newest generation and reports whether
// it ran. No new generation can begin while fn runs.
func (g *Generations) Apply(token uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != g.current {
		return false
	}
	fn()
	return true
}

// Current returns the newest token.
func (g *Generations) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}
