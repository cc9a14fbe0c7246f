// Package signal implements the pull-based port protocol between the
// simulation entity and its host runtime.
//
// A port carries a floating-point vector indexed by an integer time
// token. Consumers pull: they request the value for a given index and
// the provider computes or returns it on demand. Pulls are memoized by
// time index, so repeated pulls for the same index are idempotent and
// hit the provider exactly once.
package signal

// Source is the provider side of a port: it returns the port's value
// for a given time index.
type Source interface {
	Value(t int) []float64
}

// Func adapts a plain function to a Source.
type Func func(t int) []float64

func (f Func) Value(t int) []float64 { return f(t) }

// Constant is a Source returning the same vector for every time index.
type Constant []float64

func (c Constant) Value(t int) []float64 { return c }

// Ptr is an input plug referencing an upstream Source. The last pulled
// value is memoized by time index.
type Ptr struct {
	name  string
	src   Source
	value []float64
	time  int
	fresh bool
}

func NewPtr(name string) *Ptr {
	return &Ptr{name: name}
}

func (p *Ptr) Name() string { return p.name }

// Plug connects the upstream source and invalidates the memo.
func (p *Ptr) Plug(src Source) {
	p.src = src
	p.fresh = false
}

// Value pulls the upstream value for time index t. Repeated pulls for
// the same index return the memoized vector without recomputation.
// An unplugged input yields nil; vector dimensions are the host's
// contract, not checked here.
func (p *Ptr) Value(t int) []float64 {
	if p.fresh && p.time == t {
		return p.value
	}
	if p.src == nil {
		return nil
	}
	p.value = p.src.Value(t)
	p.time = t
	p.fresh = true
	return p.value
}

// Cached is the provider side of an output port: it holds the most
// recently published value tagged with its time index. An optional
// refresh callback recomputes the value on a cache miss.
type Cached struct {
	name    string
	value   []float64
	time    int
	refresh func(t int) []float64
}

func NewCached(name string) *Cached {
	return &Cached{name: name}
}

func (c *Cached) Name() string { return c.name }

// Time returns the time index of the cached value.
func (c *Cached) Time() int { return c.time }

// SetRefresh installs the recomputation callback invoked on cache miss.
func (c *Cached) SetRefresh(fn func(t int) []float64) {
	c.refresh = fn
}

// Set publishes a value tagged with time index t.
func (c *Cached) Set(v []float64, t int) {
	c.value = v
	c.time = t
}

// Value returns the cached vector for time index t. A pull for the
// cached index or an older one returns the stored value as-is; a pull
// for a newer index triggers the refresh callback when one is
// installed, otherwise the stale value is returned unchanged.
func (c *Cached) Value(t int) []float64 {
	if t > c.time && c.refresh != nil {
		c.value = c.refresh(t)
		c.time = t
	}
	return c.value
}
