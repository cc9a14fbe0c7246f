package signal

import (
	"testing"
)

type countingSource struct {
	calls int
	value []float64
}

func (s *countingSource) Value(t int) []float64 {
	s.calls++
	return s.value
}

func TestPtrMemoizesByTimeIndex(t *testing.T) {
	src := &countingSource{value: []float64{3.5}}
	in := NewPtr("force")
	in.Plug(src)

	v1 := in.Value(7)
	v2 := in.Value(7)

	if src.calls != 1 {
		t.Errorf("expected 1 upstream pull, got %d", src.calls)
	}
	if v1[0] != 3.5 || v2[0] != 3.5 {
		t.Errorf("unexpected values: %v, %v", v1, v2)
	}

	in.Value(8)
	if src.calls != 2 {
		t.Errorf("expected pull for new index, got %d calls", src.calls)
	}
}

func TestPtrPlugInvalidatesMemo(t *testing.T) {
	a := &countingSource{value: []float64{1}}
	b := &countingSource{value: []float64{2}}

	in := NewPtr("force")
	in.Plug(a)
	in.Value(0)

	in.Plug(b)
	v := in.Value(0)
	if v[0] != 2 {
		t.Errorf("expected value from new source, got %v", v)
	}
	if b.calls != 1 {
		t.Errorf("expected new source to be pulled, got %d calls", b.calls)
	}
}

func TestPtrUnplugged(t *testing.T) {
	in := NewPtr("force")
	if v := in.Value(0); v != nil {
		t.Errorf("expected nil from unplugged input, got %v", v)
	}
}

func TestConstant(t *testing.T) {
	c := Constant{4.2}
	for _, tick := range []int{0, 1, 100} {
		v := c.Value(tick)
		if len(v) != 1 || v[0] != 4.2 {
			t.Errorf("Value(%d) = %v", tick, v)
		}
	}
}

func TestFunc(t *testing.T) {
	src := Func(func(tick int) []float64 {
		if tick < 3 {
			return []float64{1.5}
		}
		return []float64{0}
	})

	if v := src.Value(0); v[0] != 1.5 {
		t.Errorf("Value(0) = %v", v)
	}
	if v := src.Value(3); v[0] != 0 {
		t.Errorf("Value(3) = %v", v)
	}
}

func TestCachedHoldsTaggedValue(t *testing.T) {
	out := NewCached("state")
	out.Set([]float64{1, 2, 3, 4}, 5)

	if out.Time() != 5 {
		t.Errorf("expected time tag 5, got %d", out.Time())
	}

	v := out.Value(5)
	if len(v) != 4 || v[0] != 1 {
		t.Errorf("unexpected cached value: %v", v)
	}

	// no refresh installed: a stale pull returns the cached vector
	if got := out.Value(9); got[3] != 4 {
		t.Errorf("unexpected value on stale pull: %v", got)
	}
}

func TestCachedRefreshOnMiss(t *testing.T) {
	out := NewCached("state")
	calls := 0
	out.SetRefresh(func(tick int) []float64 {
		calls++
		return []float64{float64(tick)}
	})
	out.Set([]float64{0}, 0)

	v := out.Value(3)
	if calls != 1 || v[0] != 3 {
		t.Errorf("expected refresh for index 3, calls=%d v=%v", calls, v)
	}

	// second pull for the same index is served from cache
	out.Value(3)
	if calls != 1 {
		t.Errorf("expected cached result, got %d refresh calls", calls)
	}

	// a pull for an older index never re-runs the refresh
	if v := out.Value(1); calls != 1 || v[0] != 3 {
		t.Errorf("expected stored value for old index, calls=%d v=%v", calls, v)
	}
}
