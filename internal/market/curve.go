package market

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Curve is a piecewise linear yield curve for a single currency: an
// annualized zero rate per tenor expressed in whole days.
type Curve struct {
	rates map[int]float64
}

// NewCurve returns an empty curve.
func NewCurve() *Curve {
	return &Curve{rates: make(map[int]float64)}
}

// AddRate inserts or overwrites the rate at a tenor; the last write for a
// given tenor wins. Negative tenors are rejected and leave the curve
// unchanged.
func (c *Curve) AddRate(tenor int, rate float64) error {
	if tenor < 0 {
		return fmt.Errorf("add rate at tenor %d: %w", tenor, ErrNegativeTenor)
	}
	c.rates[tenor] = rate
	return nil
}

// HasTenor reports whether a rate is configured at the exact tenor.
func (c *Curve) HasTenor(tenor int) bool {
	_, ok := c.rates[tenor]
	return ok
}

// Tenors returns the configured tenors in ascending order.
func (c *Curve) Tenors() []int {
	tenors := make([]int, 0, len(c.rates))
	for tenor := range c.rates {
		tenors = append(tenors, tenor)
	}
	sort.Ints(tenors)
	return tenors
}

// DiscountFactor returns exp(-r_eff * t / 360) where r_eff is the rate
// linearly interpolated between the two configured tenors bracketing t.
// Below the first configured tenor the curve is anchored at (0 days, zero
// rate); at or beyond the last tenor the rate is held flat by synthesizing
// a right bound one day past the left one with the same rate, which keeps
// the interpolation interval non-degenerate.
func (c *Curve) DiscountFactor(t int) float64 {
	tenors := c.Tenors()
	if len(tenors) == 0 {
		return 1.0
	}

	var tLeft, tRight int
	var rLeft, rRight float64

	// First configured tenor strictly greater than t.
	idx := sort.SearchInts(tenors, t+1)
	switch {
	case idx == 0:
		tRight = tenors[0]
		rRight = c.rates[tRight]
	case idx == len(tenors):
		tLeft = tenors[idx-1]
		rLeft = c.rates[tLeft]
		tRight = tLeft + 1
		rRight = rLeft
	default:
		tLeft = tenors[idx-1]
		rLeft = c.rates[tLeft]
		tRight = tenors[idx]
		rRight = c.rates[tRight]
	}

	rEff := (rLeft*float64(tRight-t) + rRight*float64(t-tLeft)) / float64(tRight-tLeft)
	return math.Exp(-rEff * float64(t) / 360)
}

// Bump is a scoped curve perturbation. Release restores the tenors it
// covers to their exact pre-bump rates; calling it more than once is a
// no-op, so it is safe to defer and also release early.
type Bump struct {
	once    sync.Once
	restore func()
}

// Release undoes the bump, exactly once.
func (b *Bump) Release() {
	b.once.Do(b.restore)
}

// BumpTenor adds amount to the rate at an existing tenor and returns the
// guard that undoes it. The tenor must already be configured.
func (c *Curve) BumpTenor(tenor int, amount float64) (*Bump, error) {
	prev, ok := c.rates[tenor]
	if !ok {
		return nil, fmt.Errorf("bump tenor %d: %w", tenor, ErrUnknownTenor)
	}
	c.rates[tenor] = prev + amount
	return &Bump{restore: func() { c.rates[tenor] = prev }}, nil
}

// BumpCurve adds amount to every tenor configured at the moment of the
// call (a parallel shift) and returns the guard that undoes it. The guard
// restores exactly the snapshot taken here, so tenors added after the bump
// are left alone.
func (c *Curve) BumpCurve(amount float64) *Bump {
	snapshot := make(map[int]float64, len(c.rates))
	for tenor, rate := range c.rates {
		snapshot[tenor] = rate
		c.rates[tenor] = rate + amount
	}
	return &Bump{restore: func() {
		for tenor, rate := range snapshot {
			c.rates[tenor] = rate
		}
	}}
}
