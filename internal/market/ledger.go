package market

import "sort"

// Ledger aggregates cash flow notionals by absolute maturity date for a
// single currency. The epoch offset converts absolute dates into
// tenor-relative effective days and is fixed for the ledger's lifetime.
type Ledger struct {
	notionals map[int]int64
	offset    int
}

// NewLedger returns an empty ledger with the given epoch offset.
func NewLedger(epochOffset int) *Ledger {
	return &Ledger{
		notionals: make(map[int]int64),
		offset:    epochOffset,
	}
}

// AddCashflow aggregates a notional into the bucket for the date.
func (l *Ledger) AddCashflow(date int, notional int64) {
	l.notionals[date] += notional
}

// Maturities returns the configured maturity dates in ascending order.
func (l *Ledger) Maturities() []int {
	dates := make([]int, 0, len(l.notionals))
	for date := range l.notionals {
		dates = append(dates, date)
	}
	sort.Ints(dates)
	return dates
}

// EpochOffset returns the offset fixed at construction.
func (l *Ledger) EpochOffset() int {
	return l.offset
}

// PresentValue sums notional times discount factor over all buckets in
// ascending date order, so repeated runs accumulate in the same order.
// The discount function receives the effective tenor, date minus the
// epoch offset.
func (l *Ledger) PresentValue(discount func(effectiveTenor int) float64) float64 {
	var total float64
	for _, date := range l.Maturities() {
		total += float64(l.notionals[date]) * discount(date-l.offset)
	}
	return total
}
