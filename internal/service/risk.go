package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kxiao1/risk-system/internal/currency"
	"github.com/kxiao1/risk-system/internal/market"
	"github.com/kxiao1/risk-system/internal/storage"
)

// RiskService owns one yield curve, one cash flow ledger, and one FX spot
// quote per currency and answers discount factor and DV01 queries against
// them. A currency may be configured in any subset of the three
// collections; queries report missing pieces as explicit errors and the
// service stays usable afterwards.
//
// One read-write mutex guards all engine state. Sensitivity queries hold
// the write lock for the whole computation because they temporarily bump
// a shared curve; no other caller can observe an intermediate bumped
// state.
type RiskService struct {
	mu          sync.RWMutex
	opts        *ServiceOptions
	ccys        *currency.Set
	curves      map[currency.Currency]*market.Curve
	ledgers     map[currency.Currency]*market.Ledger
	fx          *market.SpotTable
	epochOffset int
	backup      storage.Cache
	logger      *zap.Logger
	initialized bool
}

// NewRiskService creates a new risk service
func NewRiskService(options ...ServiceOption) (*RiskService, error) {
	opts := DefaultServiceOptions()

	// Apply options
	for _, option := range options {
		option(opts)
	}

	if !opts.Currencies.Contains(currency.USD) {
		return nil, fmt.Errorf("currency set must contain USD")
	}

	var backup storage.Cache
	if opts.RedisAddr != "" {
		redisCache, err := storage.NewRedisCache(opts.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		backup = redisCache
	} else {
		backup = storage.NewMemoryCache()
	}

	return &RiskService{
		opts:        opts,
		ccys:        opts.Currencies,
		curves:      make(map[currency.Currency]*market.Curve),
		ledgers:     make(map[currency.Currency]*market.Ledger),
		fx:          market.NewSpotTable(),
		epochOffset: opts.EpochOffset,
		backup:      backup,
		logger:      opts.Logger,
	}, nil
}

// Initialize hydrates the engine from the snapshot backup, if one exists,
// and marks the service ready for queries. It is idempotent.
func (rs *RiskService) Initialize() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.initialized {
		return nil
	}

	snap, err := rs.backup.GetSnapshotBackup()
	if err != nil {
		rs.logger.Warn("failed to load snapshot backup", zap.Error(err))
	} else if snap != nil {
		rs.applySnapshot(snap)
		rs.logger.Info("hydrated from snapshot backup",
			zap.Int("rates", len(snap.Rates)),
			zap.Int("spots", len(snap.Spots)),
			zap.Int("cashflows", len(snap.Cashflows)))
	}

	rs.initialized = true
	return nil
}

// Stop releases the snapshot backup.
func (rs *RiskService) Stop() {
	if err := rs.backup.Close(); err != nil {
		rs.logger.Warn("failed to close snapshot backup", zap.Error(err))
	}
}

// LoadSnapshot applies a full market snapshot and writes it to the backup
// cache. A backup failure is logged but does not fail the load.
func (rs *RiskService) LoadSnapshot(snap *storage.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if err := rs.backup.SetSnapshotBackup(snap); err != nil {
		rs.logger.Warn("failed to store snapshot backup", zap.Error(err))
	}

	rs.applySnapshot(snap)
	rs.logger.Info("loaded market snapshot",
		zap.Int("rates", len(snap.Rates)),
		zap.Int("spots", len(snap.Spots)),
		zap.Int("cashflows", len(snap.Cashflows)),
		zap.Int("epochOffset", snap.EpochOffset))
	return nil
}

// applySnapshot assumes rs.mu is held for writing. Records naming a
// currency outside the configured set are dropped with a warning, the
// same policy the record parser applies.
func (rs *RiskService) applySnapshot(snap *storage.Snapshot) {
	rs.epochOffset = snap.EpochOffset
	for _, rp := range snap.Rates {
		ccy, ok := rs.ccys.Resolve(rp.Ccy)
		if !ok {
			rs.logger.Warn("skipping rate for unknown currency", zap.String("ccy", rp.Ccy))
			continue
		}
		if rp.Tenor < 0 {
			rs.logger.Warn("skipping invalid rate point",
				zap.String("ccy", rp.Ccy), zap.Int("tenor", rp.Tenor))
			continue
		}
		if err := rs.curveFor(ccy).AddRate(rp.Tenor, rp.Rate); err != nil {
			rs.logger.Warn("skipping invalid rate point",
				zap.String("ccy", rp.Ccy), zap.Int("tenor", rp.Tenor), zap.Error(err))
		}
	}
	for _, sq := range snap.Spots {
		ccy, ok := rs.ccys.Resolve(sq.Ccy)
		if !ok {
			rs.logger.Warn("skipping spot for unknown currency", zap.String("ccy", sq.Ccy))
			continue
		}
		rs.fx.SetSpot(ccy, sq.Spot)
	}
	for _, cf := range snap.Cashflows {
		ccy, ok := rs.ccys.Resolve(cf.Ccy)
		if !ok {
			rs.logger.Warn("skipping cashflow for unknown currency", zap.String("ccy", cf.Ccy))
			continue
		}
		rs.ledgerFor(ccy).AddCashflow(cf.Date, cf.Notional)
	}
}

// AddRate inserts or overwrites one rate point on the currency's curve.
func (rs *RiskService) AddRate(ccy currency.Currency, tenorDays int, rate float64) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.ccys.Contains(ccy) {
		return fmt.Errorf("add rate: %w: %s", ErrUnknownCurrency, ccy)
	}
	// Validate before registering a curve so a rejected record leaves no
	// phantom empty curve behind.
	if tenorDays < 0 {
		return fmt.Errorf("add rate at tenor %d: %w", tenorDays, market.ErrNegativeTenor)
	}
	return rs.curveFor(ccy).AddRate(tenorDays, rate)
}

// SetSpot overwrites the currency's CCYUSD spot quote.
func (rs *RiskService) SetSpot(ccy currency.Currency, spot float64) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.ccys.Contains(ccy) {
		return fmt.Errorf("set spot: %w: %s", ErrUnknownCurrency, ccy)
	}
	rs.fx.SetSpot(ccy, spot)
	return nil
}

// AddCashflow aggregates a notional into the currency's ledger. The
// ledger is created on the first cash flow with the configured epoch
// offset.
func (rs *RiskService) AddCashflow(ccy currency.Currency, date int, notional int64) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.ccys.Contains(ccy) {
		return fmt.Errorf("add cashflow: %w: %s", ErrUnknownCurrency, ccy)
	}
	rs.ledgerFor(ccy).AddCashflow(date, notional)
	return nil
}

// DiscountFactor returns the discount factor at a tenor on the currency's
// curve. Missing curve and negative tenor are reported as errors.
func (rs *RiskService) DiscountFactor(ccy currency.Currency, tenor int) (float64, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if !rs.initialized {
		return 0, ErrNotInitialized
	}
	curve, ok := rs.curves[ccy]
	if !ok {
		return 0, fmt.Errorf("discount factor: %w: %s", ErrNoCurve, ccy)
	}
	if tenor < 0 {
		return 0, fmt.Errorf("discount factor at tenor %d: %w", tenor, market.ErrNegativeTenor)
	}
	return curve.DiscountFactor(tenor), nil
}

// Tenors returns the configured tenors for the currency in ascending
// order, or an empty slice when no curve exists.
func (rs *RiskService) Tenors(ccy currency.Currency) []int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	curve, ok := rs.curves[ccy]
	if !ok {
		return []int{}
	}
	return curve.Tenors()
}

// Maturities returns the configured maturity dates for the currency in
// ascending order, or an empty slice when no ledger exists.
func (rs *RiskService) Maturities(ccy currency.Currency) []int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	ledger, ok := rs.ledgers[ccy]
	if !ok {
		return []int{}
	}
	return ledger.Maturities()
}

// Spot returns the base/term cross rate from stored CCYUSD quotes.
func (rs *RiskService) Spot(base, term currency.Currency) (float64, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if !rs.initialized {
		return 0, ErrNotInitialized
	}
	return rs.fx.Cross(base, term)
}

// DV01Tenor is the USD sensitivity of the currency's book to a unit rate
// change at one tenor, estimated by a central difference with EPS bumps.
func (rs *RiskService) DV01Tenor(ccy currency.Currency, tenor int) (float64, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.initialized {
		return 0, ErrNotInitialized
	}
	curve, ok := rs.curves[ccy]
	if !ok {
		return 0, fmt.Errorf("dv01: %w: %s", ErrNoCurve, ccy)
	}
	if !curve.HasTenor(tenor) {
		return 0, fmt.Errorf("dv01 for %s at tenor %d: %w", ccy, tenor, market.ErrUnknownTenor)
	}
	rs.logger.Debug("dv01 tenor", zap.String("ccy", string(ccy)), zap.Int("tenor", tenor))

	return rs.dv01(ccy, curve, func(amount float64) (*market.Bump, error) {
		return curve.BumpTenor(tenor, amount)
	})
}

// DV01Curve is the USD sensitivity of the currency's book to a parallel
// shift of its whole curve.
func (rs *RiskService) DV01Curve(ccy currency.Currency) (float64, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.initialized {
		return 0, ErrNotInitialized
	}
	curve, ok := rs.curves[ccy]
	if !ok {
		return 0, fmt.Errorf("dv01: %w: %s", ErrNoCurve, ccy)
	}
	rs.logger.Debug("dv01 curve", zap.String("ccy", string(ccy)))

	return rs.dv01(ccy, curve, func(amount float64) (*market.Bump, error) {
		return curve.BumpCurve(amount), nil
	})
}

// dv01 runs the two bumped valuations strictly sequentially on the same
// curve, releasing each guard before the next evaluation and on every
// error path, then converts the local sensitivity into USD. Assumes rs.mu
// is held for writing.
func (rs *RiskService) dv01(ccy currency.Currency, curve *market.Curve, bump func(float64) (*market.Bump, error)) (float64, error) {
	cross, err := rs.fx.Cross(currency.USD, ccy)
	if err != nil {
		return 0, fmt.Errorf("dv01 for %s: %w", ccy, err)
	}

	ledger, ok := rs.ledgers[ccy]
	if !ok {
		// No cash flows booked: an empty book has zero sensitivity.
		return 0, nil
	}

	bumpedValue := func(amount float64) (_ float64, err error) {
		guard, err := bump(amount)
		if err != nil {
			return 0, err
		}
		defer guard.Release()
		return ledger.PresentValue(curve.DiscountFactor), nil
	}

	valueUp, err := bumpedValue(EPS)
	if err != nil {
		return 0, err
	}
	valueDown, err := bumpedValue(-EPS)
	if err != nil {
		return 0, err
	}

	// Second-order central difference of -dPV/dr, converted to USD.
	return cross * -(valueUp - valueDown) / 2, nil
}

// curveFor assumes rs.mu is held for writing.
func (rs *RiskService) curveFor(ccy currency.Currency) *market.Curve {
	curve, ok := rs.curves[ccy]
	if !ok {
		curve = market.NewCurve()
		rs.curves[ccy] = curve
	}
	return curve
}

// ledgerFor assumes rs.mu is held for writing.
func (rs *RiskService) ledgerFor(ccy currency.Currency) *market.Ledger {
	ledger, ok := rs.ledgers[ccy]
	if !ok {
		ledger = market.NewLedger(rs.epochOffset)
		rs.ledgers[ccy] = ledger
	}
	return ledger
}
