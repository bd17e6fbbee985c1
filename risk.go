// Package risk computes, per currency, a discounting curve from sparse
// rate observations and the present value and rate sensitivity (DV01) of
// a ledger of future cash flows.
package risk

import (
	"io"

	"github.com/kxiao1/risk-system/internal/currency"
	"github.com/kxiao1/risk-system/internal/service"
	"github.com/kxiao1/risk-system/internal/storage"
)

// Client provides a clean public API for the risk service
type Client struct {
	service *service.RiskService
}

// NewClient creates a new risk service client
func NewClient(options ...ServiceOption) (*Client, error) {
	svc, err := service.NewRiskService(options...)
	if err != nil {
		return nil, err
	}

	return &Client{
		service: svc,
	}, nil
}

// Initialize starts the risk service, hydrating from the snapshot backup
// when one is available.
func (c *Client) Initialize() error {
	return c.service.Initialize()
}

// LoadRecords parses raw rate and portfolio record streams and applies
// them. Either reader may be nil.
func (c *Client) LoadRecords(rates, portfolio io.Reader) error {
	return c.service.LoadRecords(rates, portfolio)
}

// LoadSnapshot applies an already-validated market snapshot.
func (c *Client) LoadSnapshot(snap *Snapshot) error {
	return c.service.LoadSnapshot(snap)
}

// AddRate inserts or overwrites one rate point on a currency's curve.
func (c *Client) AddRate(ccy Currency, tenorDays int, rate float64) error {
	return c.service.AddRate(ccy, tenorDays, rate)
}

// SetSpot overwrites a currency's CCYUSD spot quote.
func (c *Client) SetSpot(ccy Currency, spot float64) error {
	return c.service.SetSpot(ccy, spot)
}

// AddCashflow aggregates a notional maturing on an absolute date into a
// currency's ledger.
func (c *Client) AddCashflow(ccy Currency, date int, notional int64) error {
	return c.service.AddCashflow(ccy, date, notional)
}

// DiscountFactor returns the discount factor at a tenor on a currency's
// curve.
func (c *Client) DiscountFactor(ccy Currency, tenor int) (float64, error) {
	return c.service.DiscountFactor(ccy, tenor)
}

// Tenors returns a currency's configured tenors in ascending order.
func (c *Client) Tenors(ccy Currency) []int {
	return c.service.Tenors(ccy)
}

// Maturities returns a currency's configured maturity dates in ascending
// order.
func (c *Client) Maturities(ccy Currency) []int {
	return c.service.Maturities(ccy)
}

// Spot returns the base/term cross rate.
func (c *Client) Spot(base, term Currency) (float64, error) {
	return c.service.Spot(base, term)
}

// DV01Tenor returns the USD sensitivity of a currency's book to a unit
// rate change at one tenor.
func (c *Client) DV01Tenor(ccy Currency, tenor int) (float64, error) {
	return c.service.DV01Tenor(ccy, tenor)
}

// DV01Curve returns the USD sensitivity of a currency's book to a
// parallel shift of its whole curve.
func (c *Client) DV01Curve(ccy Currency) (float64, error) {
	return c.service.DV01Curve(ccy)
}

// Stop gracefully shuts down the service
func (c *Client) Stop() error {
	c.service.Stop()
	return nil
}

// Service options (re-exported for convenience)
type ServiceOption = service.ServiceOption

// Re-export service options for clean API
var (
	WithRedisConfig = service.WithRedisConfig
	WithEpochOffset = service.WithEpochOffset
	WithCurrencies  = service.WithCurrencies
	WithLogger      = service.WithLogger
)

// Re-export common types for convenience
type (
	Currency = currency.Currency
	Snapshot = storage.Snapshot
)

// USD is the reporting currency for sensitivities.
const USD = currency.USD

// G5 returns the base currency group {EUR, GBP, USD, CAD, JPY}.
func G5() *currency.Set { return currency.G5() }

// NewCurrencySet builds a custom closed currency group.
func NewCurrencySet(codes ...string) *currency.Set { return currency.NewSet(codes...) }
