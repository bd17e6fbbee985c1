package storage

// Snapshot is the full set of validated market records ingested in one
// run: rate points, FX spot quotes, cash flow buckets, and the epoch
// offset that applies to every cash flow in the run. It is the unit of
// backup: the engine can be rebuilt from a snapshot alone.
type Snapshot struct {
	Rates       []RatePoint `json:"rates"`
	Spots       []SpotQuote `json:"spots"`
	Cashflows   []Cashflow  `json:"cashflows"`
	EpochOffset int         `json:"epochOffset"`
}

// RatePoint is one (currency, tenor, rate) observation. Tenor is a whole
// number of days; the rate is annualized.
type RatePoint struct {
	Ccy   string  `json:"ccy"`
	Tenor int     `json:"tenorDays"`
	Rate  float64 `json:"rate"`
}

// SpotQuote is the value of one unit of Ccy in USD.
type SpotQuote struct {
	Ccy  string  `json:"ccy"`
	Spot float64 `json:"spot"`
}

// Cashflow is a signed notional maturing on an absolute date (days since
// the 1900 epoch, the portfolio file convention).
type Cashflow struct {
	Ccy      string `json:"ccy"`
	Date     int    `json:"date"`
	Notional int64  `json:"notional"`
}
