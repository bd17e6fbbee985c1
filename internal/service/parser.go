package service

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kxiao1/risk-system/internal/storage"
)

// Raw record formats. Rate lines carry a tenor with a one-letter unit,
// e.g. "IR.2W.EUR 0.025"; FX lines are always quoted against USD, e.g.
// "FX.SPOT.EUR 1.1213"; trade lines are semicolon-delimited with the
// notional as eight hex digits and the maturity as days since the 1900
// epoch, e.g. "1;0000b9c6;EUR;43208;".
var (
	rateFormat  = regexp.MustCompile(`^IR\.[0-9]+[A-Z]\.[A-Z]{3}[ \t](?:[0-9]+\.)?[0-9]+$`)
	fxFormat    = regexp.MustCompile(`^FX\.SPOT\.[A-Z]{3}[ \t](?:[0-9]+\.)?[0-9]+$`)
	tradeFormat = regexp.MustCompile(`^[0-9]+;[a-f0-9]{8};[A-Z]{3};[0-9]{5};$`)
)

// ParseRecords tokenizes the raw rate and portfolio record streams into a
// validated snapshot carrying the configured epoch offset. Lines starting
// with '#' are headers; anything else that fails validation is logged and
// dropped rather than aborting the run. Either reader may be nil.
func (rs *RiskService) ParseRecords(rates, portfolio io.Reader) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{EpochOffset: rs.opts.EpochOffset}

	if rates != nil {
		if err := rs.scanLines(rates, func(line string) {
			switch {
			case rateFormat.MatchString(line):
				rs.parseRateLine(line, snap)
			case fxFormat.MatchString(line):
				rs.parseFXLine(line, snap)
			default:
				rs.logger.Warn("unrecognized rate record", zap.String("line", line))
			}
		}); err != nil {
			return nil, fmt.Errorf("reading rate records: %w", err)
		}
	}

	if portfolio != nil {
		if err := rs.scanLines(portfolio, func(line string) {
			if tradeFormat.MatchString(line) {
				rs.parseTradeLine(line, snap)
				return
			}
			rs.logger.Warn("unrecognized trade record", zap.String("line", line))
		}); err != nil {
			return nil, fmt.Errorf("reading trade records: %w", err)
		}
	}

	return snap, nil
}

// LoadRecords parses both record streams and applies the snapshot.
func (rs *RiskService) LoadRecords(rates, portfolio io.Reader) error {
	snap, err := rs.ParseRecords(rates, portfolio)
	if err != nil {
		return err
	}
	return rs.LoadSnapshot(snap)
}

func (rs *RiskService) scanLines(r io.Reader, handle func(line string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		handle(line)
	}
	return scanner.Err()
}

// parseRateLine handles "IR.<n><unit>.<CCY> <rate>". The unit scales the
// tenor into whole days: D, W, M (30 days), or Y (360 days).
func (rs *RiskService) parseRateLine(line string, snap *storage.Snapshot) {
	fields := strings.Fields(line)
	key := strings.Split(fields[0], ".") // ["IR", "2W", "EUR"]

	tenorStr := key[1]
	unit := tenorStr[len(tenorStr)-1]
	tenor, err := strconv.Atoi(tenorStr[:len(tenorStr)-1])
	if err != nil || tenor < 0 {
		rs.logger.Warn("bad tenor in rate record", zap.String("line", line))
		return
	}
	switch unit {
	case 'D':
		tenor *= daysPerDay
	case 'W':
		tenor *= daysPerWeek
	case 'M':
		tenor *= daysPerMonth
	case 'Y':
		tenor *= daysPerYear
	default:
		rs.logger.Warn("bad tenor unit in rate record",
			zap.String("unit", string(unit)), zap.String("line", line))
		return
	}

	if _, ok := rs.ccys.Resolve(key[2]); !ok {
		rs.logger.Warn("unknown currency in rate record", zap.String("ccy", key[2]))
		return
	}

	rate, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		rs.logger.Warn("bad rate in rate record", zap.String("line", line))
		return
	}

	snap.Rates = append(snap.Rates, storage.RatePoint{Ccy: key[2], Tenor: tenor, Rate: rate})
}

// parseFXLine handles "FX.SPOT.<CCY> <spot>".
func (rs *RiskService) parseFXLine(line string, snap *storage.Snapshot) {
	fields := strings.Fields(line)
	key := strings.Split(fields[0], ".") // ["FX", "SPOT", "EUR"]

	if _, ok := rs.ccys.Resolve(key[2]); !ok {
		rs.logger.Warn("unknown currency in fx record", zap.String("ccy", key[2]))
		return
	}

	spot, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		rs.logger.Warn("bad spot in fx record", zap.String("line", line))
		return
	}

	snap.Spots = append(snap.Spots, storage.SpotQuote{Ccy: key[2], Spot: spot})
}

// parseTradeLine handles "<id>;<notional hex>;<CCY>;<date>;". The
// notional is a 32-bit value read from hex, so high-bit values come out
// negative. Trades maturing before the epoch offset are dropped.
func (rs *RiskService) parseTradeLine(line string, snap *storage.Snapshot) {
	parts := strings.Split(line, ";") // ["1", "0000b9c6", "EUR", "43208", ""]

	raw, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		rs.logger.Warn("bad notional in trade record", zap.String("line", line))
		return
	}
	notional := int64(int32(uint32(raw)))

	if _, ok := rs.ccys.Resolve(parts[2]); !ok {
		rs.logger.Warn("unknown currency in trade record", zap.String("ccy", parts[2]))
		return
	}

	date, err := strconv.Atoi(parts[3])
	if err != nil {
		rs.logger.Warn("bad date in trade record", zap.String("line", line))
		return
	}

	tenor := date - snap.EpochOffset
	if tenor < 0 {
		rs.logger.Warn("dropping matured trade",
			zap.Int("date", date), zap.Int("effectiveTenor", tenor))
		return
	}
	rs.logger.Debug("trade record",
		zap.Int("effectiveTenor", tenor), zap.Int64("notional", notional))

	snap.Cashflows = append(snap.Cashflows, storage.Cashflow{Ccy: parts[2], Date: date, Notional: notional})
}
