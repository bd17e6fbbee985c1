package currency

import (
	"sort"
	"strings"
)

// Currency is an opaque token for a currency code. Tokens are only
// meaningful relative to the Set that resolved them.
type Currency string

// USD is special-cased throughout the risk engine: all spot quotes are
// stored as CCYUSD and sensitivities are reported in USD terms.
const USD Currency = "USD"

// Set is a closed group of currencies. The default group is G5; larger
// groups (G10, EM...) are just sets built from a longer code list.
type Set struct {
	codes  []string
	tokens map[Currency]struct{}
}

// NewSet builds a set from currency codes. Codes are upper-cased and
// de-duplicated; Codes reports the members in sorted order.
func NewSet(codes ...string) *Set {
	s := &Set{tokens: make(map[Currency]struct{}, len(codes))}
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if _, ok := s.tokens[Currency(code)]; ok {
			continue
		}
		s.tokens[Currency(code)] = struct{}{}
		s.codes = append(s.codes, code)
	}
	return s
}

// G5 returns the base currency group.
func G5() *Set {
	return NewSet("EUR", "GBP", "USD", "CAD", "JPY")
}

// Resolve maps a raw string to a currency token, reporting whether the
// string names a member of the set.
func (s *Set) Resolve(code string) (Currency, bool) {
	ccy := Currency(strings.ToUpper(strings.TrimSpace(code)))
	_, ok := s.tokens[ccy]
	if !ok {
		return "", false
	}
	return ccy, true
}

// Contains reports whether the token belongs to the set.
func (s *Set) Contains(ccy Currency) bool {
	_, ok := s.tokens[ccy]
	return ok
}

// Name returns the string form of a token.
func (s *Set) Name(ccy Currency) string {
	return string(ccy)
}

// Codes returns the member codes in sorted order.
func (s *Set) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	sort.Strings(out)
	return out
}
