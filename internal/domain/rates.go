package domain

import "strings"

// DefaultDistanceFactor is used when a country pair is not in the rate table.
const DefaultDistanceFactor = 1.0

// RateEntry defines the distance factor for an unordered country pair.
type RateEntry struct {
	CountryA       string
	CountryB       string
	DistanceFactor float64
}

// RateTable is an immutable lookup of relative shipping distance by country
// pair. Lookups are symmetric: the factor for (A, B) equals the factor for
// (B, A).
type RateTable struct {
	factors map[string]float64
}

// NewRateTable builds a RateTable from rate entries. Pair keys are
// normalized, so entries may list the countries in either order.
func NewRateTable(entries []RateEntry) RateTable {
	factors := make(map[string]float64, len(entries))
	for _, e := range entries {
		factors[routeKey(e.CountryA, e.CountryB)] = e.DistanceFactor
	}
	return RateTable{factors: factors}
}

// DistanceFactor returns the distance factor for the given route, or
// DefaultDistanceFactor when the pair is not in the table.
func (t RateTable) DistanceFactor(origin, destination string) float64 {
	if f, ok := t.factors[routeKey(origin, destination)]; ok {
		return f
	}
	return DefaultDistanceFactor
}

// Size returns the number of country pairs in the table.
func (t RateTable) Size() int {
	return len(t.factors)
}

// routeKey normalizes an unordered country pair into a single lookup key by
// sorting the two codes, so (US, UK) and (UK, US) map to the same entry.
func routeKey(a, b string) string {
	a = NormalizeCountry(a)
	b = NormalizeCountry(b)
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}

// NormalizeCountry canonicalizes a country code for comparison.
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DefaultRateEntries returns the standard distance matrix covering the nine
// countries SwiftShip serves.
func DefaultRateEntries() []RateEntry {
	return []RateEntry{
		{"US", "CA", 1.0}, {"US", "UK", 2.5}, {"US", "DE", 2.7}, {"US", "FR", 2.8},
		{"US", "AU", 3.5}, {"US", "JP", 3.2}, {"US", "CN", 3.3}, {"US", "IN", 3.4},
		{"CA", "UK", 2.3}, {"CA", "DE", 2.5}, {"CA", "FR", 2.6}, {"CA", "AU", 3.8},
		{"CA", "JP", 3.5}, {"CA", "CN", 3.6}, {"CA", "IN", 3.7},
		{"UK", "DE", 1.2}, {"UK", "FR", 1.1}, {"UK", "AU", 3.2}, {"UK", "JP", 3.0},
		{"UK", "CN", 3.1}, {"UK", "IN", 3.3},
		{"DE", "FR", 1.0}, {"DE", "AU", 3.3}, {"DE", "JP", 3.1}, {"DE", "CN", 3.2},
		{"DE", "IN", 3.4},
		{"FR", "AU", 3.4}, {"FR", "JP", 3.2}, {"FR", "CN", 3.3}, {"FR", "IN", 3.5},
		{"AU", "JP", 2.8}, {"AU", "CN", 2.9}, {"AU", "IN", 2.7},
		{"JP", "CN", 1.5}, {"JP", "IN", 2.2},
		{"CN", "IN", 1.8},
	}
}

// DefaultRateTable returns the rate table built from DefaultRateEntries.
func DefaultRateTable() RateTable {
	return NewRateTable(DefaultRateEntries())
}

// CountryNames maps supported country codes to display names.
var CountryNames = map[string]string{
	"US": "United States",
	"CA": "Canada",
	"UK": "United Kingdom",
	"DE": "Germany",
	"FR": "France",
	"AU": "Australia",
	"JP": "Japan",
	"CN": "China",
	"IN": "India",
}

// CountryName returns the display name for a country code, falling back to
// the code itself for countries outside the served set.
func CountryName(code string) string {
	if name, ok := CountryNames[NormalizeCountry(code)]; ok {
		return name
	}
	return code
}
