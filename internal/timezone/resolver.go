package timezone

import "strings"

// Candidate is a single lookup result for a city name. City names are not
// globally unique, so a lookup may return zones on several continents.
type Candidate struct {
	City string
	Zone string
}

// Resolver maps a city name to candidate IANA timezones. Implementations
// decide where the data comes from; the default is the embedded table.
type Resolver interface {
	Lookup(city string) []Candidate
}

// Resolve picks the zone for a (city, continent) pair: the first candidate
// whose zone identifier contains the continent name wins. The second return
// is false when no candidate matches, which callers must treat as an
// unresolvable zone.
func Resolve(r Resolver, city, continent string) (string, bool) {
	for _, c := range r.Lookup(city) {
		if strings.Contains(c.Zone, continent) {
			return c.Zone, true
		}
	}
	return "", false
}
