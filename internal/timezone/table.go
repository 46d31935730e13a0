package timezone

import "strings"

// TableResolver resolves cities from an in-memory table keyed by lowercased
// city name.
type TableResolver struct {
	table map[string][]Candidate
}

// NewTableResolver builds a resolver over the default city table.
func NewTableResolver() *TableResolver {
	return &TableResolver{table: defaultTable}
}

// NewTableResolverFrom builds a resolver over a caller-supplied table,
// mainly for tests.
func NewTableResolverFrom(entries []Candidate) *TableResolver {
	table := make(map[string][]Candidate, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.City)
		table[key] = append(table[key], e)
	}
	return &TableResolver{table: table}
}

// Lookup returns all known zones for a city, case-insensitively.
func (r *TableResolver) Lookup(city string) []Candidate {
	return r.table[strings.ToLower(city)]
}

var defaultTable = buildTable([]Candidate{
	{"Abidjan", "Africa/Abidjan"},
	{"Accra", "Africa/Accra"},
	{"Addis Ababa", "Africa/Addis_Ababa"},
	{"Amsterdam", "Europe/Amsterdam"},
	{"Athens", "Europe/Athens"},
	{"Auckland", "Pacific/Auckland"},
	{"Bangkok", "Asia/Bangkok"},
	{"Barcelona", "Europe/Madrid"},
	{"Beijing", "Asia/Shanghai"},
	{"Berlin", "Europe/Berlin"},
	{"Bogota", "America/Bogota"},
	{"Brisbane", "Australia/Brisbane"},
	{"Brussels", "Europe/Brussels"},
	{"Bucharest", "Europe/Bucharest"},
	{"Budapest", "Europe/Budapest"},
	{"Buenos Aires", "America/Argentina/Buenos_Aires"},
	{"Cairo", "Africa/Cairo"},
	{"Cape Town", "Africa/Johannesburg"},
	{"Caracas", "America/Caracas"},
	{"Casablanca", "Africa/Casablanca"},
	{"Chicago", "America/Chicago"},
	{"Copenhagen", "Europe/Copenhagen"},
	{"Dakar", "Africa/Dakar"},
	{"Delhi", "Asia/Kolkata"},
	{"Denver", "America/Denver"},
	{"Dhaka", "Asia/Dhaka"},
	{"Dubai", "Asia/Dubai"},
	{"Dublin", "Europe/Dublin"},
	{"Hanoi", "Asia/Ho_Chi_Minh"},
	{"Helsinki", "Europe/Helsinki"},
	{"Hong Kong", "Asia/Hong_Kong"},
	{"Istanbul", "Europe/Istanbul"},
	{"Jakarta", "Asia/Jakarta"},
	{"Johannesburg", "Africa/Johannesburg"},
	{"Karachi", "Asia/Karachi"},
	{"Kiev", "Europe/Kyiv"},
	{"Kuala Lumpur", "Asia/Kuala_Lumpur"},
	{"Lagos", "Africa/Lagos"},
	{"Lima", "America/Lima"},
	{"Lisbon", "Europe/Lisbon"},
	{"London", "Europe/London"},
	{"Los Angeles", "America/Los_Angeles"},
	{"Madrid", "Europe/Madrid"},
	{"Manila", "Asia/Manila"},
	{"Melbourne", "Australia/Melbourne"},
	{"Mexico City", "America/Mexico_City"},
	{"Montreal", "America/Toronto"},
	{"Moscow", "Europe/Moscow"},
	{"Mumbai", "Asia/Kolkata"},
	{"Nairobi", "Africa/Nairobi"},
	{"New York", "America/New_York"},
	{"Osaka", "Asia/Tokyo"},
	{"Oslo", "Europe/Oslo"},
	{"Paris", "Europe/Paris"},
	// Perth exists in both Australia and Scotland; continent matching
	// disambiguates.
	{"Perth", "Australia/Perth"},
	{"Perth", "Europe/London"},
	{"Prague", "Europe/Prague"},
	{"Rio De Janeiro", "America/Sao_Paulo"},
	{"Riyadh", "Asia/Riyadh"},
	{"Rome", "Europe/Rome"},
	{"San Francisco", "America/Los_Angeles"},
	{"Santiago", "America/Santiago"},
	{"Sao Paulo", "America/Sao_Paulo"},
	{"Seattle", "America/Los_Angeles"},
	{"Seoul", "Asia/Seoul"},
	{"Shanghai", "Asia/Shanghai"},
	{"Singapore", "Asia/Singapore"},
	{"Stockholm", "Europe/Stockholm"},
	{"Sydney", "Australia/Sydney"},
	{"Taipei", "Asia/Taipei"},
	{"Tehran", "Asia/Tehran"},
	{"Tokyo", "Asia/Tokyo"},
	{"Toronto", "America/Toronto"},
	{"Vancouver", "America/Vancouver"},
	{"Vienna", "Europe/Vienna"},
	{"Warsaw", "Europe/Warsaw"},
	{"Wellington", "Pacific/Auckland"},
	{"Zurich", "Europe/Zurich"},
})

func buildTable(entries []Candidate) map[string][]Candidate {
	table := make(map[string][]Candidate, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.City)
		table[key] = append(table[key], e)
	}
	return table
}
