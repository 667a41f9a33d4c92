package timezone

import (
	"fmt"
	"math"
	"sort"
)

// cityZones maps supported city names to IANA timezone identifiers.
// Multiple cities in the same country intentionally share an identifier.
var cityZones = map[string]string{
	// Pakistan
	"Karachi":    "Asia/Karachi",
	"Lahore":     "Asia/Karachi",
	"Islamabad":  "Asia/Karachi",
	"Peshawar":   "Asia/Karachi",
	"Faisalabad": "Asia/Karachi",

	// UK
	"London":     "Europe/London",
	"Manchester": "Europe/London",
	"Birmingham": "Europe/London",
	"Liverpool":  "Europe/London",
	"Edinburgh":  "Europe/London",
	"Glasgow":    "Europe/London",

	// Spain
	"Madrid":    "Europe/Madrid",
	"Barcelona": "Europe/Madrid",
	"Valencia":  "Europe/Madrid",
	"Seville":   "Europe/Madrid",
	"Bilbao":    "Europe/Madrid",

	// France
	"Paris":     "Europe/Paris",
	"Lyon":      "Europe/Paris",
	"Marseille": "Europe/Paris",

	// Germany
	"Berlin":    "Europe/Berlin",
	"Munich":    "Europe/Berlin",
	"Frankfurt": "Europe/Berlin",
	"Hamburg":   "Europe/Berlin",

	// Italy
	"Rome":   "Europe/Rome",
	"Milan":  "Europe/Rome",
	"Naples": "Europe/Rome",

	// Netherlands
	"Amsterdam": "Europe/Amsterdam",
	"Rotterdam": "Europe/Amsterdam",

	// India
	"Mumbai":    "Asia/Kolkata",
	"Delhi":     "Asia/Kolkata",
	"Bangalore": "Asia/Kolkata",
	"Chennai":   "Asia/Kolkata",
	"Hyderabad": "Asia/Kolkata",
	"Kolkata":   "Asia/Kolkata",
	"Pune":      "Asia/Kolkata",

	// UAE
	"Dubai":     "Asia/Dubai",
	"Abu Dhabi": "Asia/Dubai",

	// Saudi Arabia
	"Riyadh": "Asia/Riyadh",
	"Jeddah": "Asia/Riyadh",
	"Mecca":  "Asia/Riyadh",

	// China
	"Beijing":   "Asia/Shanghai",
	"Shanghai":  "Asia/Shanghai",
	"Shenzhen":  "Asia/Shanghai",
	"Guangzhou": "Asia/Shanghai",
	"Hong Kong": "Asia/Hong_Kong",

	// Japan
	"Tokyo": "Asia/Tokyo",
	"Osaka": "Asia/Tokyo",
	"Kyoto": "Asia/Tokyo",

	// South Korea
	"Seoul": "Asia/Seoul",
	"Busan": "Asia/Seoul",

	// Southeast Asia
	"Singapore":        "Asia/Singapore",
	"Kuala Lumpur":     "Asia/Kuala_Lumpur",
	"Bangkok":          "Asia/Bangkok",
	"Jakarta":          "Asia/Jakarta",
	"Bali":             "Asia/Makassar",
	"Manila":           "Asia/Manila",
	"Ho Chi Minh City": "Asia/Ho_Chi_Minh",
	"Hanoi":            "Asia/Ho_Chi_Minh",

	// Australia
	"Sydney":    "Australia/Sydney",
	"Melbourne": "Australia/Melbourne",
	"Brisbane":  "Australia/Brisbane",
	"Perth":     "Australia/Perth",
	"Adelaide":  "Australia/Adelaide",

	// New Zealand
	"Auckland":   "Pacific/Auckland",
	"Wellington": "Pacific/Auckland",

	// USA - East
	"New York":      "America/New_York",
	"Boston":        "America/New_York",
	"Philadelphia":  "America/New_York",
	"Washington DC": "America/New_York",
	"Miami":         "America/New_York",
	"Atlanta":       "America/New_York",

	// USA - Central
	"Chicago": "America/Chicago",
	"Houston": "America/Chicago",
	"Dallas":  "America/Chicago",
	"Austin":  "America/Chicago",

	// USA - Mountain
	"Denver":  "America/Denver",
	"Phoenix": "America/Phoenix",

	// USA - Pacific
	"Los Angeles":   "America/Los_Angeles",
	"San Francisco": "America/Los_Angeles",
	"Seattle":       "America/Los_Angeles",
	"San Diego":     "America/Los_Angeles",
	"Las Vegas":     "America/Los_Angeles",

	// Canada
	"Toronto":   "America/Toronto",
	"Vancouver": "America/Vancouver",
	"Montreal":  "America/Montreal",
	"Calgary":   "America/Edmonton",

	// Latin America
	"Mexico City":    "America/Mexico_City",
	"Sao Paulo":      "America/Sao_Paulo",
	"Rio de Janeiro": "America/Sao_Paulo",
	"Buenos Aires":   "America/Argentina/Buenos_Aires",

	// Africa
	"Johannesburg": "Africa/Johannesburg",
	"Cape Town":    "Africa/Johannesburg",
	"Lagos":        "Africa/Lagos",
	"Cairo":        "Africa/Cairo",
	"Nairobi":      "Africa/Nairobi",

	// Turkey
	"Istanbul": "Europe/Istanbul",
	"Ankara":   "Europe/Istanbul",

	// Russia
	"Moscow":        "Europe/Moscow",
	"St Petersburg": "Europe/Moscow",

	// Rest of Europe
	"Warsaw":     "Europe/Warsaw",
	"Stockholm":  "Europe/Stockholm",
	"Oslo":       "Europe/Oslo",
	"Copenhagen": "Europe/Copenhagen",
	"Helsinki":   "Europe/Helsinki",
	"Dublin":     "Europe/Dublin",
	"Lisbon":     "Europe/Lisbon",
	"Athens":     "Europe/Athens",
	"Brussels":   "Europe/Brussels",
	"Zurich":     "Europe/Zurich",
	"Geneva":     "Europe/Zurich",
	"Vienna":     "Europe/Vienna",
	"Prague":     "Europe/Prague",
	"Budapest":   "Europe/Budapest",
	"Bucharest":  "Europe/Bucharest",
	"Kyiv":       "Europe/Kiev",

	// Middle East and South Asia
	"Tel Aviv":    "Asia/Jerusalem",
	"Jerusalem":   "Asia/Jerusalem",
	"Doha":        "Asia/Qatar",
	"Kuwait City": "Asia/Kuwait",
	"Dhaka":       "Asia/Dhaka",
	"Colombo":     "Asia/Colombo",
	"Kathmandu":   "Asia/Kathmandu",
	"Kabul":       "Asia/Kabul",
	"Tehran":      "Asia/Tehran",
	"Baghdad":     "Asia/Baghdad",
}

// CityZone resolves a city name to its IANA timezone identifier.
// Unknown cities return a *ResolutionError carrying the offending name.
func CityZone(name string) (string, error) {
	zone, ok := cityZones[name]
	if !ok {
		return "", &ResolutionError{Kind: "city", Name: name}
	}
	return zone, nil
}

// Cities returns the supported city names in sorted order.
func Cities() []string {
	names := make([]string, 0, len(cityZones))
	for name := range cityZones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasCity reports whether a city is present in the catalog.
func HasCity(name string) bool {
	_, ok := cityZones[name]
	return ok
}

// OffsetSpec is a discrete UTC-offset choice offered to organizers who
// express their timezone as a raw offset rather than a city. Hours may carry
// half-hour or quarter-hour fractions (e.g. +5.5 for India, +5.75 for Nepal).
// Label and Hours are in one-to-one correspondence within the catalog.
type OffsetSpec struct {
	Label string
	Hours float64
}

// offsetSpecs is the ordered list of supported offsets, west to east.
var offsetSpecs = []OffsetSpec{
	{"UTC-12:00", -12},
	{"UTC-11:00", -11},
	{"UTC-10:00 (Hawaii)", -10},
	{"UTC-09:00 (Alaska)", -9},
	{"UTC-08:00 (US Pacific)", -8},
	{"UTC-07:00 (US Mountain)", -7},
	{"UTC-06:00 (US Central)", -6},
	{"UTC-05:00 (US Eastern)", -5},
	{"UTC-04:00", -4},
	{"UTC-03:00 (Brazil)", -3},
	{"UTC-02:00", -2},
	{"UTC-01:00", -1},
	{"UTC+00:00 (UK)", 0},
	{"UTC+01:00 (Spain/France)", 1},
	{"UTC+02:00 (Eastern Europe)", 2},
	{"UTC+03:00 (Moscow/Saudi)", 3},
	{"UTC+04:00 (Dubai)", 4},
	{"UTC+04:30 (Afghanistan)", 4.5},
	{"UTC+05:00 (Pakistan)", 5},
	{"UTC+05:30 (India)", 5.5},
	{"UTC+05:45 (Nepal)", 5.75},
	{"UTC+06:00 (Bangladesh)", 6},
	{"UTC+06:30 (Myanmar)", 6.5},
	{"UTC+07:00 (Thailand)", 7},
	{"UTC+08:00 (China/Singapore)", 8},
	{"UTC+09:00 (Japan/Korea)", 9},
	{"UTC+09:30 (Australia Central)", 9.5},
	{"UTC+10:00 (Australia East)", 10},
	{"UTC+11:00", 11},
	{"UTC+12:00 (New Zealand)", 12},
	{"UTC+13:00", 13},
}

// representativeZones maps offset hours to a canonical representative zone.
// Whole-hour offsets without an entry fall back to the fixed Etc/GMT zones.
var representativeZones = map[float64]string{
	0:    "UTC",
	1:    "Europe/Madrid",
	3:    "Europe/Moscow",
	4:    "Asia/Dubai",
	4.5:  "Asia/Kabul",
	5:    "Asia/Karachi",
	5.5:  "Asia/Kolkata",
	5.75: "Asia/Kathmandu",
	6:    "Asia/Dhaka",
	6.5:  "Asia/Yangon",
	7:    "Asia/Bangkok",
	8:    "Asia/Singapore",
	9:    "Asia/Tokyo",
	9.5:  "Australia/Adelaide",
}

// isCatalogZone reports whether the identifier is one the catalog can emit,
// either as a city zone or as an offset representative.
func isCatalogZone(zoneID string) bool {
	for _, zone := range cityZones {
		if zone == zoneID {
			return true
		}
	}
	for _, zone := range representativeZones {
		if zone == zoneID {
			return true
		}
	}
	return false
}

// Offsets returns the supported UTC-offset choices, ordered west to east.
func Offsets() []OffsetSpec {
	specs := make([]OffsetSpec, len(offsetSpecs))
	copy(specs, offsetSpecs)
	return specs
}

// OffsetByLabel resolves an offset label to its spec.
func OffsetByLabel(label string) (OffsetSpec, error) {
	for _, spec := range offsetSpecs {
		if spec.Label == label {
			return spec, nil
		}
	}
	return OffsetSpec{}, &ResolutionError{Kind: "offset", Name: label}
}

// OffsetZone resolves an offset spec to a representative IANA identifier.
//
// A raw UTC offset does not uniquely determine a timezone: many zones share
// an offset, and several of those observe different daylight-saving
// calendars. The catalog picks one canonical representative per supported
// offset, which means results can differ from the caller's actual zone on
// dates where the two zones' daylight-saving rules diverge. This is a known,
// bounded approximation; prefer scheduling by city when the organizer's city
// is in the catalog.
func OffsetZone(spec OffsetSpec) (string, error) {
	if zone, ok := representativeZones[spec.Hours]; ok {
		return zone, nil
	}

	// The fixed Etc/GMT zones carry no daylight-saving rules and use the
	// POSIX sign convention: Etc/GMT-5 is five hours east of UTC.
	if spec.Hours == math.Trunc(spec.Hours) {
		whole := int(spec.Hours)
		if whole >= -12 && whole <= 14 {
			return fmt.Sprintf("Etc/GMT%+d", -whole), nil
		}
	}

	return "", &ResolutionError{Kind: "offset", Name: spec.Label}
}
