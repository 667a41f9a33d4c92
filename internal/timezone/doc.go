// Package timezone provides city and UTC-offset resolution to IANA timezone
// identifiers, and timezone-aware wall-clock conversion for scheduling.
//
// The package has two halves: a static catalog that maps human-readable
// locations (cities, or discrete UTC-offset labels such as "UTC+05:30") to
// IANA identifiers, and a conversion engine built around the immutable
// Instant type. Conversions use the Go timezone rule database, so the
// daylight-saving rules valid for the instant's own calendar date apply,
// not a fixed offset table.
//
// Example usage:
//
//	zone, err := timezone.CityZone("Madrid")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	organizer, err := timezone.NewInstant(2025, time.March, 10, 16, 0, "Asia/Karachi")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	local, err := timezone.Convert(organizer, zone)
package timezone
