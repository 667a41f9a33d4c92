package timezone

import "fmt"

// ResolutionError indicates that a city name, offset label, or timezone
// identifier could not be mapped to a usable timezone. The offending name is
// carried so callers can surface it verbatim.
type ResolutionError struct {
	// Kind describes what failed to resolve: "city", "offset", or "zone".
	Kind string
	// Name is the city name, offset label, or zone identifier as given.
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unknown %s %q: no timezone mapping", e.Kind, e.Name)
}

// ConversionError indicates that a resolved timezone identifier could not be
// loaded from the timezone rule database. This is distinct from a
// ResolutionError: the identifier was recognized but its rule data is missing
// or corrupt. The conversion never falls back to UTC in this case.
type ConversionError struct {
	ZoneID string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to load timezone rules for %q: %v", e.ZoneID, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
