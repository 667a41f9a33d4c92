package timezone

import (
	"time"
)

// Instant is a point in time anchored to the timezone used to read its
// wall-clock fields. Instants are immutable; conversions return new values.
type Instant struct {
	t      time.Time
	zoneID string
}

// NewInstant builds an Instant from wall-clock fields interpreted in the
// given zone. The zone must resolve against the timezone rule database.
func NewInstant(year int, month time.Month, day, hour, minute int, zoneID string) (Instant, error) {
	loc, err := loadLocation(zoneID)
	if err != nil {
		return Instant{}, err
	}
	return Instant{
		t:      time.Date(year, month, day, hour, minute, 0, 0, loc),
		zoneID: zoneID,
	}, nil
}

// InstantAt anchors an absolute time to the given zone.
func InstantAt(t time.Time, zoneID string) (Instant, error) {
	loc, err := loadLocation(zoneID)
	if err != nil {
		return Instant{}, err
	}
	return Instant{t: t.In(loc), zoneID: zoneID}, nil
}

// Time returns the underlying absolute time, localized to the instant's zone.
func (i Instant) Time() time.Time {
	return i.t
}

// ZoneID returns the IANA identifier the instant's wall clock is read in.
func (i Instant) ZoneID() string {
	return i.zoneID
}

// Add returns a new Instant shifted by d, anchored to the same zone.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{t: i.t.Add(d), zoneID: i.zoneID}
}

// UTC returns the absolute time in UTC. Calendar payloads use this so the
// receiving service never has to guess a timezone.
func (i Instant) UTC() time.Time {
	return i.t.UTC()
}

// IsZero reports whether the instant is the zero value.
func (i Instant) IsZero() bool {
	return i.t.IsZero() && i.zoneID == ""
}

// Convert computes the wall-clock reading of i in the target zone. The
// conversion is a pure function of the instant and the timezone rule
// database: the daylight-saving rules valid on the instant's own date apply.
// An unresolvable target never falls back to UTC or to the source zone; it
// fails with a *ResolutionError or *ConversionError instead.
func Convert(i Instant, targetZoneID string) (Instant, error) {
	loc, err := loadLocation(targetZoneID)
	if err != nil {
		return Instant{}, err
	}
	return Instant{t: i.t.In(loc), zoneID: targetZoneID}, nil
}

// DayOffset returns the signed whole-day difference between the calendar
// date of b (read in b's zone) and the calendar date of a (read in a's
// zone): +1 when b is one day ahead, -1 when one day behind, 0 otherwise.
func DayOffset(a, b Instant) int {
	ay, am, ad := a.t.Date()
	by, bm, bd := b.t.Date()

	// Compare dates by mapping both to a zone-free day count.
	aDays := daysFromCivil(ay, int(am), ad)
	bDays := daysFromCivil(by, int(bm), bd)

	switch {
	case bDays > aDays:
		return 1
	case bDays < aDays:
		return -1
	default:
		return 0
	}
}

// daysFromCivil converts a calendar date to a serial day number.
// Howard Hinnant's civil-days algorithm.
func daysFromCivil(y, m, d int) int {
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	var doy int
	if m > 2 {
		doy = (153*(m-3)+2)/5 + d - 1
	} else {
		doy = (153*(m+9)+2)/5 + d - 1
	}
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// loadLocation resolves a zone identifier against the rule database. An
// identifier the catalog never hands out fails as a *ResolutionError; a
// catalog-known identifier that still fails to load can only mean missing or
// corrupt rule data, which is a *ConversionError.
func loadLocation(zoneID string) (*time.Location, error) {
	if zoneID == "" {
		return nil, &ResolutionError{Kind: "zone", Name: zoneID}
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		if isCatalogZone(zoneID) {
			return nil, &ConversionError{ZoneID: zoneID, Err: err}
		}
		return nil, &ResolutionError{Kind: "zone", Name: zoneID}
	}
	return loc, nil
}
