package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinkpantherking/calassist/internal/timezone"
)

func newConvertCmd() *cobra.Command {
	var (
		fromCity   string
		fromOffset string
		toCity     string
		date       string
		clock      string
		listCities bool
		listZones  bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a wall-clock time between cities",
		Long: `Convert resolves a wall-clock time in a source city (or a fixed UTC
offset) and prints the corresponding local time in a target city,
including a day-boundary note when the calendar date differs.

Examples:
  calassist convert --from Karachi --to "New York" --date 2026-01-15 --time 17:00
  calassist convert --from-offset "UTC+05:30 (India)" --to London --time 09:30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listCities {
				for _, city := range timezone.Cities() {
					fmt.Println(city)
				}
				return nil
			}
			if listZones {
				for _, spec := range timezone.Offsets() {
					fmt.Println(spec.Label)
				}
				return nil
			}
			return runConvert(fromCity, fromOffset, toCity, date, clock)
		},
	}

	cmd.Flags().StringVar(&fromCity, "from", "", "Source city (see --list-cities)")
	cmd.Flags().StringVar(&fromOffset, "from-offset", "", "Source fixed UTC offset label (see --list-offsets)")
	cmd.Flags().StringVar(&toCity, "to", "", "Target city")
	cmd.Flags().StringVar(&date, "date", "", "Calendar date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&clock, "time", "", "Wall-clock time, HH:MM")
	cmd.Flags().BoolVar(&listCities, "list-cities", false, "List the supported cities and exit")
	cmd.Flags().BoolVar(&listZones, "list-offsets", false, "List the supported UTC offset labels and exit")

	return cmd
}

func runConvert(fromCity, fromOffset, toCity, date, clock string) error {
	sourceZone, err := resolveSourceZone(fromCity, fromOffset)
	if err != nil {
		return err
	}
	targetZone, err := timezone.CityZone(toCity)
	if err != nil {
		return err
	}

	year, month, day, hour, minute, err := parseClock(date, clock)
	if err != nil {
		return err
	}

	source, err := timezone.NewInstant(year, month, day, hour, minute, sourceZone)
	if err != nil {
		return err
	}
	target, err := timezone.Convert(source, targetZone)
	if err != nil {
		return err
	}

	const layout = "Mon, Jan 2 2006 15:04 MST"
	fmt.Printf("%s  (%s)\n", source.Time().Format(layout), sourceZone)
	fmt.Printf("%s  (%s)%s\n", target.Time().Format(layout), targetZone, dayOffsetNote(timezone.DayOffset(source, target)))
	return nil
}

// resolveSourceZone maps the --from / --from-offset pair to an IANA zone ID.
// Exactly one of the two must be set.
func resolveSourceZone(city, offsetLabel string) (string, error) {
	switch {
	case city != "" && offsetLabel != "":
		return "", fmt.Errorf("use either --from or --from-offset, not both")
	case city != "":
		return timezone.CityZone(city)
	case offsetLabel != "":
		spec, err := timezone.OffsetByLabel(offsetLabel)
		if err != nil {
			return "", err
		}
		return timezone.OffsetZone(spec)
	default:
		return "", fmt.Errorf("a source is required: --from <city> or --from-offset <label>")
	}
}

// parseClock reads the --date / --time flags. An empty date means today in
// the local timezone; the time is required.
func parseClock(date, clock string) (year int, month time.Month, day, hour, minute int, err error) {
	if clock == "" {
		return 0, 0, 0, 0, 0, fmt.Errorf("--time is required (HH:MM)")
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("invalid --time %q: expected HH:MM", clock)
	}
	hour, minute = t.Hour(), t.Minute()

	if date == "" {
		year, month, day = time.Now().Date()
		return year, month, day, hour, minute, nil
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
	}
	year, month, day = d.Date()
	return year, month, day, hour, minute, nil
}

func dayOffsetNote(offset int) string {
	switch {
	case offset > 0:
		return "  [next calendar day]"
	case offset < 0:
		return "  [previous calendar day]"
	default:
		return ""
	}
}
