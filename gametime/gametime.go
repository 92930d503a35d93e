// Package gametime converts the in-game clock values stored in savefiles to and from text.
//
// The world clock counts 360 units per in-game day, so one unit is four in-game minutes.
// Values past one day carry the day count: 1.5 days reads "1 d 12:00".
package gametime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/savkit/errs"
)

const (
	// UnitsPerDay is the number of clock units in one in-game day.
	UnitsPerDay = 360
	// MinutesPerUnit is the number of in-game minutes in one clock unit.
	MinutesPerUnit = 24 * 60 / UnitsPerDay

	minutesPerDay = 24 * 60
)

// ValueToTime formats a world clock value as "hh:mm", or "N d hh:mm" when it spans at
// least one day. Minutes are rounded to the nearest whole minute; negative values and
// non-finite values format as "00:00".
func ValueToTime(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		value = 0
	}

	total := int64(math.Round(value * MinutesPerUnit))
	days := total / minutesPerDay
	total %= minutesPerDay
	hm := fmt.Sprintf("%02d:%02d", total/60, total%60)
	if days > 0 {
		return fmt.Sprintf("%d d %s", days, hm)
	}

	return hm
}

// TimeToValue parses "hh:mm" or "N d hh:mm" into a world clock value. Hours and minutes
// are not range checked, so "30:00" reads as 1 d 06:00.
//
// Returns errs.ErrInvalidTime when text has neither form.
func TimeToValue(text string) (float64, error) {
	var days int64
	clock := strings.TrimSpace(text)

	parts := strings.Fields(clock)
	switch {
	case len(parts) == 3 && parts[1] == "d":
		d, err := strconv.ParseInt(parts[0], 10, 32)
		if err != nil || d < 0 {
			return 0, fmt.Errorf("%w: day count in %q", errs.ErrInvalidTime, text)
		}
		days = d
		clock = parts[2]
	case len(parts) != 1:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidTime, text)
	}

	hs, ms, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("%w: missing ':' in %q", errs.ErrInvalidTime, text)
	}
	hours, err := strconv.ParseUint(hs, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: hours in %q", errs.ErrInvalidTime, text)
	}
	minutes, err := strconv.ParseUint(ms, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes in %q", errs.ErrInvalidTime, text)
	}

	total := days*minutesPerDay + int64(hours)*60 + int64(minutes) //nolint:gosec

	return float64(total) / MinutesPerUnit, nil
}

// PlayTime formats a play time in seconds as "h:mm:ss". Hours are not wrapped.
func PlayTime(seconds int64) string {
	seconds = max(seconds, 0)

	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// SaveTime converts the Unix timestamp stored with each save to a time.Time in UTC.
func SaveTime(unix int64) time.Time {
	return time.Unix(unix, 0).UTC()
}
