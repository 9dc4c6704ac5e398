package vexyglob

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTime converts a human-readable time expression into an absolute time.
//
// Accepted forms:
//   - Unix timestamp, integer or fractional ("1700000000", "1700000000.5")
//   - ISO date ("2024-01-15") or datetime ("2024-01-15T10:30:00",
//     trailing "Z" or offset allowed)
//   - relative offset from now ("-1d", "-2h", "-30m", "-45s")
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	// Relative offsets. Days are handled here since time.ParseDuration
	// does not know the unit.
	if strings.HasPrefix(value, "-") && len(value) > 2 {
		if t, ok := parseRelative(value[1:]); ok {
			return t, nil
		}
	}

	// Unix timestamp.
	if ts, err := strconv.ParseFloat(value, 64); err == nil {
		sec := int64(ts)
		nsec := int64((ts - float64(sec)) * 1e9)
		return time.Unix(sec, nsec), nil
	}

	// ISO date / datetime.
	iso := strings.Replace(value, "Z", "+00:00", 1)
	if !strings.Contains(iso, "T") && len(iso) == 10 {
		iso += "T00:00:00"
	}
	for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, iso, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf(
		"invalid time format %q: use a Unix timestamp, ISO date (YYYY-MM-DD), "+
			"ISO datetime, or relative offset (-1d, -2h, -30m, -45s)", value)
}

func parseRelative(spec string) (time.Time, bool) {
	unit := spec[len(spec)-1]
	amount, err := strconv.ParseFloat(spec[:len(spec)-1], 64)
	if err != nil || amount < 0 {
		return time.Time{}, false
	}

	var d time.Duration
	switch unit {
	case 's', 'S':
		d = time.Duration(amount * float64(time.Second))
	case 'm', 'M':
		d = time.Duration(amount * float64(time.Minute))
	case 'h', 'H':
		d = time.Duration(amount * float64(time.Hour))
	case 'd', 'D':
		d = time.Duration(amount * 24 * float64(time.Hour))
	default:
		return time.Time{}, false
	}
	return time.Now().Add(-d), true
}
