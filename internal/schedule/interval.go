// Package schedule implements the pure slot-availability and
// interval-conflict computations used by the scheduling domain. It operates
// on plain data already fetched from storage and performs no I/O of its own.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds a valid time of day: [0, 1440).
const MinutesPerDay = 24 * 60

// ValidationError reports a malformed time-of-day string. Callers reject the
// offending input at the boundary instead of letting it propagate into the
// interval math.
type ValidationError struct {
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid time of day: %q (want HH:MM)", e.Value)
}

// ToMinutes converts a wall-clock "HH:MM" or "HH:MM:SS" string to minutes
// since midnight. Seconds must be a valid two-digit component but do not
// contribute to the result. Times are single-day wall-clock values; there is
// no timezone or rollover handling.
func ToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &ValidationError{Value: s}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, &ValidationError{Value: s}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, &ValidationError{Value: s}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &ValidationError{Value: s}
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 || sec < 0 || sec > 59 {
			return 0, &ValidationError{Value: s}
		}
	}
	return hour*60 + minute, nil
}

// FormatMinutes renders minutes-since-midnight as a 5-character "HH:MM"
// string. Output is always truncated to HH:MM even when the source carried
// seconds.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap. Every conflict
// and availability check in the system reduces to this one predicate.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
