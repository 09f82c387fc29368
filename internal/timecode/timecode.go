package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// one day in milliseconds, the modulus used by timeline arithmetic
const Day int64 = 24 * 60 * 60 * 1000

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp format")
	ErrInvalidDuration  = errors.New("invalid duration format")
	ErrInvalidRange     = errors.New("invalid time range")
)

var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

func toMillis(hours, minutes, seconds, millis int64) int64 {
	return ((hours*60+minutes)*60+seconds)*1000 + millis
}

// Parse converts a canonical HH:MM:SS,mmm timestamp to milliseconds.
// The input is not trimmed and hours are not bounded.
func Parse(s string) (int64, error) {
	m := timestampRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return toMillis(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4])), nil
}

// Format renders milliseconds as HH:MM:SS,mmm. Hours do not wrap at 24
// and widen past two digits for very large values.
func Format(ms int64) string {
	hours := ms / 3_600_000
	minutes := (ms / 60_000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// for fixed-width digit groups only, which always fit
func atoi(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
