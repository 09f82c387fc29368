package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	longDurationRegex   = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[.,](\d{3})$`)
	mediumDurationRegex = regexp.MustCompile(`^(\d{2}):(\d{2})[.,](\d{1,3})$`)
	secondsRegex        = regexp.MustCompile(`^(\d+)(?:[.,](\d+))?\s*[sS]?$`)
)

// ParseDuration normalizes a free-form duration, as reported by a
// text-to-speech collaborator, into milliseconds. Accepted forms, tried in
// order: "HH:MM:SS.mmm", "MM:SS.mmm" and plain seconds such as "12.345s".
// Either '.' or ',' separates the fraction.
func ParseDuration(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidDuration)
	}

	if m := longDurationRegex.FindStringSubmatch(trimmed); m != nil {
		return toMillis(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4])), nil
	}

	if m := mediumDurationRegex.FindStringSubmatch(trimmed); m != nil {
		return toMillis(0, atoi(m[1]), atoi(m[2]), fractionMillis(m[3])), nil
	}

	if m := secondsRegex.FindStringSubmatch(trimmed); m != nil {
		seconds, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || seconds > (math.MaxInt64-999)/1000 {
			return 0, fmt.Errorf("%w: %q out of range", ErrInvalidDuration, s)
		}
		return seconds*1000 + fractionMillis(m[2]), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}

// pads or truncates a decimal fraction to exactly three digits, no rounding
func fractionMillis(fraction string) int64 {
	if fraction == "" {
		return 0
	}
	if len(fraction) > 3 {
		fraction = fraction[:3]
	}
	for len(fraction) < 3 {
		fraction += "0"
	}
	return atoi(fraction)
}

// FormatClipDuration renders a measured audio length the way speech
// collaborators report it: "MM:SS.mmm", or "HH:MM:SS.mmm" from one hour up.
func FormatClipDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000 s"
	}

	ms := d.Round(time.Millisecond).Milliseconds()
	hours := ms / 3_600_000
	minutes := (ms / 60_000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
