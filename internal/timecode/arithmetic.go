package timecode

import "fmt"

// Between returns the length of the span from start to end. A negative
// difference is treated as crossing midnight exactly once.
func Between(start, end int64) (int64, error) {
	diff := end - start
	if diff < 0 {
		diff += Day
	}
	if diff < 0 {
		return 0, fmt.Errorf(
			"%w: %d --> %d",
			ErrInvalidRange,
			start,
			end,
		)
	}
	return diff, nil
}

// Add moves start forward by dur, wrapping into [0, Day).
func Add(start, dur int64) int64 {
	end := (start%Day + dur%Day) % Day
	if end < 0 {
		end += Day
	}
	return end
}

// BetweenStrings is Between over canonical timestamps. It returns the
// formatted span, or "" when either side does not parse.
func BetweenStrings(start, end string) string {
	startMs, err := Parse(start)
	if err != nil {
		return ""
	}
	endMs, err := Parse(end)
	if err != nil {
		return ""
	}
	diff, err := Between(startMs, endMs)
	if err != nil {
		return ""
	}
	return Format(diff)
}

// AddStrings is Add over canonical timestamps, "" on invalid input.
func AddStrings(start, dur string) string {
	startMs, err := Parse(start)
	if err != nil {
		return ""
	}
	durMs, err := Parse(dur)
	if err != nil {
		return ""
	}
	return Format(Add(startMs, durMs))
}
