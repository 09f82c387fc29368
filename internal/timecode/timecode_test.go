package timecode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"00:00:00,000", 0, false},
		{"00:00:01,000", 1000, false},
		{"01:02:03,004", 3723004, false},
		{"23:59:59,999", Day - 1, false},
		{"99:59:59,999", 359999999, false},
		{"25:00:00,000", 25 * 3600 * 1000, false},

		{"", 0, true},
		{"0:00:00,000", 0, true},
		{"00:00:00.000", 0, true},
		{"00:00:00,00", 0, true},
		{"00:00:00,0000", 0, true},
		{" 00:00:00,000", 0, true},
		{"00:00:00,000 ", 0, true},
		{"00-00-00,000", 0, true},
		{"aa:bb:cc,ddd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimestamp) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidTimestamp", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00,000"},
		{1, "00:00:00,001"},
		{61001, "00:01:01,001"},
		{3723004, "01:02:03,004"},
		{Day - 1, "23:59:59,999"},
		{Day, "24:00:00,000"},
		{100 * 3600 * 1000, "100:00:00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.ms); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	check := func(ms int64) {
		t.Helper()
		got, err := Parse(Format(ms))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) error: %v", ms, err)
		}
		if got != ms {
			t.Fatalf("Parse(Format(%d)) = %d", ms, got)
		}
	}

	for _, ms := range []int64{0, 999, 1000, 59999, 60000, 3599999, Day - 1, Day, Day + 1, 359999000, 359999999} {
		check(ms)
	}
	for ms := int64(0); ms <= 359999000; ms += 7919 {
		check(ms)
	}
}
