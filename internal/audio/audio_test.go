package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func TestParseProbeOutput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "typical mp3",
			input: `{"format": {"filename": "clip.mp3", "duration": "2.345000", "format_name": "mp3"}}`,
			want:  2345 * time.Millisecond,
		},
		{
			name:  "long clip",
			input: `{"format": {"duration": "3725.5"}}`,
			want:  time.Hour + 2*time.Minute + 5500*time.Millisecond,
		},
		{
			name:    "missing duration",
			input:   `{"format": {}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			input:   `ffprobe: command not found`,
			wantErr: true,
		},
		{
			name:    "negative",
			input:   `{"format": {"duration": "-1"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeOutput([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDurationMissingFile(t *testing.T) {
	_, err := GetDuration(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProbeDuration(t *testing.T) {
	var gotTimeout time.Duration
	probe := func(fileName string, timeout time.Duration, kwargs ffmpeg.KwArgs) (string, error) {
		gotTimeout = timeout
		return `{"format":{"duration":"1.250000"}}`, nil
	}

	d, err := probeDuration(context.Background(), "clip.mp3", probe)
	if err != nil {
		t.Fatalf("probeDuration failed: %v", err)
	}
	if d != 1250*time.Millisecond {
		t.Errorf("duration = %v, want 1.25s", d)
	}
	if gotTimeout != probeTimeout {
		t.Errorf("timeout = %v, want %v", gotTimeout, probeTimeout)
	}
}

func TestProbeDurationCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	probe := func(fileName string, timeout time.Duration, kwargs ffmpeg.KwArgs) (string, error) {
		<-release
		return "", errors.New("killed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := probeDuration(ctx, "clip.mp3", probe)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation took %v", elapsed)
	}
}

func TestProbeDurationUsesContextDeadline(t *testing.T) {
	var gotTimeout time.Duration
	probe := func(fileName string, timeout time.Duration, kwargs ffmpeg.KwArgs) (string, error) {
		gotTimeout = timeout
		return `{"format":{"duration":"2"}}`, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := probeDuration(ctx, "clip.mp3", probe); err != nil {
		t.Fatalf("probeDuration failed: %v", err)
	}
	if gotTimeout <= 0 || gotTimeout > 5*time.Second {
		t.Errorf("timeout = %v, want at most the context deadline", gotTimeout)
	}
}
