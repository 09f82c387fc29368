package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// reads clip durations with ffprobe
type FFprobe struct{}

func (FFprobe) Duration(ctx context.Context, path string) (time.Duration, error) {
	return GetDuration(ctx, path)
}

// upper bound for one ffprobe run when ctx carries no deadline
const probeTimeout = 30 * time.Second

type probeFunc func(fileName string, timeout time.Duration, kwargs ffmpeg.KwArgs) (string, error)

// duration of an audio file
func GetDuration(ctx context.Context, filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("ffprobe is required to measure clips: %w", err)
	}

	return probeDuration(ctx, filePath, ffmpeg.ProbeWithTimeout)
}

// probeDuration returns as soon as ctx ends; the ffprobe process itself is
// killed by the timeout passed to probe
func probeDuration(ctx context.Context, filePath string, probe probeFunc) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	timeout := probeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := probe(filePath, timeout, nil)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("ffprobe interrupted: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return 0, fmt.Errorf("ffprobe failed: %w", r.err)
		}
		return parseProbeOutput([]byte(r.out))
	}
}

func parseProbeOutput(data []byte) (time.Duration, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration: %v", seconds)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
