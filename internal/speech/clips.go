package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mgpai22/subtext/internal/timecode"
	"github.com/mgpai22/subtext/internal/workpool"
)

// measures a rendered clip
type Prober interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// one rendered cue
type Clip struct {
	Row      int
	Path     string
	Duration time.Duration
}

// Display renders the clip length the way cue durations are written,
// e.g. "00:02.345".
func (c Clip) Display() string {
	return timecode.FormatClipDuration(c.Duration)
}

// renders cue texts to audio files concurrently
type Runner struct {
	Synthesizer Synthesizer
	Prober      Prober
	Dir         string
	Concurrency int
	Now         func() time.Time

	mu    sync.Mutex
	taken map[string]bool
}

// Run renders every non-blank text and returns the clips in row order.
// Blank rows produce no clip.
func (r *Runner) Run(ctx context.Context, texts []string) ([]Clip, error) {
	if r.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var rows []int
	for i, text := range texts {
		if strings.TrimSpace(text) != "" {
			rows = append(rows, i)
		}
	}

	return workpool.Run(ctx, len(rows), r.Concurrency, func(ctx context.Context, i int) (Clip, error) {
		row := rows[i]
		clip, err := r.render(ctx, row, strings.TrimSpace(texts[row]))
		if err != nil {
			return Clip{}, fmt.Errorf("row %d: %w", row+1, err)
		}
		return clip, nil
	})
}

func (r *Runner) render(ctx context.Context, row int, text string) (Clip, error) {
	path := r.clipPath(text, row, r.Synthesizer.Format())
	if err := r.synthesizeTo(ctx, text, path); err != nil {
		return Clip{}, err
	}

	d, err := r.Prober.Duration(ctx, path)
	if err != nil {
		return Clip{}, fmt.Errorf("failed to measure %s: %w", filepath.Base(path), err)
	}

	return Clip{Row: row, Path: path, Duration: d}, nil
}

func (r *Runner) synthesizeTo(ctx context.Context, text, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}

	if err := r.Synthesizer.Synthesize(ctx, text, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

var slugRegex = regexp.MustCompile(`[^A-Za-z0-9]+`)

// clipPath names a clip <utc timestamp>_<row>_<slug>.<format>, adding a
// counter when the name is already used on disk or by this run
func (r *Runner) clipPath(text string, row int, format string) string {
	slug := strings.Join(strings.Fields(text), " ")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	slug = strings.Trim(slugRegex.ReplaceAllString(slug, "_"), "_")
	if slug == "" {
		slug = "line"
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	base := fmt.Sprintf("%s_%03d_%s", now().UTC().Format("20060102_150405"), row+1, slug)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken == nil {
		r.taken = make(map[string]bool)
	}

	candidate := filepath.Join(r.Dir, base+"."+format)
	for counter := 1; r.taken[candidate] || fileExists(candidate); counter++ {
		candidate = filepath.Join(r.Dir, fmt.Sprintf("%s_%d.%s", base, counter, format))
	}
	r.taken[candidate] = true
	return candidate
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Durations lays clip lengths out per row for a document of rows cues.
// Rows without a clip get an empty string.
func Durations(clips []Clip, rows int) []string {
	out := make([]string, rows)
	for _, c := range clips {
		if c.Row >= 0 && c.Row < rows {
			out[c.Row] = c.Display()
		}
	}
	return out
}
