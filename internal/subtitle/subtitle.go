package subtitle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mgpai22/subtext/internal/timecode"
)

var (
	ErrMalformedBlock = errors.New("malformed cue block")
	ErrOutOfRange     = errors.New("cue position out of range")
)

// represents single caption entry, times in milliseconds since midnight
type Cue struct {
	Start int64
	End   int64
	Text  string
}

// Lines returns the display lines of the cue text.
func (c Cue) Lines() []string {
	return strings.Split(c.Text, "\n")
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatSSA Format = "ssa"
)

// Document owns an ordered cue sequence. Row order is the on-screen order
// and does not have to be chronological.
type Document struct {
	cues []Cue
}

func New() *Document {
	return &Document{}
}

// NewDocument builds a document from a copy of cues.
func NewDocument(cues []Cue) *Document {
	return &Document{cues: append([]Cue(nil), cues...)}
}

func (d *Document) Len() int {
	return len(d.cues)
}

// Cues returns a copy of the cue sequence.
func (d *Document) Cues() []Cue {
	return append([]Cue(nil), d.cues...)
}

func (d *Document) Cue(i int) (Cue, error) {
	if err := d.checkIndex(i); err != nil {
		return Cue{}, err
	}
	return d.cues[i], nil
}

// Texts returns every cue text in row order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.cues))
	for i, c := range d.cues {
		texts[i] = c.Text
	}
	return texts
}

// Add appends an empty cue and returns its position.
func (d *Document) Add() int {
	d.cues = append(d.cues, Cue{})
	return len(d.cues) - 1
}

// Insert places cue at position i, shifting later rows down. i may equal
// Len to append.
func (d *Document) Insert(i int, cue Cue) error {
	if i < 0 || i > len(d.cues) {
		return fmt.Errorf("%w: %d (0-%d)", ErrOutOfRange, i, len(d.cues))
	}
	d.cues = append(d.cues, Cue{})
	copy(d.cues[i+1:], d.cues[i:])
	d.cues[i] = cue
	return nil
}

func (d *Document) Remove(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.cues = append(d.cues[:i], d.cues[i+1:]...)
	return nil
}

// RemoveMany deletes every listed row. Duplicates are ignored and nothing
// is removed if any position is out of range.
func (d *Document) RemoveMany(positions []int) error {
	remove := make(map[int]bool, len(positions))
	for _, p := range positions {
		if err := d.checkIndex(p); err != nil {
			return err
		}
		remove[p] = true
	}

	kept := d.cues[:0]
	for i, c := range d.cues {
		if !remove[i] {
			kept = append(kept, c)
		}
	}
	d.cues = kept
	return nil
}

func (d *Document) SetStart(i int, ms int64) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.cues[i].Start = ms
	return nil
}

func (d *Document) SetEnd(i int, ms int64) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.cues[i].End = ms
	return nil
}

func (d *Document) SetText(i int, text string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.cues[i].Text = text
	return nil
}

// SetTiming updates a cue from canonical timestamps. Either value may be
// empty to keep the current one. The cue is untouched on any parse error.
func (d *Document) SetTiming(i int, start, end string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}

	cue := d.cues[i]
	if start != "" {
		ms, err := timecode.Parse(start)
		if err != nil {
			return fmt.Errorf("start time: %w", err)
		}
		cue.Start = ms
	}
	if end != "" {
		ms, err := timecode.Parse(end)
		if err != nil {
			return fmt.Errorf("end time: %w", err)
		}
		cue.End = ms
	}

	d.cues[i] = cue
	return nil
}

// Duration is the display span of cue i, wrapping once over midnight.
func (d *Document) Duration(i int) (int64, error) {
	if err := d.checkIndex(i); err != nil {
		return 0, err
	}
	return timecode.Between(d.cues[i].Start, d.cues[i].End)
}

// ApplyTranslations replaces cue texts with translated ones, row by row.
// Blank translations keep the original text. Returns the number applied.
func (d *Document) ApplyTranslations(texts []string) int {
	n := min(len(d.cues), len(texts))
	applied := 0
	for i := 0; i < n; i++ {
		translated := strings.TrimSpace(texts[i])
		if translated == "" {
			continue
		}
		d.cues[i].Text = translated
		applied++
	}
	return applied
}

// ApplySpeechDurations moves each cue end to start+duration using the
// duration strings reported by a speech collaborator. Rows whose duration
// does not parse are left unchanged. Returns the number applied.
func (d *Document) ApplySpeechDurations(durations []string) int {
	n := min(len(d.cues), len(durations))
	applied := 0
	for i := 0; i < n; i++ {
		ms, err := timecode.ParseDuration(durations[i])
		if err != nil {
			continue
		}
		d.cues[i].End = timecode.Add(d.cues[i].Start, ms)
		applied++
	}
	return applied
}

func (d *Document) checkIndex(i int) error {
	if i < 0 || i >= len(d.cues) {
		return fmt.Errorf(
			"%w: %d (0-%d)",
			ErrOutOfRange,
			i,
			len(d.cues)-1,
		)
	}
	return nil
}
