package subtitle

import (
	"regexp"
	"strings"

	"github.com/mgpai22/subtext/internal/timecode"
)

var timingRegex = regexp.MustCompile(
	`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`,
)

// Report describes what a parse kept and what it dropped.
type Report struct {
	Blocks       int   // non-empty blocks seen
	Dropped      int   // blocks that produced no cue
	DroppedLines []int // 1-based line where each dropped block starts
}

// Parse reads SRT text into a document. Blocks without a valid timing
// line are skipped so one corrupt entry does not lose the rest.
func Parse(text string) *Document {
	doc, _ := ParseWithReport(text)
	return doc
}

// ParseWithReport is Parse plus diagnostics about skipped blocks.
func ParseWithReport(text string) (*Document, Report) {
	doc := New()
	var report Report

	var block []string
	blockStart := 0

	flush := func() {
		if len(block) == 0 {
			return
		}
		report.Blocks++
		if cue, err := parseBlock(block); err == nil {
			doc.cues = append(doc.cues, cue)
		} else {
			report.Dropped++
			report.DroppedLines = append(report.DroppedLines, blockStart)
		}
		block = nil
	}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if len(block) == 0 {
			blockStart = i + 1
		}
		block = append(block, line)
	}
	flush()

	return doc, report
}

// first line is the legacy index and is never read
func parseBlock(lines []string) (Cue, error) {
	if len(lines) < 2 {
		return Cue{}, ErrMalformedBlock
	}

	m := timingRegex.FindStringSubmatch(lines[1])
	if m == nil {
		return Cue{}, ErrMalformedBlock
	}

	start, err := timecode.Parse(m[1])
	if err != nil {
		return Cue{}, ErrMalformedBlock
	}
	end, err := timecode.Parse(m[2])
	if err != nil {
		return Cue{}, ErrMalformedBlock
	}

	return Cue{
		Start: start,
		End:   end,
		Text:  strings.Join(lines[2:], "\n"),
	}, nil
}
