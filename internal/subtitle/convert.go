package subtitle

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

var errNothingToExport = errors.New("document has no cues to export")

// WebVTT and SSA go through astisub
type astisubWriter struct {
	format Format
}

func (a astisubWriter) Write(doc *Document, w io.Writer) error {
	if doc.Len() == 0 {
		return errNothingToExport
	}

	subs := toAstisub(doc)
	switch a.format {
	case FormatVTT:
		return subs.WriteToWebVTT(w)
	case FormatSSA:
		return subs.WriteToSSA(w)
	default:
		return fmt.Errorf("unsupported format: %s", a.format)
	}
}

func toAstisub(doc *Document) *astisub.Subtitles {
	subs := astisub.NewSubtitles()
	for i, cue := range doc.cues {
		item := &astisub.Item{
			Index:   i + 1,
			StartAt: time.Duration(cue.Start) * time.Millisecond,
			EndAt:   time.Duration(cue.End) * time.Millisecond,
		}
		for _, line := range cue.Lines() {
			item.Lines = append(item.Lines, astisub.Line{
				Items: []astisub.LineItem{{Text: line}},
			})
		}
		subs.Items = append(subs.Items, item)
	}
	return subs
}

// Import reads a subtitle stream of the given format into a document.
// Foreign timestamps are truncated to whole milliseconds.
func Import(format Format, r io.Reader) (*Document, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)

	switch format {
	case FormatSRT:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read SRT: %w", err)
		}
		return Parse(string(data)), nil
	case FormatVTT:
		subs, err = astisub.ReadFromWebVTT(r)
	case FormatSSA:
		subs, err = astisub.ReadFromSSA(r)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}

	doc := New()
	for _, item := range subs.Items {
		lines := make([]string, len(item.Lines))
		for i, line := range item.Lines {
			lines[i] = line.String()
		}
		doc.cues = append(doc.cues, Cue{
			Start: item.StartAt.Milliseconds(),
			End:   item.EndAt.Milliseconds(),
			Text:  strings.Join(lines, "\n"),
		})
	}
	return doc, nil
}
