package subtitle

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/subtext/internal/timecode"
)

// Serialize renders the document as SRT. Cues are renumbered from 1,
// records are separated by a blank line, every line ends in CRLF and the
// last record has no trailing blank line.
func Serialize(doc *Document) string {
	var sb strings.Builder
	for i, cue := range doc.cues {
		if i > 0 {
			sb.WriteString("\r\n")
		}

		// index (1-based)
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString("\r\n")

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(timecode.Format(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(timecode.Format(cue.End))
		sb.WriteString("\r\n")

		for _, line := range cue.Lines() {
			sb.WriteString(line)
			sb.WriteString("\r\n")
		}
	}
	return sb.String()
}

// interface for writing a document in one format
type Writer interface {
	Write(doc *Document, w io.Writer) error
}

// SubRip format
type SRTWriter struct{}

func (SRTWriter) Write(doc *Document, w io.Writer) error {
	_, err := io.WriteString(w, Serialize(doc))
	return err
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return SRTWriter{}, nil
	case FormatVTT, FormatSSA:
		return astisubWriter{format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Export writes doc to w in the given format.
func Export(doc *Document, format Format, w io.Writer) error {
	writer, err := NewWriter(format)
	if err != nil {
		return err
	}
	return writer.Write(doc, w)
}

// subtitle format based on file extension
func FormatFromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".ass", ".ssa":
		return FormatSSA, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatSSA:
		return ".ass"
	default:
		return ".srt"
	}
}
