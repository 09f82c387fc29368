package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	content := "1\n" +
		"00:00:01,000 --> 00:00:04,000\n" +
		"Hello, world!\n" +
		"\n" +
		"2\n" +
		"00:00:05,500 --> 00:00:08,200\n" +
		"This is a test.\n" +
		"With multiple lines.\n" +
		"\n" +
		"3\n" +
		"00:00:10,000 --> 00:00:12,500\n" +
		"Final subtitle.\n"

	doc := Parse(content)

	want := []Cue{
		{Start: 1000, End: 4000, Text: "Hello, world!"},
		{Start: 5500, End: 8200, Text: "This is a test.\nWith multiple lines."},
		{Start: 10000, End: 12500, Text: "Final subtitle."},
	}
	if diff := cmp.Diff(want, doc.Cues()); diff != "" {
		t.Errorf("cues mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLineEndings(t *testing.T) {
	lf := "1\n00:00:01,000 --> 00:00:02,000\nA\nB\n\n2\n00:00:03,000 --> 00:00:04,000\nC"
	crlf := "1\r\n00:00:01,000 --> 00:00:02,000\r\nA\r\nB\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nC\r\n"

	if diff := cmp.Diff(Parse(lf).Cues(), Parse(crlf).Cues()); diff != "" {
		t.Errorf("LF and CRLF parse differently (-lf +crlf):\n%s", diff)
	}
	if n := Parse(lf).Len(); n != 2 {
		t.Errorf("expected 2 cues without trailing blank line, got %d", n)
	}
}

func TestParseDropsMalformedBlocks(t *testing.T) {
	content := "1\r\nbad-timing-line\r\ntext\r\n\r\n2\r\n00:00:01,000 --> 00:00:02,000\r\nHello\r\n"

	doc, report := ParseWithReport(content)

	want := []Cue{{Start: 1000, End: 2000, Text: "Hello"}}
	if diff := cmp.Diff(want, doc.Cues()); diff != "" {
		t.Errorf("cues mismatch (-want +got):\n%s", diff)
	}
	if report.Blocks != 2 || report.Dropped != 1 {
		t.Errorf("report = %+v, want 2 blocks and 1 dropped", report)
	}
	if diff := cmp.Diff([]int{1}, report.DroppedLines); diff != "" {
		t.Errorf("dropped lines mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlockEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Cue
	}{
		{
			name:    "single line block dropped",
			content: "1\n\n2\n00:00:01,000 --> 00:00:02,000\nkept",
			want:    []Cue{{Start: 1000, End: 2000, Text: "kept"}},
		},
		{
			name:    "empty text allowed",
			content: "1\n00:00:01,000 --> 00:00:02,000\n",
			want:    []Cue{{Start: 1000, End: 2000, Text: ""}},
		},
		{
			name:    "index line is never validated",
			content: "not a number\n00:00:01,000 --> 00:00:02,000\nx",
			want:    []Cue{{Start: 1000, End: 2000, Text: "x"}},
		},
		{
			name:    "arrow whitespace tolerated",
			content: "1\n  00:00:01,000-->\t00:00:02,000  \nx",
			want:    []Cue{{Start: 1000, End: 2000, Text: "x"}},
		},
		{
			name:    "dot separator rejected",
			content: "1\n00:00:01.000 --> 00:00:02.000\nx",
			want:    nil,
		},
		{
			name:    "whitespace-only line separates blocks",
			content: "1\n00:00:01,000 --> 00:00:02,000\na\n   \n2\n00:00:03,000 --> 00:00:04,000\nb",
			want: []Cue{
				{Start: 1000, End: 2000, Text: "a"},
				{Start: 3000, End: 4000, Text: "b"},
			},
		},
		{
			name:    "repeated blank lines",
			content: "\n\n1\n00:00:01,000 --> 00:00:02,000\na\n\n\n\n",
			want:    []Cue{{Start: 1000, End: 2000, Text: "a"}},
		},
		{
			name:    "byte order mark stripped",
			content: "\ufeff1\n00:00:01,000 --> 00:00:02,000\na",
			want:    []Cue{{Start: 1000, End: 2000, Text: "a"}},
		},
		{
			name:    "end before start kept",
			content: "1\n23:59:59,000 --> 00:00:01,000\nmidnight",
			want:    []Cue{{Start: 86399000, End: 1000, Text: "midnight"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content).Cues()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("cues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	doc := NewDocument([]Cue{
		{Start: 1000, End: 4000, Text: "Hello"},
		{Start: 5500, End: 8200, Text: "Two\nlines"},
	})

	want := "1\r\n00:00:01,000 --> 00:00:04,000\r\nHello\r\n" +
		"\r\n" +
		"2\r\n00:00:05,500 --> 00:00:08,200\r\nTwo\r\nlines\r\n"

	if got := Serialize(doc); got != want {
		t.Errorf("Serialize mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestSerializeEmpty(t *testing.T) {
	if got := Serialize(New()); got != "" {
		t.Errorf("Serialize(empty) = %q, want empty string", got)
	}
	if n := Parse("").Len(); n != 0 {
		t.Errorf("Parse(\"\") produced %d cues", n)
	}
}

func TestSerializeRenumbers(t *testing.T) {
	content := "7\r\n00:00:01,000 --> 00:00:02,000\r\na\r\n\r\n42\r\n00:00:03,000 --> 00:00:04,000\r\nb\r\n"
	want := "1\r\n00:00:01,000 --> 00:00:02,000\r\na\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nb\r\n"

	if got := Serialize(Parse(content)); got != want {
		t.Errorf("renumbered output mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	doc := NewDocument([]Cue{
		{Start: 0, End: 1500, Text: "first"},
		{Start: 86399000, End: 500, Text: "over midnight"},
		{Start: 3723004, End: 3725000, Text: "multi\nline\ntext"},
		{Start: 90000000, End: 359999999, Text: "past a day"},
	})

	first := Serialize(doc)
	second := Serialize(Parse(first))
	if first != second {
		t.Errorf("round trip changed output:\nfirst  %q\nsecond %q", first, second)
	}
	if diff := cmp.Diff(doc.Cues(), Parse(first).Cues()); diff != "" {
		t.Errorf("round trip cues mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "nested", "test.srt")

	doc := NewDocument([]Cue{{Start: 1000, End: 2000, Text: "saved"}})
	if err := Save(doc, srtPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != "1\r\n00:00:01,000 --> 00:00:02,000\r\nsaved\r\n" {
		t.Errorf("unexpected file content %q", data)
	}

	opened, report, err := Open(srtPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if report.Dropped != 0 {
		t.Errorf("expected no dropped blocks, got %d", report.Dropped)
	}
	if diff := cmp.Diff(doc.Cues(), opened.Cues()); diff != "" {
		t.Errorf("cues mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.srt"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
