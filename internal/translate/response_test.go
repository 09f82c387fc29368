package translate

import (
	"strings"
	"testing"
)

func TestExtractTranslationResults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 0, "text": "こんにちは"},
				{"index": 1, "text": "さようなら"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here is the translation:
			[
				{"index": 0, "text": "Bonjour"},
				{"index": 1, "text": "Au revoir"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"index": 0, "text": "Hola"}
			]
			I hope this helps!`,
			wantCount: 1,
		},
		{
			name:      "code fenced JSON",
			input:     `[{"index": 0, "text": "翻訳されたテキスト"}]`,
			wantCount: 1,
		},
		{
			name: "wrapper object with results key",
			input: `{"results": [
				{"index": 0, "text": "Translated"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with translations key",
			input: `{"translations": [
				{"index": 0, "text": "Übersetzt"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with data key",
			input: `{"data": [
				{"index": 0, "text": "Переведено"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with items key",
			input: `{"items": [
				{"index": 2, "text": "Tradotto"}
			]}`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `This is just plain text.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"index": 0, "text": "incomplete"`,
			wantErr: true,
		},
		{
			name:    "array with empty text",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
		{
			name: "complex preamble",
			input: `I've translated the subtitles for you. Here is the JSON:

			[
				{"index": 0, "text": "First translation"},
				{"index": 1, "text": "Second translation"}
			]

			Let me know if you need anything else!`,
			wantCount: 2,
		},
		{
			name: "markup backslash in text",
			input: `[
				{"index": 0, "text": "{\an8}Up here\nand down there"}
			]`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractTranslationResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(results), tt.wantCount)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"index": 0, "text": "hello"}]`,
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"index\": 0}]\n```\n\n  ",
			want:  `[{"index": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateResults(t *testing.T) {
	tests := []struct {
		name    string
		results []TranslationResult
		want    bool
	}{
		{"empty slice", []TranslationResult{}, false},
		{"nil slice", nil, false},
		{
			"result with text",
			[]TranslationResult{{Index: 0, Text: "hello"}},
			true,
		},
		{
			"result with empty text",
			[]TranslationResult{{Index: 0, Text: ""}},
			false,
		},
		{
			"multiple results one valid",
			[]TranslationResult{
				{Index: 0, Text: ""},
				{Index: 1, Text: "valid"},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateResults(tt.results); got != tt.want {
				t.Errorf("validateResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	fenced := "```json\n[{\"index\": 4, \"text\": \"Hola\"}, {\"index\": 7, \"text\": \"Adiós\"}]\n```"

	results, err := parseResponse(fenced, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Index != 4 || results[1].Text != "Adiós" {
		t.Errorf("unexpected results: %+v", results)
	}

	if _, err := parseResponse(fenced, 3); err == nil {
		t.Error("expected error on result count mismatch")
	}
	if _, err := parseResponse("   ", 1); err == nil {
		t.Error("expected error on blank response")
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{\an8}`, `{\\an8}`},
		{`line\nnext`, `line\nnext`},
		{`quote \" kept`, `quote \" kept`},
		{`trailing \`, `trailing \`},
	}

	for _, tt := range tests {
		if got := fixInvalidEscapes(tt.input); got != tt.want {
			t.Errorf("fixInvalidEscapes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		InputLanguage:  "English",
		TargetLanguage: "Japanese",
		Prompt:         "keep honorifics",
	}

	items := []TranslationItem{
		{Index: 0, Text: "Hello world"},
		{Index: 3, Text: "Goodbye"},
	}

	prompt := BuildPrompt(opts, items)

	for _, want := range []string{
		"English subtitle texts",
		"to Japanese",
		"Hello world",
		`"index": 3`,
		"Additional instructions: keep honorifics",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	prompt := BuildPrompt(
		Options{TargetLanguage: "Spanish"},
		[]TranslationItem{{Index: 0, Text: "Hello"}},
	)

	if strings.Contains(prompt, "English") || strings.Contains(prompt, "Additional") {
		t.Error("prompt should not mention unset options")
	}
	if !strings.Contains(prompt, "to Spanish") {
		t.Error("prompt should contain target language")
	}
}
