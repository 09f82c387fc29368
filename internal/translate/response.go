package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRegex = regexp.MustCompile("```(?:json)?\\s*")

// turns raw model output into exactly expectedCount results
func parseResponse(text string, expectedCount int) ([]TranslationResult, error) {
	text = cleanJSONResponse(text)
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	results, err := extractTranslationResults(text)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(text, 200),
		)
	}

	if len(results) != expectedCount {
		return nil, fmt.Errorf(
			"expected %d results, got %d",
			expectedCount,
			len(results),
		)
	}

	return results, nil
}

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = codeFenceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// escapes backslashes that do not start a valid JSON escape, e.g. {\an8}
func fixInvalidEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch next {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
			b.WriteByte('\\')
		default:
			b.WriteString(`\\`)
		}
		b.WriteByte(next)
		i++
	}

	return b.String()
}

// finds the first JSON value in text that holds translation results,
// either a bare array or an array under a wrapper object key
func extractTranslationResults(text string) ([]TranslationResult, error) {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if results, ok := tryExtractResults(raw); ok {
			return results, nil
		}
	}
	return nil, fmt.Errorf("no valid translation JSON found in response")
}

var wrapperKeys = []string{"results", "translations", "data", "items"}

func tryExtractResults(raw json.RawMessage) ([]TranslationResult, bool) {
	var results []TranslationResult
	if err := json.Unmarshal(raw, &results); err == nil {
		return results, validateResults(results)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range wrapperKeys {
		if field, ok := wrapper[key]; ok {
			if results, ok := decodeResults(field); ok {
				return results, true
			}
		}
	}
	for _, field := range wrapper {
		if results, ok := decodeResults(field); ok {
			return results, true
		}
	}

	return nil, false
}

func decodeResults(raw json.RawMessage) ([]TranslationResult, bool) {
	var results []TranslationResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, validateResults(results)
}

// at least one result must carry text
func validateResults(results []TranslationResult) bool {
	for _, r := range results {
		if r.Text != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
