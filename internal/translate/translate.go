package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mgpai22/subtext/internal/workpool"
)

// one cue text sent for translation, Index is the cue row
type TranslationItem struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// translated cue text
type TranslationResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// interface for text translation
type Translator interface {
	Translate(
		ctx context.Context,
		items []TranslationItem,
	) ([]TranslationResult, error)
}

// translation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
)

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
	Concurrency    int // batches in flight (default 3)
}

// creates Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

var geminiModels = []string{
	"gemini-3-pro-preview",
	"gemini-3-flash-preview",
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
}

var openAIModels = []string{
	"o1",
	"o1-pro",
	"o3",
	"o3-mini",
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"gpt-4.1-mini",
	"gpt-5",
	"gpt-5-mini",
	"gpt-5-nano",
	"gpt-5-pro",
	"gpt-5.1",
	"gpt-5.2",
	"gpt-5.2-pro",
}

// IsSupportedModel reports whether model can be requested from provider.
// An empty model selects the provider default and is always accepted.
func IsSupportedModel(provider Provider, model string) bool {
	if model == "" {
		return true
	}
	switch provider {
	case ProviderGemini:
		return slices.Contains(geminiModels, model)
	case ProviderOpenAI:
		return slices.Contains(openAIModels, model)
	case ProviderAnthropic:
		return strings.HasPrefix(model, "claude-")
	default:
		return false
	}
}

// Texts translates one text per cue row. Blank texts are not sent and
// come back as empty strings, as do rows the model did not return.
func Texts(
	ctx context.Context,
	translator Translator,
	texts []string,
) ([]string, error) {
	items := make([]TranslationItem, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: text})
	}

	translated := make([]string, len(texts))
	if len(items) == 0 {
		return translated, nil
	}

	results, err := translator.Translate(ctx, items)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Index < 0 || r.Index >= len(texts) {
			continue
		}
		translated[r.Index] = r.Text
	}
	return translated, nil
}

// sends one prompt and returns the raw model text
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// batching and fan-out shared by all providers
type batchTranslator struct {
	backend completer
	options Options
}

func (t *batchTranslator) batchSize() int {
	if t.options.BatchSize > 0 {
		return t.options.BatchSize
	}
	return DefaultBatchSize
}

func (t *batchTranslator) concurrency() int {
	if t.options.Concurrency > 0 {
		return t.options.Concurrency
	}
	return DefaultConcurrency
}

// Items are split into batches of BatchSize. Each batch becomes one API
// request and up to Concurrency requests run at once.
func (t *batchTranslator) Translate(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	batchSize := t.batchSize()
	var batches [][]TranslationItem
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}

	if len(batches) == 1 {
		return t.translateBatch(ctx, batches[0])
	}

	perBatch, err := workpool.Run(
		ctx,
		len(batches),
		t.concurrency(),
		func(ctx context.Context, i int) ([]TranslationResult, error) {
			return t.translateBatch(ctx, batches[i])
		},
	)
	if err != nil {
		return nil, err
	}

	var allResults []TranslationResult
	for _, results := range perBatch {
		allResults = append(allResults, results...)
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Index < allResults[j].Index
	})

	return allResults, nil
}

func (t *batchTranslator) translateBatch(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	text, err := t.backend.complete(ctx, BuildPrompt(t.options, items))
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	return parseResponse(text, len(items))
}

// BuildPrompt creates the translation prompt for LLM providers
func BuildPrompt(opts Options, items []TranslationItem) string {
	var sb strings.Builder

	if opts.InputLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s subtitle texts to %s.\n\n",
			opts.InputLanguage,
			opts.TargetLanguage,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following subtitle texts to %s.\n\n",
			opts.TargetLanguage,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString(
		"1. Translate ONLY the text content, preserving the meaning.\n",
	)
	sb.WriteString(
		"2. Keep any markup (like <i>, <b>, {\\an8}) unchanged.\n",
	)
	sb.WriteString("3. Keep the same number of lines in each text.\n")
	sb.WriteString("4. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("5. Each object must have 'index' and 'text' fields.\n")
	sb.WriteString(
		"6. The 'index' values must match the input indices exactly.\n",
	)
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt),
		)
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}
