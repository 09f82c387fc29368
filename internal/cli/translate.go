package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subtext/internal/config"
	"github.com/mgpai22/subtext/internal/translate"
	"github.com/spf13/cobra"
)

// swapped out by tests
var translatorFactory = translate.Factory

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate cue texts to another language using AI",
	Long: `Translate the text of every cue of an SRT file using AI. Timing is
left untouched and cues without text are not sent.

Cues the model returns no text for keep their original text. The
result is written next to the input as <name>.<language>.srt unless
-o is given.

Examples:
  subtext translate movie.srt --target-language japanese
  subtext translate movie.srt -t es --provider openai --model gpt-5-mini
  subtext translate movie.srt -l english -t german -o movie.de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("language", "l", "", "Source language (detected by the model when empty)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("prompt", "", "Extra instructions for the model, e.g. tone or glossary")
	translateCmd.Flags().
		Int("concurrency", translate.DefaultConcurrency, "Number of parallel translation requests")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of cues per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := cmd.Context()

	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	prompt, _ := cmd.Flags().GetString("prompt")

	providerStr := stringSetting(cmd, "provider", cfg.Translate.Provider)
	model := stringSetting(cmd, "model", cfg.Translate.Model)
	concurrency := intSetting(cmd, "concurrency", cfg.Translate.Concurrency)
	batchSize := intSetting(cmd, "batch-size", cfg.Translate.BatchSize)

	targetLang = strings.TrimSpace(targetLang)
	if targetLang == "" {
		return fmt.Errorf("target language is required")
	}

	if inputLang != "" &&
		strings.EqualFold(strings.TrimSpace(inputLang), targetLang) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider := translate.Provider(strings.ToLower(providerStr))

	if apiKey == "" {
		apiKey = cfg.APIKey(string(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			config.KeyEnvVar(string(provider)),
		)
	}

	if !modelOverride && !translate.IsSupportedModel(provider, model) {
		return fmt.Errorf(
			"unsupported %s model %q (use --model-override to bypass)",
			provider,
			model,
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	outPath := outputPath(cmd, siblingPath(subtitlePath, targetLang+".srt"))

	logger.Infow("Starting subtitle translation",
		"input", subtitlePath,
		"output", outPath,
		"target_language", targetLang,
		"input_language", inputLang,
		"provider", provider,
		"model", model,
	)

	doc, err := loadDocument(subtitlePath)
	if err != nil {
		return err
	}
	if doc.Len() == 0 {
		return fmt.Errorf("subtitle file contains no cues")
	}

	translator, err := translatorFactory(ctx, provider, apiKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
		Concurrency:    concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating subtitles",
		"cues", doc.Len(),
		"concurrency", concurrency,
		"batch_size", batchSize,
	)

	texts, err := translate.Texts(ctx, translator, doc.Texts())
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	applied := doc.ApplyTranslations(texts)
	if applied < doc.Len() {
		logger.Warnw("Some cues kept their original text",
			"translated", applied,
			"cues", doc.Len(),
		)
	}

	out, err := saveDocument(cmd, doc, outPath)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(out)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Subtitles translated successfully: %s\n", absOutput)
	fmt.Fprintf(w, "  Cues: %d (%d translated)\n", doc.Len(), applied)
	fmt.Fprintf(w, "  Target language: %s\n", targetLang)

	return nil
}
