package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subtext/internal/audio"
	"github.com/mgpai22/subtext/internal/config"
	"github.com/mgpai22/subtext/internal/speech"
	"github.com/spf13/cobra"
)

// swapped out by tests
var (
	synthesizerFactory               = speech.Factory
	clipProber         speech.Prober = audio.FFprobe{}
)

var speakCmd = &cobra.Command{
	Use:   "speak [subtitle_file]",
	Short: "Voice every cue and fit end times to the speech",
	Long: `Synthesize one audio clip per cue with a text-to-speech provider,
measure each clip and set the cue end time to start + clip length.

Clips are written to --audio-dir (default <name>_audio next to the
input). Cues without text are skipped and keep their timing. Clip
lengths are measured with ffprobe, so ffmpeg must be installed.

Examples:
  subtext speak movie.srt
  subtext speak movie.srt --voice nova --speed 1.2 --format wav
  subtext speak movie.srt --provider elevenlabs --voice 21m00Tcm4TlvDq8ikWAM`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().
		String("provider", "openai", "Speech provider (openai, elevenlabs)")
	speakCmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY/ELEVENLABS_API_KEY env var)")
	speakCmd.Flags().String("model", "", "Speech model (provider default when empty)")
	speakCmd.Flags().String("voice", "", "Voice name or id")
	speakCmd.Flags().Float64("speed", 1.0, "Speaking speed (OpenAI, 0.25-4.0)")
	speakCmd.Flags().String("instructions", "", "Delivery instructions (OpenAI gpt-4o-mini-tts)")
	speakCmd.Flags().String("format", speech.DefaultFormat, "Clip format (mp3, opus, aac, flac, wav; elevenlabs: mp3)")
	speakCmd.Flags().String("audio-dir", "", "Directory for the generated clips")
	speakCmd.Flags().Int("concurrency", 3, "Number of parallel speech requests")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := cmd.Context()

	apiKey, _ := cmd.Flags().GetString("api-key")
	instructions, _ := cmd.Flags().GetString("instructions")
	format, _ := cmd.Flags().GetString("format")

	providerStr := stringSetting(cmd, "provider", cfg.Speech.Provider)
	model := stringSetting(cmd, "model", cfg.Speech.Model)
	voice := stringSetting(cmd, "voice", cfg.Speech.Voice)
	speed := floatSetting(cmd, "speed", cfg.Speech.Speed)
	audioDir := stringSetting(cmd, "audio-dir", cfg.Speech.AudioDir)
	concurrency := intSetting(cmd, "concurrency", cfg.Speech.Concurrency)

	provider := speech.Provider(strings.ToLower(providerStr))
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")

	if apiKey == "" {
		apiKey = cfg.APIKey(string(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			config.KeyEnvVar(string(provider)),
		)
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}

	if audioDir == "" {
		base := strings.TrimSuffix(filepath.Base(subtitlePath), filepath.Ext(subtitlePath))
		audioDir = filepath.Join(filepath.Dir(subtitlePath), base+"_audio")
	}

	doc, err := loadDocument(subtitlePath)
	if err != nil {
		return err
	}
	if doc.Len() == 0 {
		return fmt.Errorf("subtitle file contains no cues")
	}

	synth, err := synthesizerFactory(provider, apiKey, speech.Options{
		Model:        model,
		Voice:        voice,
		Speed:        speed,
		Instructions: instructions,
		Format:       format,
	})
	if err != nil {
		return fmt.Errorf("failed to create synthesizer: %w", err)
	}

	logger.Infow("Synthesizing speech",
		"cues", doc.Len(),
		"provider", provider,
		"voice", voice,
		"audio_dir", audioDir,
		"concurrency", concurrency,
	)

	runner := &speech.Runner{
		Synthesizer: synth,
		Prober:      clipProber,
		Dir:         audioDir,
		Concurrency: concurrency,
	}
	clips, err := runner.Run(ctx, doc.Texts())
	if err != nil {
		return fmt.Errorf("speech synthesis failed: %w", err)
	}

	applied := doc.ApplySpeechDurations(speech.Durations(clips, doc.Len()))

	out, err := saveDocument(cmd, doc, subtitlePath)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, clip := range clips {
		fmt.Fprintf(w, "%4d  %-12s  %s\n", clip.Row+1, clip.Display(), clip.Path)
	}
	fmt.Fprintf(w, "Updated %d of %d cues in %s\n", applied, doc.Len(), out)

	return nil
}
