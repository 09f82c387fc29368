package speech

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var openAIFormats = []string{"mp3", "opus", "aac", "flac", "wav"}

// implements Synthesizer using the OpenAI speech endpoint
type OpenAISynthesizer struct {
	client  openai.Client
	model   string
	voice   string
	format  string
	options Options
}

func NewOpenAISynthesizer(apiKey string, opts Options) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if opts.Speed != 0 && (opts.Speed < 0.25 || opts.Speed > 4.0) {
		return nil, fmt.Errorf("speed must be between 0.25 and 4.0, got %v", opts.Speed)
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = openai.SpeechModelGPT4oMiniTTS
	}
	voice := opts.Voice
	if voice == "" {
		voice = string(openai.AudioSpeechNewParamsVoiceAlloy)
	}
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	if !slices.Contains(openAIFormats, format) {
		return nil, fmt.Errorf("unsupported OpenAI audio format %q", format)
	}

	return &OpenAISynthesizer{
		client:  openai.NewClient(requestOpts...),
		model:   model,
		voice:   voice,
		format:  format,
		options: opts,
	}, nil
}

func (s *OpenAISynthesizer) Format() string {
	return s.format
}

func (s *OpenAISynthesizer) Synthesize(
	ctx context.Context,
	text string,
	w io.Writer,
) error {
	params := openai.AudioSpeechNewParams{
		Input:          text,
		Model:          s.model,
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormat(s.format),
	}
	if s.options.Speed != 0 {
		params.Speed = openai.Float(s.options.Speed)
	}
	if s.options.Instructions != "" {
		params.Instructions = openai.String(s.options.Instructions)
	}

	resp, err := s.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return fmt.Errorf("speech request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read speech audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("empty audio from OpenAI")
	}
	return nil
}
