package speech

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// turns one cue text into encoded audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, w io.Writer) error
	// audio format the provider returns, without the dot
	Format() string
}

// text-to-speech service provider
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderElevenLabs Provider = "elevenlabs"
)

const DefaultFormat = "mp3"

type Options struct {
	Model        string
	Voice        string
	Speed        float64 // 0 keeps the provider default
	Instructions string
	Format       string // audio format, mp3 when empty
	BaseURL      string // overrides the provider endpoint
}

// creates Synthesizer based on provider
func Factory(provider Provider, apiKey string, opts Options) (Synthesizer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAISynthesizer(apiKey, opts)
	case ProviderElevenLabs:
		return NewElevenLabsSynthesizer(apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", provider)
	}
}
