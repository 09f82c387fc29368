package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

// implements Synthesizer using the ElevenLabs text-to-speech API
type ElevenLabsSynthesizer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	voice      string
}

func NewElevenLabsSynthesizer(apiKey string, opts Options) (*ElevenLabsSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	voice := strings.TrimSpace(opts.Voice)
	if voice == "" {
		return nil, fmt.Errorf("an ElevenLabs voice id is required")
	}

	if opts.Format != "" && opts.Format != DefaultFormat {
		return nil, fmt.Errorf("ElevenLabs returns mp3 only, got format %q", opts.Format)
	}

	model := opts.Model
	if model == "" {
		model = "eleven_turbo_v2"
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = elevenLabsBaseURL
	}

	return &ElevenLabsSynthesizer{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		voice:      voice,
	}, nil
}

// always mp3
func (s *ElevenLabsSynthesizer) Format() string {
	return "mp3"
}

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (s *ElevenLabsSynthesizer) Synthesize(
	ctx context.Context,
	text string,
	w io.Writer,
) error {
	body, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: s.model})
	if err != nil {
		return err
	}

	endpoint := s.baseURL + "/v1/text-to-speech/" + url.PathEscape(s.voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("speech request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf(
			"speech request failed: %s: %s",
			resp.Status,
			strings.TrimSpace(string(detail)),
		)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read speech audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("empty audio from ElevenLabs")
	}
	return nil
}
