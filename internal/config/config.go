package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SUBTEXT"

// settings for the translation collaborator
type TranslateConfig struct {
	Provider    string `mapstructure:"provider"`
	Model       string `mapstructure:"model"`
	Concurrency int    `mapstructure:"concurrency"`
	BatchSize   int    `mapstructure:"batch_size"`
}

// settings for the text-to-speech collaborator
type SpeechConfig struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	Voice       string  `mapstructure:"voice"`
	Speed       float64 `mapstructure:"speed"`
	Concurrency int     `mapstructure:"concurrency"`
	AudioDir    string  `mapstructure:"audio_dir"`
}

// provider credentials, read from env or .env only in practice
type KeysConfig struct {
	Gemini     string `mapstructure:"gemini"`
	OpenAI     string `mapstructure:"openai"`
	Anthropic  string `mapstructure:"anthropic"`
	ElevenLabs string `mapstructure:"elevenlabs"`
}

type Config struct {
	Translate TranslateConfig `mapstructure:"translate"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Keys      KeysConfig      `mapstructure:"keys"`

	// file the values were read from, empty when none was found
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("translate.provider", "gemini")
	v.SetDefault("translate.model", "")
	v.SetDefault("translate.concurrency", 3)
	v.SetDefault("translate.batch_size", 50)

	v.SetDefault("speech.provider", "openai")
	v.SetDefault("speech.model", "")
	v.SetDefault("speech.voice", "")
	v.SetDefault("speech.speed", 1.0)
	v.SetDefault("speech.concurrency", 3)
	v.SetDefault("speech.audio_dir", "")

	v.SetDefault("keys.gemini", "")
	v.SetDefault("keys.openai", "")
	v.SetDefault("keys.anthropic", "")
	v.SetDefault("keys.elevenlabs", "")
}

// Load reads configuration with precedence env > config file > defaults.
// A .env file in the working directory is loaded first without
// overriding variables already set. When path is empty the default
// location is used and a missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	keyEnvs := map[string]string{
		"keys.gemini":     "GEMINI_API_KEY",
		"keys.openai":     "OPENAI_API_KEY",
		"keys.anthropic":  "ANTHROPIC_API_KEY",
		"keys.elevenlabs": "ELEVENLABS_API_KEY",
	}
	for key, env := range keyEnvs {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := defaultDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

// APIKey returns the configured credential for a provider name.
func (c *Config) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.Keys.Gemini
	case "openai":
		return c.Keys.OpenAI
	case "anthropic":
		return c.Keys.Anthropic
	case "elevenlabs":
		return c.Keys.ElevenLabs
	default:
		return ""
	}
}

// KeyEnvVar names the environment variable users set for a provider.
func KeyEnvVar(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "elevenlabs":
		return "ELEVENLABS_API_KEY"
	default:
		return "API_KEY"
	}
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "subtext")
}
