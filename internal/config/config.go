package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration sourced from the environment.
type Config struct {
	Addr            string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	TranscribeModel string
	TranslateModel  string
	UploadDir       string
	ProviderTimeout time.Duration
}

// FromEnv reads configuration from process environment variables.
func FromEnv() Config {
	return Load(os.Getenv)
}

// Load reads configuration through an injectable lookup for testability.
func Load(getenv func(string) string) Config {
	cfg := Defaults()

	if v := strings.TrimSpace(getenv("SUBLYZE_ADDR")); v != "" {
		cfg.Addr = v
	}
	cfg.OpenAIAPIKey = strings.TrimSpace(getenv("OPENAI_API_KEY"))
	if v := strings.TrimSpace(getenv("OPENAI_BASE_URL")); v != "" {
		cfg.OpenAIBaseURL = strings.TrimSuffix(v, "/")
	}
	if v := strings.TrimSpace(getenv("SUBLYZE_TRANSCRIBE_MODEL")); v != "" {
		cfg.TranscribeModel = v
	}
	if v := strings.TrimSpace(getenv("SUBLYZE_TRANSLATE_MODEL")); v != "" {
		cfg.TranslateModel = v
	}
	if v := strings.TrimSpace(getenv("SUBLYZE_UPLOAD_DIR")); v != "" {
		cfg.UploadDir = v
	}
	if v := strings.TrimSpace(getenv("SUBLYZE_PROVIDER_TIMEOUT_SECONDS")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.ProviderTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}
