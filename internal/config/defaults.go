package config

import "time"

// Defaults returns baseline configuration used when env vars are unset.
func Defaults() Config {
	return Config{
		Addr:            ":5001",
		OpenAIBaseURL:   "https://api.openai.com/v1",
		TranscribeModel: "whisper-1",
		TranslateModel:  "gpt-3.5-turbo",
		UploadDir:       "uploads",
		ProviderTimeout: 120 * time.Second,
	}
}
