package diagnostics

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Sagarm04/Sublyze/internal/config"
	"github.com/Sagarm04/Sublyze/internal/domain"
)

// Checker validates the runtime environment before serving requests.
type Checker struct {
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker() *Checker {
	return &Checker{
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
	}
}

// Run executes all startup checks and returns a combined report.
func (c *Checker) Run(cfg config.Config) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkCredential(cfg.OpenAIAPIKey),
		c.checkProviderURL(cfg.OpenAIBaseURL),
		c.checkUploadDir(cfg.UploadDir),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkCredential verifies a provider API key is configured.
func (c *Checker) checkCredential(apiKey string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "provider_credential",
		Name: "Provider credential",
	}

	if strings.TrimSpace(apiKey) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "OPENAI_API_KEY is not set."
		item.Hint = "Transcription and translation requests will fail until a provider credential is configured."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = "Provider credential is configured."
	return item
}

// checkProviderURL validates the provider base URL shape.
func (c *Checker) checkProviderURL(baseURL string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "provider_url",
		Name: "Provider base URL",
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Provider base URL is not a valid absolute URL: " + baseURL
		item.Hint = "Set OPENAI_BASE_URL to a full http(s) URL or leave it unset for the default."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = "Provider base URL: " + baseURL
	return item
}

// checkUploadDir validates the staging directory exists and is writable.
func (c *Checker) checkUploadDir(dir string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "upload_dir",
		Name: "Upload staging directory",
	}

	if strings.TrimSpace(dir) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Upload directory is empty."
		item.Hint = "Set SUBLYZE_UPLOAD_DIR to a writable location for staged uploads."
		return item
	}

	if err := c.mkdirAll(dir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Cannot create upload directory: " + dir
		item.Hint = "Choose a writable location or adjust filesystem permissions."
		return item
	}

	tmpFile, err := c.createTemp(dir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Upload directory is not writable: " + dir
		item.Hint = "Choose a writable directory for staged uploads."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = "Writable directory: " + dir
	return item
}

// NewCheckerForTests creates a checker with injectable dependencies.
func NewCheckerForTests(
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
	}
}
