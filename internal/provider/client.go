package provider

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// httpDoer abstracts the HTTP transport for testability.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a provider client.
type Options struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	TranslateModel  string
	HTTPClient      httpDoer
	Logger          *logrus.Logger
}

// Client calls the external speech-to-text and translation capabilities.
// It performs no retries; retry policy belongs to the caller.
type Client struct {
	apiKey          string
	baseURL         string
	transcribeModel string
	translateModel  string
	http            httpDoer
	log             *logrus.Logger
}

// NewClient builds a provider client. A nil HTTPClient falls back to a
// default transport without its own timeout; deadlines come from the
// caller's context.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 0}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Client{
		apiKey:          opts.APIKey,
		baseURL:         strings.TrimSuffix(opts.BaseURL, "/"),
		transcribeModel: opts.TranscribeModel,
		translateModel:  opts.TranslateModel,
		http:            httpClient,
		log:             log,
	}
}

// Configured reports whether a provider credential is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// extractProviderMessage pulls the human-readable message out of an error
// payload so raw provider bodies never reach end users.
func extractProviderMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// drainBody reads a bounded amount of an error response body.
func drainBody(r io.Reader) []byte {
	body, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	return body
}

// logCall records one provider round trip at debug level.
func (c *Client) logCall(op string, status int, elapsed time.Duration) {
	c.log.WithFields(logrus.Fields{
		"op":      op,
		"status":  status,
		"elapsed": elapsed.String(),
	}).Debug("provider call completed")
}
