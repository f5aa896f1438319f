package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sagarm04/Sublyze/internal/language"
)

// translateTemperature favors literal fidelity over creative variation.
const translateTemperature = 0.3

// chatMessage is one entry in a chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat completion request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse carries the subset of the completion reply we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// translatePrompt builds the fixed system instruction, parameterized only by
// the target language's display name.
func translatePrompt(locale language.Locale) string {
	return fmt.Sprintf(
		"You are a professional translator. Translate the following text to %s. Maintain the original meaning and tone.",
		locale.Name,
	)
}

// Translate sends transcript text to the chat completion endpoint and
// returns the translated text.
func (c *Client) Translate(ctx context.Context, text string, locale language.Locale) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	if !c.Configured() {
		return "", ErrMissingCredential
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.translateModel,
		Messages: []chatMessage{
			{Role: "system", Content: translatePrompt(locale)},
			{Role: "user", Content: text},
		},
		Temperature: translateTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("build translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build translation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &CallError{Op: "translate", Err: err}
	}
	defer resp.Body.Close()
	c.logCall("translate", resp.StatusCode, time.Since(started))

	if resp.StatusCode >= 300 {
		return "", &CallError{
			Op:         "translate",
			StatusCode: resp.StatusCode,
			Detail:     extractProviderMessage(drainBody(resp.Body)),
		}
	}

	var reply chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", ErrMalformedResponse
	}
	if len(reply.Choices) == 0 {
		return "", ErrMalformedResponse
	}

	translated := strings.TrimSpace(reply.Choices[0].Message.Content)
	if translated == "" {
		return "", ErrMalformedResponse
	}
	return translated, nil
}
