package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Sagarm04/Sublyze/internal/domain"
	"github.com/Sagarm04/Sublyze/internal/language"
)

// Transcribe sends the staged media file to the speech-to-text endpoint and
// returns the normalized transcript text.
func (c *Client) Transcribe(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error) {
	if !c.Configured() {
		return "", ErrMissingCredential
	}

	f, err := os.Open(asset.Path)
	if err != nil {
		return "", fmt.Errorf("open staged media: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", c.transcribeModel); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if err := mw.WriteField("language", locale.Code); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if err := mw.WriteField("response_format", "text"); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(asset.Path))
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("read staged media: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &CallError{Op: "transcribe", Err: err}
	}
	defer resp.Body.Close()
	c.logCall("transcribe", resp.StatusCode, time.Since(started))

	if resp.StatusCode >= 300 {
		return "", &CallError{
			Op:         "transcribe",
			StatusCode: resp.StatusCode,
			Detail:     extractProviderMessage(drainBody(resp.Body)),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CallError{Op: "transcribe", Err: err}
	}

	return NormalizeTranscript(payload)
}
