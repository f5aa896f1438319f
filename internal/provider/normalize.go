package provider

import (
	"bytes"
	"encoding/json"
	"strings"
)

// transcriptShape classifies the payload variants the speech API is known to
// produce for a transcription call.
type transcriptShape int

const (
	shapePlainText transcriptShape = iota
	shapeJSONString
	shapeJSONObject
	shapeUnknown
)

// classifyTranscript decides which decoding branch applies to a payload.
func classifyTranscript(body []byte) transcriptShape {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return shapeUnknown
	}
	if !json.Valid(trimmed) {
		return shapePlainText
	}
	switch trimmed[0] {
	case '"':
		return shapeJSONString
	case '{':
		return shapeJSONObject
	default:
		return shapeUnknown
	}
}

// NormalizeTranscript reduces the provider's transcript payload to a single
// text value. The API may answer with a bare text body, a JSON string, or a
// JSON object carrying a "text" field; every other shape fails with
// ErrMalformedResponse rather than being coerced to empty text.
func NormalizeTranscript(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)

	switch classifyTranscript(trimmed) {
	case shapePlainText:
		return string(trimmed), nil

	case shapeJSONString:
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", ErrMalformedResponse
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", ErrMalformedResponse
		}
		return text, nil

	case shapeJSONObject:
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return "", ErrMalformedResponse
		}
		text := strings.TrimSpace(payload.Text)
		if text == "" {
			return "", ErrMalformedResponse
		}
		return text, nil

	default:
		return "", ErrMalformedResponse
	}
}
