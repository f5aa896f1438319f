package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sagarm04/Sublyze/internal/intake"
	"github.com/Sagarm04/Sublyze/internal/jobs"
	"github.com/Sagarm04/Sublyze/internal/progress"
	"github.com/Sagarm04/Sublyze/internal/provider"
	"github.com/Sagarm04/Sublyze/internal/transcribe"
)

// errorResponse is the wire shape for every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// transcribeResponse is the wire shape for a successful transcription.
type transcribeResponse struct {
	Transcription string `json:"transcription"`
	Language      string `json:"language"`
}

// translateRequest is the JSON payload for the translation endpoint.
type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

// translateResponse is the wire shape for a successful translation.
type translateResponse struct {
	Translation string `json:"translation"`
	Language    string `json:"language"`
}

// handleTranscribe accepts a multipart video upload and runs it through the
// transcription pipeline.
func (s *Server) handleTranscribe(c echo.Context) error {
	header, err := c.FormFile("video")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No video file provided"})
	}

	code := c.FormValue("language")
	if strings.TrimSpace(code) == "" {
		code = "en"
	}
	locale, err := s.opts.Registry.Lookup(code)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Unsupported language"})
	}

	duration := 0.0
	if raw := strings.TrimSpace(c.FormValue("duration")); raw != "" {
		duration, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid duration"})
		}
	}

	src, err := header.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error processing video"})
	}
	defer src.Close()

	asset, err := s.opts.Store.Accept(src, header.Filename, header.Header.Get("Content-Type"), header.Size, duration)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrUnsupportedMediaType):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Only video files are supported"})
		case errors.Is(err, intake.ErrInvalidDuration):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid duration"})
		default:
			s.opts.Log.WithError(err).Error("failed to stage upload")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error processing video"})
		}
	}

	run := s.opts.Reporter.Begin(asset.ID)
	defer run.Finish()

	result, err := s.opts.Pipeline.Run(c.Request().Context(), transcribe.Request{
		Asset:  asset,
		Locale: locale,
	})
	if err != nil {
		return s.writeTranscribeError(c, err)
	}

	return c.JSON(http.StatusOK, transcribeResponse{
		Transcription: result.Transcript,
		Language:      result.Language,
	})
}

// writeTranscribeError maps pipeline failures onto API responses without
// leaking raw provider payloads.
func (s *Server) writeTranscribeError(c echo.Context, err error) error {
	if errors.Is(err, jobs.ErrTranscriptionInProgress) {
		return c.JSON(http.StatusConflict, errorResponse{Error: "A transcription for this upload is already in progress"})
	}
	if errors.Is(err, provider.ErrMissingCredential) {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "OpenAI API key is not configured"})
	}
	if errors.Is(err, provider.ErrMalformedResponse) {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to process transcription response"})
	}

	var callErr *provider.CallError
	if errors.As(err, &callErr) {
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Error processing video",
			Details: callErr.Detail,
		})
	}

	s.opts.Log.WithError(err).Error("transcription request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error processing video"})
}

// handleTranslate translates transcript text into a supported target locale.
func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No text provided"})
	}

	locale, err := s.opts.Registry.Lookup(req.TargetLanguage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Unsupported language"})
	}

	translated, err := s.opts.Translator.Translate(c.Request().Context(), req.Text, locale)
	if err != nil {
		if errors.Is(err, provider.ErrEmptyInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "No text provided"})
		}
		if errors.Is(err, provider.ErrMissingCredential) {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "OpenAI API key is not configured"})
		}

		var callErr *provider.CallError
		if errors.As(err, &callErr) {
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "Error translating text",
				Details: callErr.Detail,
			})
		}

		s.opts.Log.WithError(err).Error("translation request failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error translating text"})
	}

	return c.JSON(http.StatusOK, translateResponse{
		Translation: translated,
		Language:    locale.Code,
	})
}

// handleLanguages lists every supported target language.
func (s *Server) handleLanguages(c echo.Context) error {
	languages := make(map[string]string)
	for _, loc := range s.opts.Registry.All() {
		languages[loc.Code] = loc.Name
	}

	return c.JSON(http.StatusOK, map[string]any{"languages": languages})
}

// handleJobEvents returns progress events with sequence greater than `since`.
func (s *Server) handleJobEvents(c echo.Context) error {
	since := int64(0)
	if raw := strings.TrimSpace(c.QueryParam("since")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid since parameter"})
		}
		since = parsed
	}

	events := s.opts.Bus.Since(since)
	if events == nil {
		events = []progress.Event{}
	}

	return c.JSON(http.StatusOK, map[string]any{"events": events})
}

// handleHealth runs the startup diagnostics and reports readiness.
func (s *Server) handleHealth(c echo.Context) error {
	report := s.opts.Checker.Run(s.opts.Config)

	status := http.StatusOK
	if report.HasFailures {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}
