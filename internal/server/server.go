package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Sagarm04/Sublyze/internal/config"
	"github.com/Sagarm04/Sublyze/internal/diagnostics"
	"github.com/Sagarm04/Sublyze/internal/intake"
	"github.com/Sagarm04/Sublyze/internal/language"
	"github.com/Sagarm04/Sublyze/internal/progress"
	"github.com/Sagarm04/Sublyze/internal/transcribe"
)

// Translator is the translation capability consumed by the API layer.
type Translator interface {
	Translate(ctx context.Context, text string, locale language.Locale) (string, error)
}

// Options wires the API layer to the core components.
type Options struct {
	Config     config.Config
	Log        *logrus.Logger
	Registry   *language.Registry
	Store      *intake.Store
	Pipeline   *transcribe.Pipeline
	Translator Translator
	Reporter   *progress.Reporter
	Bus        *progress.Bus
	Checker    *diagnostics.Checker
}

// Server exposes the transcription pipeline over HTTP.
type Server struct {
	echo *echo.Echo
	opts Options
}

// New builds the HTTP server with routes and middleware registered.
func New(opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger(opts.Log))

	s := &Server{echo: e, opts: opts}

	api := e.Group("/api")
	api.POST("/transcribe", s.handleTranscribe)
	api.POST("/translate", s.handleTranslate)
	api.GET("/languages", s.handleLanguages)
	api.GET("/jobs/events", s.handleJobEvents)
	api.GET("/health", s.handleHealth)

	return s
}

// Handler returns the server as an http.Handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.opts.Log.WithField("addr", addr).Info("http server listening")
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger emits one structured line per completed request.
func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"elapsed": time.Since(start).String(),
			}).Info("request completed")
			return nil
		}
	}
}
