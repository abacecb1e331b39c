// Package api exposes statement conversion over HTTP.
// This is a capability module that can be enabled via the CLI or used programmatically.
package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aqlanhadi/stmtcsv/extractor"
	"github.com/aqlanhadi/stmtcsv/extractor/common"
	"github.com/aqlanhadi/stmtcsv/extractor/output"
	"github.com/aqlanhadi/stmtcsv/logger"
	"github.com/rs/zerolog"
)

// Config holds the API server configuration
type Config struct {
	Port string
	// Defaults fill in any option a request leaves out.
	Defaults extractor.Options
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port: ":8080",
		Defaults: extractor.Options{
			Format: "generic",
			Year:   strconv.Itoa(time.Now().Year()),
		},
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	log    zerolog.Logger
	mux    *http.ServeMux
}

// New creates a new API server with the given configuration
func New(cfg Config, log zerolog.Logger) *Server {
	s := &Server{
		config: cfg,
		log:    log,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/convert", s.handleConvert)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the routes wrapped in the request ID, logging and
// recovery middleware.
func (s *Server) Handler() http.Handler {
	return RequestID(Logger(s.log)(Recovery(s.log)(s.mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.config.Port).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConvert turns an uploaded text export into CSV, or into the
// statement summary as JSON with summary=true.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	log := s.log.With().Str("request_id", RequestIDFromContext(r.Context())).Logger()

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Warn().Err(err).Msg("Could not parse multipart form")
		WriteError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Could not get uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	opts, summary, err := s.parseConvertOptions(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := logger.WithContext(r.Context(), log)
	statement, format, err := extractor.ProcessReader(ctx, file, header.Filename, opts)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Conversion failed")
		WriteError(w, statusFor(err), err.Error())
		return
	}

	if summary {
		WriteJSON(w, http.StatusOK, statement)
		return
	}

	content, err := output.Render(statement.Transactions, format.Layout, opts.Reverse)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(extractor.DefaultOutputPath(header.Filename))+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

// parseConvertOptions reads options from form values or query params,
// falling back to the server defaults.
func (s *Server) parseConvertOptions(r *http.Request) (extractor.Options, bool, error) {
	d := s.config.Defaults
	opts := extractor.Options{
		Format:   coalesce(r.FormValue("format"), r.URL.Query().Get("format"), d.Format),
		Year:     coalesce(r.FormValue("year"), r.URL.Query().Get("year"), d.Year),
		Layout:   coalesce(r.FormValue("layout"), r.URL.Query().Get("layout"), d.Layout),
		Encoding: coalesce(r.FormValue("encoding"), r.URL.Query().Get("encoding"), d.Encoding),
	}

	var err error
	if opts.Reverse, err = boolParam(r, "reverse", d.Reverse); err != nil {
		return opts, false, err
	}
	if opts.Legacy, err = boolParam(r, "legacy", d.Legacy); err != nil {
		return opts, false, err
	}
	summary, err := boolParam(r, "summary", false)
	return opts, summary, err
}

func boolParam(r *http.Request, name string, fallback bool) (bool, error) {
	raw := coalesce(r.FormValue(name), r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid " + name + ": " + strconv.Quote(raw))
	}
	return v, nil
}

// statusFor separates problems with the request from statements that could
// not be assembled.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnknownFormat),
		errors.Is(err, common.ErrNoLegacyLayout),
		errors.Is(err, common.ErrUnknownLayout),
		errors.Is(err, common.ErrUnknownEncoding),
		errors.Is(err, common.ErrInvalidYear):
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
