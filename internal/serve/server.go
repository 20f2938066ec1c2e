// Package serve provides the run dashboard: REST endpoints over the report
// and progress files, generated HTML pages, and a websocket that pushes
// report updates as a run progresses.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shahbajlive/lexforge/internal/enrich"
	"github.com/shahbajlive/lexforge/internal/render"
)

// Options configures the dashboard server.
type Options struct {
	// Addr is the listen address.
	Addr string

	// ReportPath is the run report JSON file to serve and watch.
	ReportPath string

	// ProgressPath is the resumable checkpoint file.
	ProgressPath string

	// OutputPath is the enriched study text file, source of the HTML pages.
	OutputPath string
}

// Server is the dashboard HTTP server.
type Server struct {
	opts   Options
	logger *slog.Logger
	hub    *hub
}

// NewServer builds a dashboard server. logger may be nil.
func NewServer(opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		opts:   opts,
		logger: logger,
		hub:    newHub(logger),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/progress", s.handleProgress)
		r.Get("/entries", s.handleEntries)
	})
	r.Get("/", s.handleStudyPage)
	r.Get("/quiz", s.handleQuizPage)
	r.Get("/ws", s.hub.handleWS)

	return r
}

// Start runs the server and the report watcher until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go s.watchReport(watchCtx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("dashboard listening", "addr", s.opts.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleReport serves the latest run report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := enrich.ReadReport(s.opts.ReportPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "no report yet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleProgress serves the resumable checkpoint.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, ok, err := enrich.LoadProgress(s.opts.ProgressPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no progress yet")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// handleEntries serves the parsed study entries as JSON.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.loadEntries()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleStudyPage renders the study HTML from the current output file.
func (s *Server) handleStudyPage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.loadEntries()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.StudyHTML(w, entries); err != nil {
		s.logger.Error("study page render failed", "error", err)
	}
}

// handleQuizPage renders the quiz HTML. Each request reshuffles.
func (s *Server) handleQuizPage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.loadEntries()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	questions := render.BuildQuiz(entries, rand.New(rand.NewSource(time.Now().UnixNano())))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.QuizHTML(w, questions); err != nil {
		s.logger.Error("quiz page render failed", "error", err)
	}
}

func (s *Server) loadEntries() ([]render.Entry, error) {
	return render.ParseRecordsFile(s.opts.OutputPath)
}
