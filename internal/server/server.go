// Package server exposes the tracker over a local REST API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/mindcalm/internal/assist"
	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/logger"
	"github.com/julianstephens/mindcalm/internal/tracker"
)

// Server serializes every request that touches the tracker; AI calls run
// outside the lock on a snapshot of the data they need.
type Server struct {
	mu      sync.Mutex
	tracker *tracker.Tracker
	ai      *assist.Assistant
	router  chi.Router
}

func New(tr *tracker.Tracker, ai *assist.Assistant) *Server {
	if ai == nil {
		ai = assist.New(nil)
	}
	s := &Server{tracker: tr, ai: ai}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Get("/state", s.listState)
		r.Get("/state/{key}", s.getState)
		r.Put("/state/{key}", s.putState)
		r.Delete("/state/{key}", s.deleteState)

		r.Get("/dashboard", s.dashboard)
		r.Get("/analytics", s.analytics)
		r.Get("/graph", s.graph)
		r.Get("/report.pdf", s.reportPDF)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/thought", s.aiThought)
			r.Post("/evidence", s.aiEvidence)
			r.Post("/medication", s.aiMedication)
			r.Post("/interactions", s.aiInteractions)
			r.Post("/coping", s.aiCoping)
			r.Post("/progress", s.aiProgress)
			r.Post("/workout", s.aiWorkout)
			r.Post("/insights", s.aiInsights)
			r.Post("/chat", s.aiChat)
		})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Serve answers requests on ln until ctx is cancelled, then drains in-flight
// requests for up to ServerShutdownPeriod.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
