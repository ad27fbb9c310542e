// Package server exposes the pipeline over HTTP: a multipart search
// endpoint plus read endpoints for stored postings and search history.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/pipeline"
	"github.com/jobscout/jobscout/internal/store"
)

const maxResumeUploadBytes = 10 << 20

// SearchRunner runs one pipeline pass. Satisfied by *pipeline.Runner.
type SearchRunner interface {
	Run(ctx context.Context, state pipeline.SearchState) (pipeline.SearchState, error)
}

// StoreReader serves the read endpoints. Satisfied by *store.Store.
type StoreReader interface {
	GetPosting(ctx context.Context, id string) (*store.JobPosting, error)
	ListPostings(ctx context.Context, limit int) ([]*store.JobPosting, error)
	ListHistory(ctx context.Context, limit int) ([]*store.SearchRecord, error)
}

type Server struct {
	runner SearchRunner
	store  StoreReader
	logger *zap.Logger
}

func New(runner SearchRunner, reader StoreReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{runner: runner, store: reader, logger: logger}
}

// Handler builds the route table wrapped with request-id and access-log
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/search", s.handleSearch)
	mux.HandleFunc("GET /api/v1/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/v1/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)

	return s.withRequestID(s.withAccessLog(mux))
}

// ListenAndServe blocks serving the API until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
