// Package httpapi exposes the todo store over a JSON API. It is the
// programmatic counterpart of the terminal UI and shares its semantics:
// mutations that the store declines are reported, never retried.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/remote"
	"github.com/sandeepkv93/todolist/internal/store"
)

var (
	ErrNoSource          = errors.New("no todo source configured")
	ErrRefreshInProgress = errors.New("fetch already in progress")
)

type Options struct {
	Store        *store.Store
	Source       remote.Source
	FetchTimeout time.Duration
	Logger       *slog.Logger
	Registry     *prometheus.Registry
}

type Server struct {
	store        *store.Store
	source       remote.Source
	fetchTimeout time.Duration
	log          *slog.Logger
	registry     *prometheus.Registry
	metrics      *Metrics
	refreshing   atomic.Bool
	startTime    time.Time
}

func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		store:        opts.Store,
		source:       opts.Source,
		fetchTimeout: opts.FetchTimeout,
		log:          opts.Logger,
		registry:     opts.Registry,
		startTime:    time.Now(),
	}
	s.metrics = NewMetrics(opts.Registry, func() (int, int) {
		return derive.Counts(s.store.Snapshot())
	})
	return s
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(s.log), CountRequests(s.metrics))

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	r.GET("/todos", s.listTodos)
	r.POST("/todos", s.createTodo)
	r.GET("/todos/:id", s.getTodo)
	r.PATCH("/todos/:id", s.editTodo)
	r.POST("/todos/:id/toggle", s.toggleTodo)
	r.DELETE("/todos/:id", s.deleteTodo)
	r.POST("/refresh", s.refresh)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Refresh runs one fetch and bulk replaces the store. Overlapping calls are
// refused with ErrRefreshInProgress rather than queued.
func (s *Server) Refresh(ctx context.Context) (store.ReplaceResult, error) {
	if s.source == nil {
		return store.ReplaceResult{}, ErrNoSource
	}
	if !s.refreshing.CompareAndSwap(false, true) {
		return store.ReplaceResult{}, ErrRefreshInProgress
	}
	defer s.refreshing.Store(false)

	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	items, err := s.source.FetchTodos(ctx)
	if err != nil {
		fe := remote.AsFetchError(err)
		s.log.Warn("refresh failed", "error", fe.Message, "status", fe.Status)
		return store.ReplaceResult{}, fe
	}
	res := s.store.BulkReplace(items)
	if res.Skipped > 0 {
		s.log.Warn("bulk replace skipped records", "skipped", res.Skipped)
	}
	s.log.Info("refresh complete", "loaded", res.Loaded, "next_id", s.store.NextID())
	return res, nil
}
