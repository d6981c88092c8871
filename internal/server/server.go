package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lealre/comments-backend/internal/api"
	"go.uber.org/zap"
)

const (
	defaultIdleTimeout  = time.Minute
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 15 * time.Second
)

// NewServer builds the HTTP handler with the comment routes mounted under
// basePath.
func NewServer(a *api.API, basePath string, logger *zap.Logger) http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestIdMiddleware(logger))
	mux.Use(middleware.Recoverer)

	if basePath == "" || basePath == "/" {
		mux.Mount("/", a.CommentRoutes())
		return mux
	}

	mux.Get("/", api.RootHandler)
	mux.Mount(basePath, a.CommentRoutes())

	return mux
}

// ListenAndServe serves handler on addr until ctx is canceled, then waits up
// to shutdownTimeout for in-flight requests.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server is running", zap.String("addr", addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
