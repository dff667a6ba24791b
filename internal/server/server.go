package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackscope/internal/shared"
	"github.com/desertthunder/trackscope/internal/tasks"
)

const shutdownTimeout = 10 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request IDs, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the catalog query service.
// Implementations handle a group of endpoints and dispatch on the request path.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// NewRouter wires the middleware stack and the catalog endpoints.
func NewRouter(config *shared.Config, engine tasks.Engine, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(
		RequestID(),
		Logging(logger),
		Recover(logger),
		CORS(config.CORS),
		RateLimit(config.RateLimit),
	)
	router.Handler(NewCatalogHandler(engine, logger))
	router.Handle(http.MethodGet, "/health", Health())
	router.NotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, failure{kind: kindNotFound, detail: "no route for " + r.URL.Path})
	}))
	return router
}

// New builds the HTTP server for config.
func New(config *shared.Config, engine tasks.Engine, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:              config.Server.Addr(),
		Handler:           NewRouter(config, engine, logger),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       config.Server.ReadTimeout.Duration,
		WriteTimeout:      config.Server.WriteTimeout.Duration,
	}
}

// Run serves until ctx is canceled, then drains in-flight requests.
func Run(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	logger.Info("listening", "addr", srv.Addr)

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
