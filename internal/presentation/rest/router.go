package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bibbank/accountmodel/pkg/auth"
)

// RouterConfig collects the handlers served on the HTTP port.
type RouterConfig struct {
	Health   *HealthHandler
	Accounts *AccountHandler
	Metrics  http.Handler
	JWT      *auth.JWTService
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewRouter builds the HTTP router. Health checks and metrics are unauthenticated; everything
// under /v1 requires a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", cfg.Health.Liveness)
	r.Get("/readyz", cfg.Health.Readiness)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(requestLogger(cfg.Logger))
		v1.Use(middleware.Timeout(timeout))
		v1.Use(auth.HTTPMiddleware(cfg.JWT))
		cfg.Accounts.Register(v1)
	})
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
