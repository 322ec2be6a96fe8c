// Package httptransport assembles the HTTP router. It owns the middleware
// chain and which routes sit behind authentication and rate limiting;
// request handling itself lives in each module's handler package.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordsrecord/internal/platform/metrics"
	"wordsrecord/internal/platform/middleware"
	ratelimitmw "wordsrecord/internal/ratelimit/middleware"
	"wordsrecord/pkg/platform/httputil"
)

// Registrar mounts routes on a chi router. Module handlers implement this.
type Registrar interface {
	Register(r chi.Router)
}

// PublicRegistrar mounts unauthenticated routes.
type PublicRegistrar interface {
	RegisterPublic(r chi.Router)
}

// Deps carries everything the router needs. Admin handlers are mounted
// behind the auth middleware, Public handlers behind the rate limiter.
type Deps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	JWTValidator middleware.JWTValidator
	RateLimit    *ratelimitmw.Middleware
	Admin        []Registrar
	Public       []PublicRegistrar
	Timeout      time.Duration
}

// NewRouter builds the full route tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestMetadata)
	r.Use(middleware.DeviceFingerprint)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	timeout := deps.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public read API, rate limited per client IP.
	r.Group(func(pub chi.Router) {
		pub.Use(middleware.Timeout(timeout))
		if deps.RateLimit != nil {
			pub.Use(deps.RateLimit.Limit)
		}
		for _, h := range deps.Public {
			h.RegisterPublic(pub)
		}
	})

	// Admin API behind editor JWT auth.
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Timeout(timeout))
		admin.Use(middleware.ContentTypeJSON)
		admin.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		for _, h := range deps.Admin {
			h.Register(admin)
		}
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
