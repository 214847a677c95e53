// Package web provides the HTTP API over the report and filter service.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/JonMunkholm/FoodShare/internal/config"
	"github.com/JonMunkholm/FoodShare/internal/core"
	"github.com/JonMunkholm/FoodShare/internal/metrics"
	mw "github.com/JonMunkholm/FoodShare/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the reporting API.
type Server struct {
	service *core.Service
	metrics *metrics.Recorder
	cfg     config.ServerConfig
	mcfg    config.MetricsConfig
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance. rec may be nil.
func NewServer(service *core.Service, rec *metrics.Recorder, cfg config.ServerConfig, mcfg config.MetricsConfig) *Server {
	s := &Server{
		service: service,
		metrics: rec,
		cfg:     cfg,
		mcfg:    mcfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware(routePattern))
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	s.router.Use(securityHeaders)
	if len(s.cfg.AllowedOrigins) > 0 {
		s.router.Use(cors(s.cfg.AllowedOrigins))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	if s.mcfg.Enabled && s.metrics != nil {
		s.router.Handle(s.mcfg.Path, s.metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dataset", s.handleDataset)

		// Report catalog
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/all", s.handleRunAllReports)
		r.Get("/reports/{reportKey}", s.handleReport)
		r.Get("/reports/{reportKey}/export", s.handleExportReport)

		// Listing filters
		r.Get("/listings", s.handleFilterListings)
		r.Get("/listings/options", s.handleFilterOptions)

		r.Get("/providers/contacts", s.handleProviderContacts)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// routePattern labels a request by its matched chi route, so report keys do
// not explode metric cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// The API serves data only
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// cors allows browser dashboards on the listed origins to call the API.
func cors(allowed []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowed, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || slices.Contains(allowed, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				w.Header().Set("Access-Control-Max-Age", "600")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
