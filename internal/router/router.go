// Package router sets up all HTTP routes and middleware chains for the blog
// API. It organizes routes into a public read group and a privileged admin
// group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"autoblog/internal/handlers"
	"autoblog/internal/middleware"
)

// Options carries the settings the middleware chains need.
type Options struct {
	AdminKey     string
	CORSOrigins  []string
	AdminLimiter *middleware.RateLimiter // nil disables admin rate limiting

	// TrustProxy rewrites RemoteAddr from forwarding headers. Enable only
	// behind a proxy that overwrites them.
	TrustProxy bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(public *handlers.Public, admin *handlers.Admin, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.AdminKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", public.Root)
	r.Get("/health", public.Health)

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", public.ListBlogs)
		r.Get("/{id}", public.GetBlog)
		r.Get("/{id}/html", public.BlogHTML)
	})

	// Admin routes: per-IP rate limit first so wrong keys are throttled too,
	// then shared-secret auth.
	r.Route("/admin", func(r chi.Router) {
		if opts.AdminLimiter != nil {
			r.Use(opts.AdminLimiter.Middleware)
		}
		r.Use(middleware.RequireAdminKey(opts.AdminKey))

		r.Post("/generate-blog", admin.GenerateBlog)
		r.Get("/scheduler-status", admin.SchedulerStatus)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
	})

	return r
}
