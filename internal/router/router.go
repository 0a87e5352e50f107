// Package router sets up all HTTP routes and middleware chains for the
// Breaking Barriers site. It organizes routes into page, download and JSON
// API groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"barrierfree/internal/handlers"
	"barrierfree/internal/middleware"
	"barrierfree/web"
)

// Options holds the router settings that come from configuration.
type Options struct {
	// SecureCookies marks the CSRF cookie as HTTPS-only.
	SecureCookies bool
	// MediaDir is served at /media. Empty disables the route.
	MediaDir string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter guards the contact form.
func New(public *handlers.Public, api *handlers.API, limiter *middleware.RateLimiter, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	static, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	if opts.MediaDir != "" {
		r.Handle("/media/*", noListing(http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir))), public.NotFound))
	}

	// Pages
	r.Get("/", public.Homepage)
	r.Get("/about", public.About)

	// Contact form. The CSRF token is issued on GET and checked on POST.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))
		r.Get("/contact", public.Contact)
		r.With(limiter.Middleware).Post("/contact", public.ContactSubmit)
	})

	r.Route("/resources", func(r chi.Router) {
		r.Get("/", public.Resources)
		r.Get("/videos", public.Videos)
		r.Get("/videos/{id}", public.Video)
		r.Get("/documents", public.Documents)
		r.Get("/documents/{id}", public.Document)
		r.Get("/documents/{id}/download", public.DocumentDownload)
		r.Get("/presentations/{id}", public.Presentation)
		r.Get("/presentations/{id}/download", public.PresentationDownload)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/resources", api.Search)
		r.Get("/categories", api.Categories)
		r.Get("/videos/{id}", api.Video)
		r.Get("/documents/{id}", api.Document)
		r.Get("/presentations/{id}", api.Presentation)
	})

	r.NotFound(public.NotFound)

	return r
}

// noListing answers directory paths with notFound so the file server
// never renders an index of the media directory.
func noListing(next http.Handler, notFound http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			notFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
