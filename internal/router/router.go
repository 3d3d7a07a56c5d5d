// Package router sets up all HTTP routes and middleware chains for the
// API. Routes live under /api/v1, grouped by resource with the
// required auth middleware per group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/token"
)

// Options carries the router's collaborators.
type Options struct {
	Auth       *handlers.Auth
	Posts      *handlers.Posts
	Categories *handlers.Categories

	Tokens *token.Manager
	Users  middleware.UserFinder

	RateLimiter *middleware.RateLimiter

	// ClientOrigin, when set, restricts CORS to one origin.
	ClientOrigin string

	// UploadDir, when set, is served statically at /uploads for the
	// local storage backend.
	UploadDir string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.ClientOrigin))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}
	r.Use(middleware.Authenticate(opts.Tokens, opts.Users))

	r.NotFound(handlers.NotFound)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", opts.Auth.Register)
			r.Post("/login", opts.Auth.Login)
			r.Post("/forgotpassword", opts.Auth.ForgotPassword)
			r.Put("/resetpassword/{token}", opts.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", opts.Auth.Me)
				r.Put("/updatedetails", opts.Auth.UpdateDetails)
				r.Put("/updatepassword", opts.Auth.UpdatePassword)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", opts.Posts.List)
			r.Get("/{id}", opts.Posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.With(middleware.RequireRoles(models.RoleAuthor, models.RoleAdmin)).
					Post("/", opts.Posts.Create)
				// Ownership for update/delete is checked in the
				// service, where the post's author is known.
				r.Put("/{id}", opts.Posts.Update)
				r.Delete("/{id}", opts.Posts.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", opts.Categories.List)
			r.Get("/{id}", opts.Categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireRoles(models.RoleAdmin))
				r.Post("/", opts.Categories.Create)
				r.Put("/{id}", opts.Categories.Update)
				r.Delete("/{id}", opts.Categories.Delete)
			})
		})
	})

	// Static serving for the local storage backend.
	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
