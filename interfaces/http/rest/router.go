package rest

import (
	"net/http"

	"wishbloom-backend/infrastructure/di"
	"wishbloom-backend/interfaces/http/rest/handlers"
	"wishbloom-backend/interfaces/http/rest/middleware"
	"wishbloom-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router.
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance.
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	c := rt.container
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(c.Logger))

	if c.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   c.Config.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	draftHandler := handlers.NewDraftHandler(c.DraftService, c.PublishService, c.ErrorHandler, c.Logger)
	bloomHandler := handlers.NewWishBloomHandler(c.WishBloomService, c.PublishService, c.ErrorHandler, c.Logger)
	guestbookHandler := handlers.NewGuestbookHandler(c.GuestbookService, c.ErrorHandler, c.Logger)
	statsHandler := handlers.NewStatsHandler(c.WishBloomService, c.ErrorHandler)

	router.Route("/api/v1", func(r chi.Router) {
		// Authenticated surface: the creation wizard and document management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(c.RateLimiter, auth.PolicyAuthenticated, c.Logger))
			r.Use(middleware.Authenticate(c.JWTValidator))

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", draftHandler.SaveDraft)
				r.Get("/", draftHandler.ListDrafts)
				r.Get("/{draftID}", draftHandler.GetDraft)
				r.Delete("/{draftID}", draftHandler.DeleteDraft)
				r.Post("/{draftID}/publish", draftHandler.Publish)
			})

			r.Post("/wishblooms", bloomHandler.Create)
			r.Get("/wishblooms", bloomHandler.List)
			r.Patch("/wishblooms/{id}", bloomHandler.Patch)
			r.Delete("/wishblooms/{id}", bloomHandler.Delete)
		})

		// Public surface: the shared view and the guestbook.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(c.RateLimiter, auth.PolicyPublic, c.Logger))

			r.Get("/wishblooms/{id}", bloomHandler.Get)
			r.Get("/guestbook", guestbookHandler.List)
			r.Get("/stats/blooms", statsHandler.Count)
		})

		// Guestbook writes carry the tightest budget.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(c.RateLimiter, auth.PolicyUpload, c.Logger))

			r.Post("/guestbook", guestbookHandler.Add)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
