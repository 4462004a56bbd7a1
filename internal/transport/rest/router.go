package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/pkg/validate"
)

// Router assembles the HTTP surface: health, metrics, the account and
// catalog APIs and the session channel endpoint.
type Router struct {
	cfg       *config.HTTPConfig
	authority core.SessionAuthority
	accounts  Accounts
	catalog   Catalog
	channel   http.Handler
	metrics   *metrics.Collector
}

func NewRouter(
	cfg *config.HTTPConfig,
	authority core.SessionAuthority,
	accounts Accounts,
	catalog Catalog,
	channel http.Handler,
	mc *metrics.Collector,
) *Router {
	return &Router{
		cfg:       cfg,
		authority: authority,
		accounts:  accounts,
		catalog:   catalog,
		channel:   channel,
		metrics:   mc,
	}
}

func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(rt.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", healthCheck)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	router.Handle("/ws", rt.channel)

	validator := validate.New()
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			h := NewAuthHandler(rt.accounts, validator)
			r.Post("/register", h.Register)
			r.Post("/verify-email", h.VerifyEmail)
			r.Post("/resend-verification", h.ResendVerification)
			r.Post("/login", h.Login)
		})

		h := NewCatalogHandler(rt.catalog)
		r.Get("/events", h.ListEvents)
		r.Get("/figures", h.ListFigures)
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(rt.authority))
			r.Post("/events", h.CreateEvent)
			r.Post("/figures", h.CreateFigure)
		})
	})

	return router
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
