package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/sports-academy/internal/metrics"
	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// RouterOptions configures the global middleware stack.
type RouterOptions struct {
	CORSOrigins  []string
	TokenLimiter *RateLimiter
	Log          logrus.FieldLogger
}

// NewRouter builds the full route table.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(PeerAddr)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(opts.Log))
	r.Use(CORS(opts.CORSOrigins))
	r.Use(metrics.Middleware)

	admin := h.RequireRole(model.RoleAdmin)
	staff := h.RequireRole(model.RoleInstructor, model.RoleAdmin)

	r.Get("/", Banner)
	r.Get("/health", HealthCheck)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/slider", h.ListSlides)

	r.Group(func(r chi.Router) {
		if opts.TokenLimiter != nil {
			r.Use(opts.TokenLimiter.Handler)
		}
		r.Post("/jwt", h.IssueToken)
	})

	// {key} is a role name on GET and an email on PUT/PATCH.
	r.Route("/users", func(r chi.Router) {
		r.With(h.RequireToken, admin).Get("/", h.ListUsers)
		r.With(h.RequireToken).Get("/admin/{email}", h.RoleProbe(model.RoleAdmin))
		r.With(h.RequireToken).Get("/instructor/{email}", h.RoleProbe(model.RoleInstructor))
		r.Get("/{key}", h.ListUsersByRole)
		r.Put("/{key}", h.UpsertUser)
		r.With(h.RequireToken, admin).Patch("/{key}/role", h.SetUserRole)
	})

	r.Route("/classes", func(r chi.Router) {
		r.Get("/", h.ListClasses)
		r.With(h.RequireToken, admin).Get("/all", h.ListAllClasses)
		r.With(h.RequireToken, staff).Get("/mine", h.ListMyClasses)
		r.Get("/{id}", h.GetClass)
		r.With(h.RequireToken, staff).Post("/", h.CreateClass)
		r.With(h.RequireToken, staff).Put("/{id}", h.UpdateClass)
		r.With(h.RequireToken, admin).Patch("/{id}/status", h.SetClassStatus)
	})

	r.Route("/sports", func(r chi.Router) {
		r.Post("/", h.AddReservation)
		r.Get("/", h.ListReservations)
		r.Get("/{id}", h.GetReservation)
		r.Delete("/{id}", h.RemoveReservation)
	})

	r.With(h.RequireToken).Post("/create-payment-intent", h.CreatePaymentIntent)
	r.Post("/payment", h.Settle)
	r.Get("/payment/{email}", h.ListPayments)

	return r
}
