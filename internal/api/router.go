package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mika/reminders-web/internal/api/handlers"
	"github.com/mika/reminders-web/internal/api/middleware"
	"github.com/mika/reminders-web/internal/dateutil"
	"github.com/mika/reminders-web/internal/service"
	"github.com/mika/reminders-web/internal/ws"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, hub *ws.Hub, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	dates := dateutil.NewNormalizer(log)
	authHandler := handlers.NewAuthHandler(services.Auth, hub)
	reminderHandler := handlers.NewReminderHandler(services.Reminder, dates)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, log))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected reminder routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, log))

			r.Route("/reminders", func(r chi.Router) {
				r.Post("/", reminderHandler.Create)
				r.Get("/", reminderHandler.List)
				r.Patch("/{id}", reminderHandler.Update)
				r.Delete("/{id}", reminderHandler.Delete)
			})
		})

		// Session event stream
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
