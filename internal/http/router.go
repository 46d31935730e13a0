package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mikorail/user-notification-ts/internal/http/handler"
)

// NewRouter wires HTTP routes.
func NewRouter(user *handler.UserHandler, greeting *handler.GreetingHandler, control *handler.ControlHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/user", user.Create)
		r.Get("/user/{id}", user.Get)
		r.Put("/user/{id}", user.Update)
		r.Delete("/user/{id}", user.Delete)
		r.Get("/users", user.List)
		r.Get("/users/birthday-today", user.BirthdayToday)

		r.Post("/sweep", greeting.Sweep)
		r.Get("/messages/sent", greeting.ListDelivered)
	})

	r.Route("/control", func(r chi.Router) {
		r.Post("/start", control.Start)
		r.Post("/stop", control.Stop)
	})

	return r
}
