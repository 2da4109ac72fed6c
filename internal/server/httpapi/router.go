// Package httpapi exposes the mock portal API over HTTP: the login
// endpoint and the bearer-protected /api/mypage routes.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/mypage/internal/logging"
	"github.com/dmitrijs2005/mypage/internal/server/mypage"
	"github.com/dmitrijs2005/mypage/internal/server/users"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	users  *users.Service
	portal *mypage.Service
	log    logging.Logger
}

func NewHandler(us *users.Service, ps *mypage.Service, log logging.Logger) *Handler {
	return &Handler{users: us, portal: ps, log: log}
}

// NewRouter registers the routes and the middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", msgMethodNotAllowed)
	})

	r.Get("/healthz", h.healthz)
	r.Post("/api/auth/login", h.login)

	r.Route("/api/mypage", func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Get("/dashboard", h.dashboard)
		r.Get("/contract", h.contract)
		r.Get("/billing", h.billing)
		r.Get("/data-usage", h.dataUsage)
		r.Get("/options", h.options)
		r.Post("/options/{optionID}/subscribe", h.subscribeOption)
		r.Post("/options/{optionID}/unsubscribe", h.unsubscribeOption)
		r.Get("/notifications", h.notifications)
		r.Post("/notifications/{notificationID}/read", h.markNotificationRead)
		r.Put("/profile", h.updateProfile)
		r.Put("/password", h.changePassword)
		r.Put("/notification-preferences", h.updatePreferences)
		r.Post("/plan", h.changePlan)
	})

	return r
}
