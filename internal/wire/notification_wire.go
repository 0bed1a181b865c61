package wire

import (
	"healthcare-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler, rt routes) {
	r.With(rt.auth).Route("/api/notifications", func(r chi.Router) {
		r.Get("/", notificationHandler.List)
		r.Patch("/read-all", notificationHandler.MarkAllRead)
		r.Patch("/{id}/read", notificationHandler.MarkRead)
		r.Delete("/{id}", notificationHandler.Delete)
	})
}
