package wire

import (
	"healthcare-booking/internal/adaptor"
	"healthcare-booking/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireAppointment(r chi.Router, appointmentHandler *adaptor.AppointmentHandler, rt routes) {
	r.With(rt.auth).Route("/api/appointments", func(r chi.Router) {
		r.With(rt.role(entity.RolePatient)).Post("/", appointmentHandler.Book)
		r.Get("/", appointmentHandler.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", appointmentHandler.Get)
			r.With(rt.role(entity.RolePatient)).Patch("/", appointmentHandler.Update)
			r.Patch("/cancel", appointmentHandler.Cancel)
			r.With(rt.role(entity.RoleDoctor, entity.RoleAdmin)).Patch("/status", appointmentHandler.UpdateStatus)
			r.With(rt.role(entity.RolePatient)).Post("/pay", appointmentHandler.Pay)
		})
	})
}
