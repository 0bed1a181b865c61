package wire

import (
	"healthcare-booking/internal/adaptor"
	"healthcare-booking/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireDoctor(r chi.Router, doctorHandler *adaptor.DoctorHandler, rt routes) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/doctors", doctorHandler.ListDoctors)
	r.Get("/api/doctors/specialties", doctorHandler.ListSpecialties)
	r.Get("/api/doctors/{id}", doctorHandler.GetDoctor)

	// ==================== PROTECTED ROUTES ====================
	r.With(rt.auth).Get("/api/doctors/{id}/availability", doctorHandler.GetAvailability)

	r.With(rt.auth, rt.role(entity.RoleDoctor)).Route("/api/doctor/profile", func(r chi.Router) {
		r.Get("/", doctorHandler.GetOwnProfile)
		r.Put("/", doctorHandler.UpsertProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(rt.auth, rt.role(entity.RoleAdmin)).Patch("/api/admin/doctors/{id}/verify", doctorHandler.Verify)
}
