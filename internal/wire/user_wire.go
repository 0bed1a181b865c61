package wire

import (
	"healthcare-booking/internal/adaptor"
	"healthcare-booking/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile routes and admin user management.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, rt routes) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(rt.auth).Route("/api/user/profile", func(r chi.Router) {
		r.Get("/", userHandler.GetProfile)
		r.Put("/", userHandler.UpdateProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(rt.auth, rt.role(entity.RoleAdmin)).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)       // GET /api/admin/users?page=1&limit=10
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{user-id}
	})
}
