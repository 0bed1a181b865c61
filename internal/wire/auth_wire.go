package wire

import (
	"healthcare-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, rt routes) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", authHandler.Register)
		r.With(rt.limit("login", rt.config.RateLimit.LoginAttempts)).Post("/login", authHandler.Login)
		r.Post("/social-login", authHandler.SocialLogin)
		r.Get("/verify-email/{token}", authHandler.VerifyEmail)
		r.With(rt.limit("forgot-password", rt.config.RateLimit.ForgotPasswordAttempts)).
			Post("/forgot-password", authHandler.ForgotPassword)
		r.Patch("/reset-password/{token}", authHandler.ResetPassword)
		r.Post("/refresh-token", authHandler.RefreshToken)

		// ==================== PROTECTED ROUTES ====================
		r.With(rt.auth).Post("/logout", authHandler.Logout)
	})
}
