package middleware

import (
	"context"
	"net/http"
	"strings"

	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DenyChecker reports whether an access token was revoked before expiry.
type DenyChecker interface {
	IsDenied(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the Bearer access token and puts the caller's id, role and
// token identity on the request context.
func Auth(tokens *utils.TokenManager, denylist DenyChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// 2. Verify signature and expiry
			claims, err := tokens.ValidateAccessToken(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// 3. Reject logged-out tokens and deactivated users
			if denylist != nil {
				for _, key := range []string{claims.ID, utils.UserDenyKey(claims.UserID)} {
					denied, err := denylist.IsDenied(r.Context(), key)
					if err != nil {
						logger.Error("Failed to check token denylist", zap.Error(err))
						utils.ResponseInternalError(w, "Internal server error")
						return
					}
					if denied {
						utils.ResponseUnauthorized(w, "Token has been revoked")
						return
					}
				}
			}

			userID, _ := uuid.Parse(claims.UserID)
			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			info := utils.TokenInfo{ID: claims.ID}
			if claims.ExpiresAt != nil {
				info.ExpiresAt = claims.ExpiresAt.Time
			}
			ctx = utils.SetTokenContext(ctx, info)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request through only for the listed roles. It must
// run after Auth.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check: access denied",
				zap.String("user_id", userID.String()),
				zap.String("role", role),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Access denied for role "+role)
		})
	}
}
