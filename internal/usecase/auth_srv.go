package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/dto/response"
	"healthcare-booking/pkg/mailer"
	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	SocialLogin(ctx context.Context, req *request.SocialLoginRequest) (*response.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (*response.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) (*response.AuthResponse, error)
	RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, access utils.TokenInfo, req *request.LogoutRequest) error
}

type authService struct {
	repo     *repository.Repository
	config   *utils.Config
	tokens   *utils.TokenManager
	mailer   mailer.Sender
	denylist TokenDenylist
	events   Emitter
	now      func() time.Time
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	deps Dependencies,
	events Emitter,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		config:   config,
		tokens:   deps.Tokens,
		mailer:   deps.Mailer,
		denylist: deps.Denylist,
		events:   events,
		now:      deps.Now,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Check email is free
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newError(ErrConflict, "email already registered")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Build user
	role := entity.RolePatient
	if req.UserType != "" {
		role = entity.UserRole(req.UserType)
	}

	now := s.now()
	user := &entity.User{
		Base:               entity.NewBase(now),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       &hashed,
		Phone:              req.Phone,
		Role:               role,
		Gender:             req.Gender,
		RegistrationMethod: entity.RegistrationEmail,
		IsActive:           true,
	}
	if req.DateOfBirth != nil {
		dob, err := entity.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, newError(ErrValidation, "invalid date of birth")
		}
		user.DateOfBirth = &dob
	}

	// 5. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return nil, fromRepository(err, "create user")
	}

	// 6. Verification email is best-effort
	s.sendVerification(ctx, user)

	// 7. Welcome notification
	s.events.Emit(ctx, Event{
		Type:        EventUserRegistered,
		RecipientID: user.ID,
		Title:       "Welcome to HealthCare+",
		Message:     fmt.Sprintf("Welcome %s! Your account has been created successfully.", user.FirstName),
		Category:    entity.NotificationAccount,
		OccurredAt:  now,
	})

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Unknown email and wrong password look the same
	if user == nil || !user.HasPassword() || !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, newError(ErrUnauthenticated, "invalid email or password")
	}

	// 4. Check account state
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrForbidden, "account is deactivated")
	}

	// 5. Record login
	now := s.now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}
	user.LastLoginAt = &now

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issueTokens(ctx, user)
}

func (s *authService) SocialLogin(ctx context.Context, req *request.SocialLoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	provider := entity.SocialProvider{
		ID:          req.ID,
		Email:       strings.ToLower(req.Email),
		ConnectedAt: now,
	}
	if req.Picture != nil {
		provider.Picture = *req.Picture
	}

	// 2. Existing account: only the provider identity already linked to it
	// may sign in. Linking a new provider needs a password sign-in first.
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user != nil {
		linked, ok := user.SocialProviders[req.Provider]
		if !ok || linked.ID != req.ID || user.Role != entity.RolePatient {
			s.log.Warn("Social login rejected for existing account",
				zap.String("user_id", user.ID.String()),
				zap.String("provider", req.Provider))
			return nil, newError(ErrConflict, "account exists, sign in with password and link the provider")
		}
		if !user.IsActive {
			return nil, newError(ErrForbidden, "account is deactivated")
		}

		provider.ConnectedAt = linked.ConnectedAt
		user.SocialProviders[req.Provider] = provider
		if user.ProfilePicture == nil && req.Picture != nil {
			user.ProfilePicture = req.Picture
		}
		user.LastLoginAt = &now
		user.UpdatedAt = now

		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to update social user", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fromRepository(err, "update user")
		}

		s.log.Info("Social login", zap.String("user_id", user.ID.String()), zap.String("provider", req.Provider))
		return s.issueTokens(ctx, user)
	}

	// 3. New patient without a password
	first, last := splitName(req.Name)
	user = &entity.User{
		Base:               entity.NewBase(now),
		FirstName:          first,
		LastName:           last,
		Email:              strings.ToLower(req.Email),
		Role:               entity.RolePatient,
		ProfilePicture:     req.Picture,
		SocialProviders:    map[string]entity.SocialProvider{req.Provider: provider},
		RegistrationMethod: entity.RegistrationMethod("social_" + req.Provider),
		EmailVerified:      true,
		IsActive:           true,
		LastLoginAt:        &now,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create social user", zap.Error(err), zap.String("email", user.Email))
		return nil, fromRepository(err, "create user")
	}

	s.events.Emit(ctx, Event{
		Type:        EventUserRegistered,
		RecipientID: user.ID,
		Title:       "Welcome to HealthCare+",
		Message:     fmt.Sprintf("Welcome %s! Your account has been created with %s.", user.FirstName, req.Provider),
		Category:    entity.NotificationAccount,
		OccurredAt:  now,
	})

	s.log.Info("User registered via social login",
		zap.String("user_id", user.ID.String()),
		zap.String("provider", req.Provider))

	return s.issueTokens(ctx, user)
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*response.AuthResponse, error) {
	user, err := s.consumeToken(ctx, token, entity.TokenEmailVerification)
	if err != nil {
		return nil, err
	}

	if !user.EmailVerified {
		user.EmailVerified = true
		user.UpdatedAt = s.now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to mark email verified", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fromRepository(err, "update user")
		}
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return s.issueTokens(ctx, user)
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	// 1. Validate
	if err := validate(req); err != nil {
		return err
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return newError(ErrNotFound, "no account found with that email")
	}

	// 3. Issue reset token, superseding older ones
	ttl := time.Duration(s.config.Policy.ResetTokenMinutes) * time.Minute
	raw, err := s.createToken(ctx, user.ID, entity.TokenPasswordReset, ttl)
	if err != nil {
		return err
	}

	// 4. Mail the link
	msg, err := mailer.PasswordResetEmail(user.Email, mailer.LinkData{
		Name:   user.FirstName,
		Link:   fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.config.App.FrontendURL, "/"), raw),
		Expiry: fmt.Sprintf("%d minutes", s.config.Policy.ResetTokenMinutes),
	})
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("Failed to send reset email", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("send reset email: %w", err)
	}

	s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Redeem token
	user, err := s.consumeToken(ctx, token, entity.TokenPasswordReset)
	if err != nil {
		return nil, err
	}

	// 3. Store new hash
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = &hashed
	user.UpdatedAt = s.now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fromRepository(err, "update user")
	}

	// 4. Sign out everywhere
	if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke sessions", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Verify signature and expiry
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, newError(ErrUnauthenticated, "invalid or expired refresh token")
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, newError(ErrUnauthenticated, "invalid or expired refresh token")
	}

	// 3. Session must still be live
	session, err := s.repo.Session.FindByTokenID(ctx, tokenID)
	if err != nil {
		s.log.Error("Failed to find session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil || !session.IsValid(s.now()) {
		return nil, newError(ErrUnauthenticated, "invalid or expired refresh token")
	}

	// 4. User must still be active
	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, newError(ErrUnauthenticated, "account is no longer active")
	}

	// 5. Rotate
	if err := s.repo.Session.Revoke(ctx, tokenID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, access utils.TokenInfo, req *request.LogoutRequest) error {
	// 1. Revoke the refresh session if one was presented
	if req != nil && req.RefreshToken != "" {
		claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
		if err == nil {
			if tokenID, err := uuid.Parse(claims.ID); err == nil {
				if err := s.repo.Session.Revoke(ctx, tokenID); err != nil {
					s.log.Error("Failed to revoke session", zap.Error(err))
					return fmt.Errorf("revoke session: %w", err)
				}
			}
		}
	}

	// 2. Deny the access token for the rest of its lifetime
	if s.denylist != nil && access.ID != "" {
		ttl := access.ExpiresAt.Sub(s.now())
		if err := s.denylist.Deny(ctx, access.ID, ttl); err != nil {
			s.log.Error("Failed to deny access token", zap.Error(err))
			return fmt.Errorf("deny access token: %w", err)
		}
	}

	s.log.Info("User logged out", zap.String("token_id", access.ID))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	pair, err := s.tokens.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to generate tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	client := utils.GetClientFromContext(ctx)
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now()},
		UserID:     user.ID,
		TokenID:    pair.RefreshTokenID,
		UserAgent:  optional(client.UserAgent),
		IPAddress:  optional(client.IPAddress),
		ExpiresAt:  pair.RefreshExpiresAt,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &response.AuthResponse{
		User:             response.UserToResponse(user),
		Token:            pair.AccessToken,
		ExpiresAt:        pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

// createToken stores the hash of a fresh link token and returns the raw value.
func (s *authService) createToken(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose, ttl time.Duration) (string, error) {
	now := s.now()
	if err := s.repo.UserToken.InvalidateUser(ctx, userID, purpose, now); err != nil {
		s.log.Warn("Failed to invalidate previous tokens", zap.Error(err), zap.String("purpose", string(purpose)))
	}

	raw, err := utils.GenerateURLToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := &entity.UserToken{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     userID,
		TokenHash:  utils.HashToken(raw),
		Purpose:    purpose,
		ExpiresAt:  now.Add(ttl),
	}
	if err := s.repo.UserToken.Create(ctx, token); err != nil {
		s.log.Error("Failed to save token", zap.Error(err), zap.String("purpose", string(purpose)))
		return "", fmt.Errorf("save token: %w", err)
	}
	return raw, nil
}

// consumeToken redeems a link token once and returns its active owner.
func (s *authService) consumeToken(ctx context.Context, raw string, purpose entity.TokenPurpose) (*entity.User, error) {
	if raw == "" {
		return nil, newError(ErrValidation, "token is required")
	}

	now := s.now()
	token, err := s.repo.UserToken.FindValid(ctx, utils.HashToken(raw), purpose, now)
	if err != nil {
		s.log.Error("Failed to find token", zap.Error(err))
		return nil, fmt.Errorf("find token: %w", err)
	}
	if token == nil {
		return nil, newError(ErrValidation, "invalid or expired token")
	}

	user, err := s.repo.User.FindByID(ctx, token.UserID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, newError(ErrNotFound, "user not found")
	}

	if err := s.repo.UserToken.MarkUsed(ctx, token.ID, now); err != nil {
		s.log.Error("Failed to mark token used", zap.Error(err))
		return nil, fmt.Errorf("mark token used: %w", err)
	}
	return user, nil
}

func (s *authService) sendVerification(ctx context.Context, user *entity.User) {
	ttl := time.Duration(s.config.Policy.VerifyTokenHours) * time.Hour
	raw, err := s.createToken(ctx, user.ID, entity.TokenEmailVerification, ttl)
	if err != nil {
		s.log.Error("Failed to create verification token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return
	}

	msg, err := mailer.VerificationEmail(user.Email, mailer.LinkData{
		Name:   user.FirstName,
		Link:   fmt.Sprintf("%s/verify-email/%s", strings.TrimRight(s.config.App.FrontendURL, "/"), raw),
		Expiry: fmt.Sprintf("%d hours", s.config.Policy.VerifyTokenHours),
	})
	if err != nil {
		s.log.Error("Failed to render verification email", zap.Error(err))
		return
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("Failed to send verification email", zap.Error(err), zap.String("user_id", user.ID.String()))
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
