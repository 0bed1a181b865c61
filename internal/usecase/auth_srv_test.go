package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
)

func registerReq(email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     email,
		Password:  "Secret123",
		Phone:     "5550001111",
	}
}

// linkToken pulls the raw token off the end of the last emailed link.
func linkToken(t *testing.T, html, marker string) string {
	t.Helper()
	i := strings.Index(html, marker)
	if i < 0 {
		t.Fatalf("link %q not found in email", marker)
	}
	rest := html[i+len(marker):]
	if j := strings.IndexByte(rest, '"'); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.svc.Auth.Register(context.Background(), registerReq("Ana@Example.com"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got.Token == "" || got.RefreshToken == "" {
		t.Fatal("expected access and refresh tokens")
	}
	if got.User.Email != "ana@example.com" || got.User.Role != entity.RolePatient {
		t.Errorf("user = %+v", got.User)
	}
	if got.User.IsEmailVerified {
		t.Error("new account should not be verified")
	}

	id := uuid.MustParse(got.User.ID)
	if titles := env.notifications.titlesFor(id); len(titles) != 1 || titles[0] != "Welcome to HealthCare+" {
		t.Errorf("notifications = %v", titles)
	}
	if msg := env.mail.last(); msg.To != "ana@example.com" || !strings.Contains(msg.HTML, "/verify-email/") {
		t.Errorf("verification email not sent: %+v", msg)
	}

	_, err = env.svc.Auth.Register(context.Background(), registerReq("ana@example.com"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate Register() error = %v, want ErrConflict", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	req := registerReq("ana@example.com")
	req.Password = "weakpass"
	_, err := env.svc.Auth.Register(context.Background(), req)

	var appErr *Error
	if !errors.As(err, &appErr) || !errors.Is(err, ErrValidation) {
		t.Fatalf("Register() error = %v, want validation error", err)
	}
	if _, ok := appErr.Fields["password"]; !ok {
		t.Errorf("fields = %v, want password", appErr.Fields)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, entity.RolePatient, "pat@example.com")
	inactive := env.addUser(t, entity.RolePatient, "gone@example.com")
	if err := env.users.Delete(context.Background(), inactive.ID); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"ok", "pat@example.com", "Secret123", nil},
		{"case insensitive email", "PAT@example.com", "Secret123", nil},
		{"wrong password", "pat@example.com", "Secret124", ErrUnauthenticated},
		{"unknown email", "nobody@example.com", "Secret123", ErrUnauthenticated},
		{"deactivated", "gone@example.com", "Secret123", ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("Login() error = %v, want %v", err, tt.want)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if got.User.ID != user.ID.String() {
				t.Errorf("user id = %s", got.User.ID)
			}
		})
	}

	stored, _ := env.users.FindByID(context.Background(), user.ID)
	if stored.LastLoginAt == nil {
		t.Error("last login not recorded")
	}
}

func TestSocialLogin(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.svc.Auth.SocialLogin(context.Background(), &request.SocialLoginRequest{
		ID: "g-1", Name: "Sam Lee Park", Email: "sam@example.com", Provider: "google",
	})
	if err != nil {
		t.Fatalf("SocialLogin() error = %v", err)
	}
	if got.User.RegistrationMethod != entity.RegistrationSocialGoogle || !got.User.IsEmailVerified {
		t.Errorf("user = %+v", got.User)
	}
	if got.User.FirstName != "Sam" || got.User.LastName != "Lee Park" {
		t.Errorf("name = %q %q", got.User.FirstName, got.User.LastName)
	}

	stored, _ := env.users.FindByEmail(context.Background(), "sam@example.com")
	if stored.HasPassword() {
		t.Error("social account should have no password")
	}

	// Password login is impossible for a passwordless account.
	_, err = env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "sam@example.com", Password: "anything"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Login() error = %v, want ErrUnauthenticated", err)
	}

	// The same provider identity signs back into the account.
	again, err := env.svc.Auth.SocialLogin(context.Background(), &request.SocialLoginRequest{
		ID: "g-1", Name: "Sam Lee", Email: "sam@example.com", Provider: "google",
	})
	if err != nil {
		t.Fatalf("SocialLogin() error = %v", err)
	}
	if again.User.ID != got.User.ID {
		t.Error("expected the existing account")
	}
}

func TestSocialLoginDoesNotTakeOverAccounts(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, entity.RoleAdmin, "admin@clinic.test")
	patient := env.addUser(t, entity.RolePatient, "pat@clinic.test")
	if _, err := env.svc.Auth.SocialLogin(context.Background(), &request.SocialLoginRequest{
		ID: "g-owner", Name: "Owner", Email: "social@clinic.test", Provider: "google",
	}); err != nil {
		t.Fatalf("SocialLogin() error = %v", err)
	}

	tests := []struct {
		name string
		req  request.SocialLoginRequest
	}{
		{"admin with password", request.SocialLoginRequest{ID: "attacker", Name: "X", Email: admin.Email, Provider: "google"}},
		{"patient with password", request.SocialLoginRequest{ID: "attacker", Name: "X", Email: patient.Email, Provider: "google"}},
		{"different provider id", request.SocialLoginRequest{ID: "attacker", Name: "X", Email: "social@clinic.test", Provider: "google"}},
		{"unlinked provider", request.SocialLoginRequest{ID: "g-owner", Name: "X", Email: "social@clinic.test", Provider: "facebook"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.svc.Auth.SocialLogin(context.Background(), &tt.req)
			if !errors.Is(err, ErrConflict) {
				t.Fatalf("SocialLogin() = %v, %v; want ErrConflict", got, err)
			}
		})
	}

	stored, _ := env.users.FindByEmail(context.Background(), admin.Email)
	if len(stored.SocialProviders) != 0 {
		t.Errorf("admin providers = %v, want none linked", stored.SocialProviders)
	}
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Auth.Register(context.Background(), registerReq("ana@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	token := linkToken(t, env.mail.last().HTML, "/verify-email/")

	got, err := env.svc.Auth.VerifyEmail(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyEmail() error = %v", err)
	}
	if !got.User.IsEmailVerified {
		t.Error("user not verified")
	}

	if _, err := env.svc.Auth.VerifyEmail(context.Background(), token); !errors.Is(err, ErrValidation) {
		t.Errorf("reused token error = %v, want ErrValidation", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, entity.RolePatient, "pat@example.com")
	login, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "pat@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := env.svc.Auth.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "nobody@example.com"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("ForgotPassword() unknown error = %v, want ErrNotFound", err)
	}
	if err := env.svc.Auth.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "pat@example.com"}); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	token := linkToken(t, env.mail.last().HTML, "/reset-password/")

	// Expired after ten minutes.
	env.clock.Set(env.clock.Now().Add(11 * time.Minute))
	if _, err := env.svc.Auth.ResetPassword(context.Background(), token, &request.ResetPasswordRequest{Password: "NewSecret1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expired ResetPassword() error = %v, want ErrValidation", err)
	}

	if err := env.svc.Auth.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "pat@example.com"}); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	token = linkToken(t, env.mail.last().HTML, "/reset-password/")

	if _, err := env.svc.Auth.ResetPassword(context.Background(), token, &request.ResetPasswordRequest{Password: "NewSecret1"}); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if _, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "pat@example.com", Password: "NewSecret1"}); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}

	// Earlier refresh tokens were revoked.
	if _, err := env.svc.Auth.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("RefreshToken() after reset error = %v, want ErrUnauthenticated", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, entity.RolePatient, "pat@example.com")
	login, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "pat@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	rotated, err := env.svc.Auth.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if rotated.RefreshToken == login.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	if _, err := env.svc.Auth.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("reused refresh token error = %v, want ErrUnauthenticated", err)
	}
	if _, err := env.svc.Auth.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: login.Token}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("access token as refresh error = %v, want ErrUnauthenticated", err)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, entity.RolePatient, "pat@example.com")
	login, err := env.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "pat@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	access := utils.TokenInfo{ID: "access-jti", ExpiresAt: env.clock.Now().Add(30 * time.Minute)}
	if err := env.svc.Auth.Logout(context.Background(), access, &request.LogoutRequest{RefreshToken: login.RefreshToken}); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if ttl := env.denylist.denied["access-jti"]; ttl != 30*time.Minute {
		t.Errorf("denylist ttl = %v, want 30m", ttl)
	}
	if _, err := env.svc.Auth.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("RefreshToken() after logout error = %v, want ErrUnauthenticated", err)
	}
}
