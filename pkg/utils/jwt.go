package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by both access and refresh tokens. The registered ID (jti)
// keys the refresh session and the access-token denylist.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserDenyKey is the denylist entry that blocks every access token of a
// deactivated user.
func UserDenyKey(userID string) string {
	return "user:" + userID
}

type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshTokenID   uuid.UUID
	RefreshExpiresAt time.Time
}

// TokenManager signs and verifies HS256 tokens with separate access and
// refresh secrets.
type TokenManager struct {
	cfg JWTConfig
	now func() time.Time
}

func NewTokenManager(cfg JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// GenerateTokens issues an access token and a refresh token for a user.
func (m *TokenManager) GenerateTokens(userID uuid.UUID, role string) (*TokenPair, error) {
	now := m.now()

	accessExp := now.Add(time.Duration(m.cfg.AccessExpiryMinutes) * time.Minute)
	accessToken, err := m.sign(userID, role, uuid.New(), now, accessExp, m.cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshID := uuid.New()
	refreshExp := now.Add(time.Duration(m.cfg.RefreshExpiryHours) * time.Hour)
	refreshToken, err := m.sign(userID, role, refreshID, now, refreshExp, m.cfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshTokenID:   refreshID,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (m *TokenManager) ValidateAccessToken(token string) (*Claims, error) {
	return m.validate(token, m.cfg.AccessSecret)
}

func (m *TokenManager) ValidateRefreshToken(token string) (*Claims, error) {
	return m.validate(token, m.cfg.RefreshSecret)
}

func (m *TokenManager) sign(userID uuid.UUID, role string, id uuid.UUID, issued, expires time.Time, secret string) (string, error) {
	claims := &Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (m *TokenManager) validate(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return claims, nil
}
