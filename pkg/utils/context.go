package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
	ClientKey contextKey = "client"
)

// ClientInfo describes the caller's device; stored on issued sessions.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// TokenInfo identifies the access token that authenticated the request.
type TokenInfo struct {
	ID        string
	ExpiresAt time.Time
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok && role != ""
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (TokenInfo, bool) {
	token, ok := ctx.Value(TokenKey).(TokenInfo)
	return token, ok
}

func SetTokenContext(ctx context.Context, token TokenInfo) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetClientFromContext(ctx context.Context) ClientInfo {
	client, _ := ctx.Value(ClientKey).(ClientInfo)
	return client
}

func SetClientContext(ctx context.Context, client ClientInfo) context.Context {
	return context.WithValue(ctx, ClientKey, client)
}
