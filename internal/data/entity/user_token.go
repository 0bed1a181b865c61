package entity

import (
	"time"

	"github.com/google/uuid"
)

type TokenPurpose string

const (
	TokenEmailVerification TokenPurpose = "email_verification"
	TokenPasswordReset     TokenPurpose = "password_reset"
)

// UserToken is a single-use link token. Only the sha256 of the raw token
// is stored.
type UserToken struct {
	BaseSimple
	UserID    uuid.UUID    `db:"user_id"`
	TokenHash string       `db:"token_hash"`
	Purpose   TokenPurpose `db:"purpose"`
	ExpiresAt time.Time    `db:"expires_at"`
	UsedAt    *time.Time   `db:"used_at"`
}
