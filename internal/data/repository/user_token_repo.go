package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserTokenRepository interface {
	Create(ctx context.Context, token *entity.UserToken) error
	FindValid(ctx context.Context, tokenHash string, purpose entity.TokenPurpose, now time.Time) (*entity.UserToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	InvalidateUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose, at time.Time) error
}

type userTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserTokenRepository(db database.PgxIface, log *zap.Logger) UserTokenRepository {
	return &userTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_token")),
	}
}

func (r *userTokenRepository) Create(ctx context.Context, token *entity.UserToken) error {
	query := `
		INSERT INTO user_tokens (id, user_id, token_hash, purpose, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.Purpose,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create user token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
			zap.String("purpose", string(token.Purpose)),
		)
		return fmt.Errorf("create %s token for %s: %w", token.Purpose, token.UserID.String(), err)
	}

	return nil
}

func (r *userTokenRepository) FindValid(ctx context.Context, tokenHash string, purpose entity.TokenPurpose, now time.Time) (*entity.UserToken, error) {
	query := `
		SELECT id, user_id, token_hash, purpose, expires_at, used_at, created_at
		FROM user_tokens
		WHERE token_hash = $1
		  AND purpose = $2
		  AND used_at IS NULL
		  AND expires_at > $3
	`

	var token entity.UserToken
	err := r.db.QueryRow(ctx, query, tokenHash, purpose, now).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.Purpose,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user token", zap.Error(err), zap.String("purpose", string(purpose)))
		return nil, fmt.Errorf("find %s token: %w", purpose, err)
	}

	return &token, nil
}

func (r *userTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.Exec(ctx, `UPDATE user_tokens SET used_at = $2 WHERE id = $1 AND used_at IS NULL`, id, at)
	if err != nil {
		r.log.Error("Failed to mark token used", zap.Error(err), zap.String("token_id", id.String()))
		return fmt.Errorf("mark token %s used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark token %s used: %w", id.String(), ErrRecordMissing)
	}

	return nil
}

// InvalidateUser burns every outstanding token of a purpose so only the
// newest link works.
func (r *userTokenRepository) InvalidateUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose, at time.Time) error {
	query := `UPDATE user_tokens SET used_at = $3 WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL`

	if _, err := r.db.Exec(ctx, query, userID, purpose, at); err != nil {
		r.log.Error("Failed to invalidate user tokens", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("invalidate %s tokens for %s: %w", purpose, userID.String(), err)
	}

	return nil
}
