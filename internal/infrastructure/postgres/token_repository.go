package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/internal/domain/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// GetOrCreate relies on the user_id primary key: racing logins insert at
// most one row, losers fall through to the reselect.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID string, gen func() (string, error)) (*entity.AuthToken, error) {
	t := &entity.AuthToken{}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, token, created_at FROM auth_tokens WHERE user_id = $1
	`, userID)
	err := row.Scan(&t.UserID, &t.Key, &t.CreatedAt)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	key, err := gen()
	if err != nil {
		return nil, err
	}
	row = r.pool.QueryRow(ctx, `
		INSERT INTO auth_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id, token, created_at
	`, userID, key)
	err = row.Scan(&t.UserID, &t.Key, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// lost the race; the winner's token is authoritative
		row = r.pool.QueryRow(ctx, `
			SELECT user_id, token, created_at FROM auth_tokens WHERE user_id = $1
		`, userID)
		err = row.Scan(&t.UserID, &t.Key, &t.CreatedAt)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*entity.AuthToken, error) {
	t := &entity.AuthToken{}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, token, created_at FROM auth_tokens WHERE token = $1
	`, key)
	if err := row.Scan(&t.UserID, &t.Key, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
