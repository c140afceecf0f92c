package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/internal/domain/repository"
)

type PendingRegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewPendingRegistrationRepository(pool *pgxpool.Pool) *PendingRegistrationRepository {
	return &PendingRegistrationRepository{pool: pool}
}

// Upsert keeps at most one pending row per email; a repeat registration
// replaces the hash, role, code and timestamps of the previous attempt.
func (r *PendingRegistrationRepository) Upsert(ctx context.Context, p *entity.PendingRegistration) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pending_registrations (email, password_hash, role, otp, otp_created_at)
		VALUES (lower($1), $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    role = EXCLUDED.role,
		    otp = EXCLUDED.otp,
		    otp_created_at = EXCLUDED.otp_created_at,
		    created_at = now()
		RETURNING created_at
	`, p.Email, p.Password, string(p.Role), p.OTP, p.OTPCreatedAt)
	return row.Scan(&p.CreatedAt)
}

func (r *PendingRegistrationRepository) GetByEmail(ctx context.Context, email string) (*entity.PendingRegistration, error) {
	p := &entity.PendingRegistration{}
	var role string
	row := r.pool.QueryRow(ctx, `
		SELECT email, password_hash, role, otp, otp_created_at, created_at
		FROM pending_registrations
		WHERE email = lower($1)
	`, email)
	if err := row.Scan(&p.Email, &p.Password, &role, &p.OTP, &p.OTPCreatedAt, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Role = entity.Role(role)
	return p, nil
}

func (r *PendingRegistrationRepository) UpdateOTP(ctx context.Context, email, otp string, issuedAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE pending_registrations SET otp = $1, otp_created_at = $2 WHERE email = lower($3)
	`, otp, issuedAt, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PendingRegistrationRepository = (*PendingRegistrationRepository)(nil)
