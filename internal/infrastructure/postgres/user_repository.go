package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/internal/domain/repository"
)

const userColumns = `id, email, username, password_hash, is_active, is_staff, otp, otp_created_at, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.IsActive, &u.IsStaff,
		&u.OTP, &u.OTPCreatedAt, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1)
	`, email)
	return scanUser(row)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))
	`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) RoleOf(ctx context.Context, userID string) (entity.Role, error) {
	var role string
	err := r.pool.QueryRow(ctx, `
		SELECT role FROM user_roles WHERE user_id = $1
	`, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entity.Role(role), nil
}

// Promote creates the account, its role record, its common profile and
// the role-specific profile row in one transaction, then removes the
// pending registration. Password is stored as-is; it was hashed when the
// registration was accepted.
func (r *UserRepository) Promote(ctx context.Context, p *entity.PendingRegistration) (*entity.User, error) {
	username, err := gonanoid.New(10)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	u := &entity.User{}
	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, p.Email, username, p.Password)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.IsActive, &u.IsStaff,
		&u.OTP, &u.OTPCreatedAt, &u.CreatedAt); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
	`, u.ID, string(p.Role)); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO common_profiles (user_id, full_name) VALUES ($1, $2)
	`, u.ID, entity.LocalPart(p.Email)); err != nil {
		return nil, err
	}

	switch p.Role {
	case entity.RoleStudent:
		if _, err := tx.Exec(ctx, `
			INSERT INTO learner_profiles (user_id) VALUES ($1)
		`, u.ID); err != nil {
			return nil, err
		}
	case entity.RoleTeacher:
		if _, err := tx.Exec(ctx, `
			INSERT INTO instructor_profiles (user_id) VALUES ($1)
		`, u.ID); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM pending_registrations WHERE email = $1
	`, p.Email); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) SetResetOTP(ctx context.Context, userID, otp string, issuedAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET otp = $1, otp_created_at = $2 WHERE id = $3
	`, otp, issuedAt, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePasswordClearOTP(ctx context.Context, userID, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, otp = NULL, otp_created_at = NULL WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
