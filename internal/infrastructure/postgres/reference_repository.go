package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/internal/domain/repository"
)

type ReferenceRepository struct {
	pool *pgxpool.Pool
}

func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

func (r *ReferenceRepository) ListSubjectTags(ctx context.Context) ([]entity.SubjectTag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM subject_tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.SubjectTag{}
	for rows.Next() {
		var t entity.SubjectTag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) CreateSubjectTag(ctx context.Context, name string) (*entity.SubjectTag, error) {
	t := &entity.SubjectTag{Name: name}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO subject_tags (name) VALUES ($1) RETURNING id
	`, name).Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ReferenceRepository) UpdateSubjectTag(ctx context.Context, id, name string) (*entity.SubjectTag, error) {
	t := &entity.SubjectTag{ID: id, Name: name}
	err := r.pool.QueryRow(ctx, `
		UPDATE subject_tags SET name = $1 WHERE id = $2 RETURNING id
	`, name, id).Scan(&t.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ReferenceRepository) DeleteSubjectTag(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM subject_tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReferenceRepository) ListTimezones(ctx context.Context) ([]entity.Timezone, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, utc_offset FROM timezones ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.Timezone{}
	for rows.Next() {
		var t entity.Timezone
		if err := rows.Scan(&t.ID, &t.Name, &t.UTCOffset); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) CreateTimezone(ctx context.Context, name, utcOffset string) (*entity.Timezone, error) {
	t := &entity.Timezone{Name: name, UTCOffset: utcOffset}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO timezones (name, utc_offset) VALUES ($1, $2) RETURNING id
	`, name, utcOffset).Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ReferenceRepository) UpdateTimezone(ctx context.Context, id, name, utcOffset string) (*entity.Timezone, error) {
	t := &entity.Timezone{ID: id, Name: name, UTCOffset: utcOffset}
	err := r.pool.QueryRow(ctx, `
		UPDATE timezones SET name = $1, utc_offset = $2 WHERE id = $3 RETURNING id
	`, name, utcOffset, id).Scan(&t.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ReferenceRepository) DeleteTimezone(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM timezones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReferenceRepository) ListLanguages(ctx context.Context) ([]entity.Language, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, native_name FROM languages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.Language{}
	for rows.Next() {
		var l entity.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.NativeName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) CreateLanguage(ctx context.Context, name, nativeName string) (*entity.Language, error) {
	l := &entity.Language{Name: name, NativeName: nativeName}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO languages (name, native_name) VALUES ($1, $2) RETURNING id
	`, name, nativeName).Scan(&l.ID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *ReferenceRepository) UpdateLanguage(ctx context.Context, id, name, nativeName string) (*entity.Language, error) {
	l := &entity.Language{ID: id, Name: name, NativeName: nativeName}
	err := r.pool.QueryRow(ctx, `
		UPDATE languages SET name = $1, native_name = $2 WHERE id = $3 RETURNING id
	`, name, nativeName, id).Scan(&l.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *ReferenceRepository) DeleteLanguage(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ReferenceRepository = (*ReferenceRepository)(nil)
