package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/internal/domain/repository"
)

type CommonProfileRepository struct {
	pool *pgxpool.Pool
}

func NewCommonProfileRepository(pool *pgxpool.Pool) *CommonProfileRepository {
	return &CommonProfileRepository{pool: pool}
}

func (r *CommonProfileRepository) GetOrCreate(ctx context.Context, userID, defaultName string) (*entity.CommonProfile, error) {
	p := &entity.CommonProfile{}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO common_profiles (user_id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, full_name, avatar_url, created_at, updated_at
	`, userID, defaultName)
	if err := row.Scan(&p.UserID, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *CommonProfileRepository) Update(ctx context.Context, p *entity.CommonProfile) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE common_profiles
		SET full_name = $1, avatar_url = $2, updated_at = now()
		WHERE user_id = $3
		RETURNING updated_at
	`, p.FullName, p.AvatarURL, p.UserID)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

type LearnerProfileRepository struct {
	pool *pgxpool.Pool
}

func NewLearnerProfileRepository(pool *pgxpool.Pool) *LearnerProfileRepository {
	return &LearnerProfileRepository{pool: pool}
}

const learnerColumns = `user_id, interests, total_xp, level, badges, streak_days, longest_streak,
		courses_enrolled, courses_completed, quizzes_attempted, quizzes_passed, created_at, updated_at`

func scanLearner(row pgx.Row) (*entity.LearnerProfile, error) {
	p := &entity.LearnerProfile{}
	if err := row.Scan(&p.UserID, &p.Interests, &p.TotalXP, &p.Level, &p.Badges,
		&p.StreakDays, &p.LongestStreak, &p.CoursesEnrolled, &p.CoursesCompleted,
		&p.QuizzesAttempted, &p.QuizzesPassed, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *LearnerProfileRepository) GetOrCreate(ctx context.Context, userID string) (*entity.LearnerProfile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO learner_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+learnerColumns+`
	`, userID)
	return scanLearner(row)
}

func (r *LearnerProfileRepository) Update(ctx context.Context, p *entity.LearnerProfile) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE learner_profiles
		SET interests = $1, badges = $2, updated_at = now()
		WHERE user_id = $3
		RETURNING updated_at
	`, p.Interests, p.Badges, p.UserID)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

type InstructorProfileRepository struct {
	pool *pgxpool.Pool
}

func NewInstructorProfileRepository(pool *pgxpool.Pool) *InstructorProfileRepository {
	return &InstructorProfileRepository{pool: pool}
}

const instructorColumns = `user_id, designation, short_bio, full_bio, teaching_languages, organization,
		years_of_experience, total_courses, total_students, average_rating, is_approved, verified_badge,
		created_at, updated_at`

func scanInstructor(row pgx.Row) (*entity.InstructorProfile, error) {
	p := &entity.InstructorProfile{}
	if err := row.Scan(&p.UserID, &p.Designation, &p.ShortBio, &p.FullBio, &p.TeachingLanguages,
		&p.Organization, &p.YearsOfExperience, &p.TotalCourses, &p.TotalStudents, &p.AverageRating,
		&p.IsApproved, &p.VerifiedBadge, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *InstructorProfileRepository) GetOrCreate(ctx context.Context, userID string) (*entity.InstructorProfile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO instructor_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+instructorColumns+`
	`, userID)
	return scanInstructor(row)
}

func (r *InstructorProfileRepository) Update(ctx context.Context, p *entity.InstructorProfile) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE instructor_profiles
		SET designation = $1, short_bio = $2, full_bio = $3, teaching_languages = $4,
		    organization = $5, years_of_experience = $6, updated_at = now()
		WHERE user_id = $7
		RETURNING updated_at
	`, p.Designation, p.ShortBio, p.FullBio, p.TeachingLanguages,
		p.Organization, p.YearsOfExperience, p.UserID)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

type ThemeRepository struct {
	pool *pgxpool.Pool
}

func NewThemeRepository(pool *pgxpool.Pool) *ThemeRepository {
	return &ThemeRepository{pool: pool}
}

func (r *ThemeRepository) GetOrCreate(ctx context.Context, userID string) (*entity.ThemePreference, error) {
	p := &entity.ThemePreference{}
	var theme string
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_themes (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, theme
	`, userID)
	if err := row.Scan(&p.UserID, &theme); err != nil {
		return nil, err
	}
	p.Theme = entity.Theme(theme)
	return p, nil
}

func (r *ThemeRepository) Set(ctx context.Context, userID string, theme entity.Theme) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_themes (user_id, theme)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme
	`, userID, string(theme))
	return err
}

var (
	_ repository.CommonProfileRepository     = (*CommonProfileRepository)(nil)
	_ repository.LearnerProfileRepository    = (*LearnerProfileRepository)(nil)
	_ repository.InstructorProfileRepository = (*InstructorProfileRepository)(nil)
	_ repository.ThemeRepository             = (*ThemeRepository)(nil)
)
