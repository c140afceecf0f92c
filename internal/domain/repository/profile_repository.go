package repository

import (
	"context"

	"github.com/Rafid41/LMS/internal/domain/entity"
)

// CommonProfileRepository manages the shared profile row.
type CommonProfileRepository interface {
	// GetOrCreate returns the profile, creating it with defaultName if a
	// row does not exist yet (accounts predating the profile table).
	GetOrCreate(ctx context.Context, userID, defaultName string) (*entity.CommonProfile, error)
	Update(ctx context.Context, p *entity.CommonProfile) error
}

type LearnerProfileRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*entity.LearnerProfile, error)
	Update(ctx context.Context, p *entity.LearnerProfile) error
}

type InstructorProfileRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*entity.InstructorProfile, error)
	Update(ctx context.Context, p *entity.InstructorProfile) error
}

type ThemeRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*entity.ThemePreference, error)
	Set(ctx context.Context, userID string, theme entity.Theme) error
}
