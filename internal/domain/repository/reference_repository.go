package repository

import (
	"context"

	"github.com/Rafid41/LMS/internal/domain/entity"
)

// ReferenceRepository covers the admin-managed lookup tables: subject
// tags, timezones and languages. All lists come back sorted by name.
type ReferenceRepository interface {
	ListSubjectTags(ctx context.Context) ([]entity.SubjectTag, error)
	CreateSubjectTag(ctx context.Context, name string) (*entity.SubjectTag, error)
	UpdateSubjectTag(ctx context.Context, id, name string) (*entity.SubjectTag, error)
	DeleteSubjectTag(ctx context.Context, id string) error

	ListTimezones(ctx context.Context) ([]entity.Timezone, error)
	CreateTimezone(ctx context.Context, name, utcOffset string) (*entity.Timezone, error)
	UpdateTimezone(ctx context.Context, id, name, utcOffset string) (*entity.Timezone, error)
	DeleteTimezone(ctx context.Context, id string) error

	ListLanguages(ctx context.Context) ([]entity.Language, error)
	CreateLanguage(ctx context.Context, name, nativeName string) (*entity.Language, error)
	UpdateLanguage(ctx context.Context, id, name, nativeName string) (*entity.Language, error)
	DeleteLanguage(ctx context.Context, id string) error
}
