package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Rafid41/LMS/internal/domain/entity"
	repo "github.com/Rafid41/LMS/internal/domain/repository"
)

// ReferenceService wraps the admin-managed lookup tables.
type ReferenceService struct {
	Refs repo.ReferenceRepository
}

func NewReferenceService(refs repo.ReferenceRepository) *ReferenceService {
	return &ReferenceService{Refs: refs}
}

func (s *ReferenceService) ListSubjectTags(ctx context.Context) ([]entity.SubjectTag, error) {
	return s.Refs.ListSubjectTags(ctx)
}

func (s *ReferenceService) CreateSubjectTag(ctx context.Context, name string) (*entity.SubjectTag, error) {
	return s.Refs.CreateSubjectTag(ctx, strings.TrimSpace(name))
}

func (s *ReferenceService) UpdateSubjectTag(ctx context.Context, id, name string) (*entity.SubjectTag, error) {
	t, err := s.Refs.UpdateSubjectTag(ctx, id, strings.TrimSpace(name))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *ReferenceService) DeleteSubjectTag(ctx context.Context, id string) error {
	if err := s.Refs.DeleteSubjectTag(ctx, id); errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}

func (s *ReferenceService) ListTimezones(ctx context.Context) ([]entity.Timezone, error) {
	return s.Refs.ListTimezones(ctx)
}

func (s *ReferenceService) CreateTimezone(ctx context.Context, name, utcOffset string) (*entity.Timezone, error) {
	return s.Refs.CreateTimezone(ctx, strings.TrimSpace(name), strings.TrimSpace(utcOffset))
}

func (s *ReferenceService) UpdateTimezone(ctx context.Context, id, name, utcOffset string) (*entity.Timezone, error) {
	t, err := s.Refs.UpdateTimezone(ctx, id, strings.TrimSpace(name), strings.TrimSpace(utcOffset))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *ReferenceService) DeleteTimezone(ctx context.Context, id string) error {
	if err := s.Refs.DeleteTimezone(ctx, id); errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}

func (s *ReferenceService) ListLanguages(ctx context.Context) ([]entity.Language, error) {
	return s.Refs.ListLanguages(ctx)
}

func (s *ReferenceService) CreateLanguage(ctx context.Context, name, nativeName string) (*entity.Language, error) {
	return s.Refs.CreateLanguage(ctx, strings.TrimSpace(name), strings.TrimSpace(nativeName))
}

func (s *ReferenceService) UpdateLanguage(ctx context.Context, id, name, nativeName string) (*entity.Language, error) {
	l, err := s.Refs.UpdateLanguage(ctx, id, strings.TrimSpace(name), strings.TrimSpace(nativeName))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return l, err
}

func (s *ReferenceService) DeleteLanguage(ctx context.Context, id string) error {
	if err := s.Refs.DeleteLanguage(ctx, id); errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}
