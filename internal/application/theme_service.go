package application

import (
	"context"

	"github.com/Rafid41/LMS/internal/domain/entity"
	repo "github.com/Rafid41/LMS/internal/domain/repository"
)

// ThemeService reads and writes the per-user UI theme. First read
// creates the row with the light default.
type ThemeService struct {
	Themes repo.ThemeRepository
}

func NewThemeService(themes repo.ThemeRepository) *ThemeService {
	return &ThemeService{Themes: themes}
}

func (s *ThemeService) Get(ctx context.Context, userID string) (entity.Theme, error) {
	p, err := s.Themes.GetOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Theme, nil
}

func (s *ThemeService) Set(ctx context.Context, userID string, theme entity.Theme) error {
	return s.Themes.Set(ctx, userID, theme)
}
