package application

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafid41/LMS/config"
	"github.com/Rafid41/LMS/internal/domain/entity"
	repo "github.com/Rafid41/LMS/internal/domain/repository"
)

type fakeCommon struct {
	rows map[string]*entity.CommonProfile
}

func (f *fakeCommon) GetOrCreate(_ context.Context, userID, defaultName string) (*entity.CommonProfile, error) {
	if p, ok := f.rows[userID]; ok {
		return p, nil
	}
	p := &entity.CommonProfile{UserID: userID, FullName: defaultName}
	f.rows[userID] = p
	return p, nil
}

func (f *fakeCommon) Update(_ context.Context, p *entity.CommonProfile) error {
	f.rows[p.UserID] = p
	return nil
}

type fakeLearners struct {
	rows map[string]*entity.LearnerProfile
}

func (f *fakeLearners) GetOrCreate(_ context.Context, userID string) (*entity.LearnerProfile, error) {
	if p, ok := f.rows[userID]; ok {
		return p, nil
	}
	p := &entity.LearnerProfile{UserID: userID, Level: 1}
	f.rows[userID] = p
	return p, nil
}

func (f *fakeLearners) Update(_ context.Context, p *entity.LearnerProfile) error {
	f.rows[p.UserID] = p
	return nil
}

type fakeInstructors struct {
	rows map[string]*entity.InstructorProfile
}

func (f *fakeInstructors) GetOrCreate(_ context.Context, userID string) (*entity.InstructorProfile, error) {
	if p, ok := f.rows[userID]; ok {
		return p, nil
	}
	p := &entity.InstructorProfile{UserID: userID}
	f.rows[userID] = p
	return p, nil
}

func (f *fakeInstructors) Update(_ context.Context, p *entity.InstructorProfile) error {
	f.rows[p.UserID] = p
	return nil
}

func newProfileService(t *testing.T) (*ProfileService, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewProfileService(
		&fakeUsers{store},
		&fakeCommon{rows: map[string]*entity.CommonProfile{}},
		&fakeLearners{rows: map[string]*entity.LearnerProfile{}},
		&fakeInstructors{rows: map[string]*entity.InstructorProfile{}},
		nil, nil, quietLogger(),
		&config.Config{AppName: "lms-backend"},
	)
	return svc, store
}

func addUser(store *memStore, id, email string, role entity.Role) {
	store.users[id] = &entity.User{ID: id, Email: email, Username: "u-" + id, IsActive: true}
	store.roles[id] = role
}

func TestGetLearnerDefaultsFullNameFromEmail(t *testing.T) {
	svc, store := newProfileService(t)
	addUser(store, "u1", "alice.smith@example.com", entity.RoleStudent)

	v, err := svc.GetLearner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice.smith", v.Common.FullName)
	assert.Equal(t, 1, v.Learner.Level)
	assert.Empty(t, v.Learner.Interests)
}

func TestGetLearnerUnknownUser(t *testing.T) {
	svc, _ := newProfileService(t)
	_, err := svc.GetLearner(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLearnerProfile(t *testing.T) {
	svc, store := newProfileService(t)
	addUser(store, "u1", "alice@example.com", entity.RoleStudent)

	name := "Alice Smith"
	interests := []string{"tag-1", "tag-2"}
	v, err := svc.UpdateLearner(context.Background(), "u1", UpdateLearnerInput{
		FullName:  &name,
		Interests: &interests,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", v.Common.FullName)
	assert.Equal(t, interests, v.Learner.Interests)

	// partial update: nil fields stay untouched
	v, err = svc.UpdateLearner(context.Background(), "u1", UpdateLearnerInput{})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", v.Common.FullName)
	assert.Equal(t, interests, v.Learner.Interests)
}

func TestUpdateLearnerSurvivesMissingStorage(t *testing.T) {
	svc, store := newProfileService(t)
	addUser(store, "u1", "alice@example.com", entity.RoleStudent)

	// GCS client is nil; the upload is skipped but the update succeeds
	v, err := svc.UpdateLearner(context.Background(), "u1", UpdateLearnerInput{
		Avatar: &multipart.FileHeader{Filename: "me.png"},
	})
	require.NoError(t, err)
	assert.Empty(t, v.Common.AvatarURL)
}

func TestCommonProfileReadAndUpdate(t *testing.T) {
	svc, store := newProfileService(t)
	addUser(store, "u1", "alice@example.com", entity.RoleStudent)

	v, err := svc.GetCommon(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", v.Common.FullName)
	assert.Equal(t, entity.RoleStudent, v.Role)

	name := "Alice Smith"
	v, err = svc.UpdateCommon(context.Background(), "u1", &name)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", v.Common.FullName)
}

func TestUploadPhotoRequiresStorage(t *testing.T) {
	svc, store := newProfileService(t)
	addUser(store, "u1", "alice@example.com", entity.RoleStudent)

	_, err := svc.UploadPhoto(context.Background(), "u1", &multipart.FileHeader{Filename: "me.png"})
	assert.Error(t, err)
}

func TestUpdateInstructorProfile(t *testing.T) {
	svc, store := newProfileService(t)
	addUser(store, "u2", "bob@example.com", entity.RoleTeacher)

	designation := "Senior Lecturer"
	years := 7.5
	langs := []string{"English", "Bengali"}
	v, err := svc.UpdateInstructor(context.Background(), "u2", UpdateInstructorInput{
		Designation:       &designation,
		YearsOfExperience: &years,
		TeachingLanguages: &langs,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Lecturer", v.Instructor.Designation)
	assert.Equal(t, 7.5, v.Instructor.YearsOfExperience)
	assert.Equal(t, langs, v.Instructor.TeachingLanguages)

	// approval flags are admin-owned and not writable here
	assert.False(t, v.Instructor.IsApproved)
	assert.False(t, v.Instructor.VerifiedBadge)
}

func TestThemeService(t *testing.T) {
	themes := &fakeThemes{rows: map[string]*entity.ThemePreference{}}
	svc := NewThemeService(themes)

	theme, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeLight, theme)

	require.NoError(t, svc.Set(context.Background(), "u1", entity.ThemeDark))
	theme, err = svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, theme)
}

type fakeThemes struct {
	rows map[string]*entity.ThemePreference
}

func (f *fakeThemes) GetOrCreate(_ context.Context, userID string) (*entity.ThemePreference, error) {
	if p, ok := f.rows[userID]; ok {
		return p, nil
	}
	p := &entity.ThemePreference{UserID: userID, Theme: entity.ThemeLight}
	f.rows[userID] = p
	return p, nil
}

func (f *fakeThemes) Set(_ context.Context, userID string, theme entity.Theme) error {
	f.rows[userID] = &entity.ThemePreference{UserID: userID, Theme: theme}
	return nil
}

var _ repo.ThemeRepository = (*fakeThemes)(nil)
