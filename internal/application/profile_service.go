package application

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/Rafid41/LMS/config"
	"github.com/Rafid41/LMS/internal/domain/entity"
	repo "github.com/Rafid41/LMS/internal/domain/repository"
	"github.com/Rafid41/LMS/pkg/helpers"
)

// ProfileService serves the common, learner and instructor profile
// surfaces. Avatar uploads go to GCS but are best-effort: a storage
// failure keeps the previous URL and the update still succeeds.
type ProfileService struct {
	Users       repo.UserRepository
	Common      repo.CommonProfileRepository
	Learners    repo.LearnerProfileRepository
	Instructors repo.InstructorProfileRepository
	GCS         *storage.Client
	Search      *SearchIndexer
	Logger      *logrus.Logger
	Cfg         *config.Config
}

func NewProfileService(users repo.UserRepository, common repo.CommonProfileRepository,
	learners repo.LearnerProfileRepository, instructors repo.InstructorProfileRepository,
	gcs *storage.Client, search *SearchIndexer, logger *logrus.Logger, cfg *config.Config) *ProfileService {
	return &ProfileService{
		Users:       users,
		Common:      common,
		Learners:    learners,
		Instructors: instructors,
		GCS:         gcs,
		Search:      search,
		Logger:      logger,
		Cfg:         cfg,
	}
}

// CommonView is the role-independent profile surface.
type CommonView struct {
	User   *entity.User
	Common *entity.CommonProfile
	Role   entity.Role
}

// LearnerView bundles everything the learner profile page renders.
type LearnerView struct {
	User    *entity.User
	Common  *entity.CommonProfile
	Learner *entity.LearnerProfile
}

type InstructorView struct {
	User       *entity.User
	Common     *entity.CommonProfile
	Instructor *entity.InstructorProfile
}

func (s *ProfileService) GetCommon(ctx context.Context, userID string) (*CommonView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	cp, err := s.Common.GetOrCreate(ctx, userID, entity.LocalPart(u.Email))
	if err != nil {
		return nil, err
	}
	role, _ := s.Users.RoleOf(ctx, userID)
	return &CommonView{User: u, Common: cp, Role: role}, nil
}

func (s *ProfileService) UpdateCommon(ctx context.Context, userID string, fullName *string) (*CommonView, error) {
	view, err := s.GetCommon(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fullName != nil {
		view.Common.FullName = strings.TrimSpace(*fullName)
	}
	if err := s.Common.Update(ctx, view.Common); err != nil {
		return nil, err
	}
	if view.Role != "" {
		s.reindex(ctx, view.User, view.Role, view.Common.FullName)
	}
	return view, nil
}

// UploadPhoto stores a new profile picture and records its URL. Unlike
// the best-effort avatar field on profile updates, a failed upload here
// is an error: storing the picture is the whole request.
func (s *ProfileService) UploadPhoto(ctx context.Context, userID string, fh *multipart.FileHeader) (*CommonView, error) {
	view, err := s.GetCommon(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.Cfg.GCSBucket == "" {
		return nil, fmt.Errorf("object storage not configured")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	objectPath := fmt.Sprintf("avatars/%s/%d-%s", userID, time.Now().UnixNano(), path.Base(fh.Filename))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Cfg.GCSBucket, objectPath, fh.Header.Get("Content-Type"), f)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	view.Common.AvatarURL = url
	if err := s.Common.Update(ctx, view.Common); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ProfileService) GetLearner(ctx context.Context, userID string) (*LearnerView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	cp, err := s.Common.GetOrCreate(ctx, userID, entity.LocalPart(u.Email))
	if err != nil {
		return nil, err
	}
	lp, err := s.Learners.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &LearnerView{User: u, Common: cp, Learner: lp}, nil
}

func (s *ProfileService) GetInstructor(ctx context.Context, userID string) (*InstructorView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	cp, err := s.Common.GetOrCreate(ctx, userID, entity.LocalPart(u.Email))
	if err != nil {
		return nil, err
	}
	ip, err := s.Instructors.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &InstructorView{User: u, Common: cp, Instructor: ip}, nil
}

type UpdateLearnerInput struct {
	FullName  *string
	Interests *[]string
	Avatar    *multipart.FileHeader
}

func (s *ProfileService) UpdateLearner(ctx context.Context, userID string, in UpdateLearnerInput) (*LearnerView, error) {
	view, err := s.GetLearner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		view.Common.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Avatar != nil {
		if url := s.uploadAvatar(ctx, userID, in.Avatar); url != "" {
			view.Common.AvatarURL = url
		}
	}
	if err := s.Common.Update(ctx, view.Common); err != nil {
		return nil, err
	}

	if in.Interests != nil {
		view.Learner.Interests = *in.Interests
		if err := s.Learners.Update(ctx, view.Learner); err != nil {
			return nil, err
		}
	}

	s.reindex(ctx, view.User, entity.RoleStudent, view.Common.FullName)
	return view, nil
}

type UpdateInstructorInput struct {
	FullName          *string
	Designation       *string
	ShortBio          *string
	FullBio           *string
	TeachingLanguages *[]string
	Organization      *string
	YearsOfExperience *float64
	Avatar            *multipart.FileHeader
}

func (s *ProfileService) UpdateInstructor(ctx context.Context, userID string, in UpdateInstructorInput) (*InstructorView, error) {
	view, err := s.GetInstructor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		view.Common.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Avatar != nil {
		if url := s.uploadAvatar(ctx, userID, in.Avatar); url != "" {
			view.Common.AvatarURL = url
		}
	}
	if err := s.Common.Update(ctx, view.Common); err != nil {
		return nil, err
	}

	p := view.Instructor
	if in.Designation != nil {
		p.Designation = strings.TrimSpace(*in.Designation)
	}
	if in.ShortBio != nil {
		p.ShortBio = *in.ShortBio
	}
	if in.FullBio != nil {
		p.FullBio = *in.FullBio
	}
	if in.TeachingLanguages != nil {
		p.TeachingLanguages = *in.TeachingLanguages
	}
	if in.Organization != nil {
		p.Organization = strings.TrimSpace(*in.Organization)
	}
	if in.YearsOfExperience != nil {
		p.YearsOfExperience = *in.YearsOfExperience
	}
	if err := s.Instructors.Update(ctx, p); err != nil {
		return nil, err
	}

	s.reindex(ctx, view.User, entity.RoleTeacher, view.Common.FullName)
	return view, nil
}

// uploadAvatar stores the file under avatars/<userID>/<ts>-<name> and
// returns the public URL, or "" when the upload could not complete.
func (s *ProfileService) uploadAvatar(ctx context.Context, userID string, fh *multipart.FileHeader) string {
	if s.GCS == nil || s.Cfg.GCSBucket == "" {
		if s.Logger != nil {
			s.Logger.Warn("avatar upload skipped: object storage not configured")
		}
		return ""
	}

	f, err := fh.Open()
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("avatar upload skipped: cannot open file")
		}
		return ""
	}
	defer f.Close()

	objectPath := fmt.Sprintf("avatars/%s/%d-%s", userID, time.Now().UnixNano(), path.Base(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	url, err := helpers.UploadObject(ctx, s.GCS, s.Cfg.GCSBucket, objectPath, contentType, f)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("avatar upload failed; keeping previous picture")
		}
		return ""
	}
	return url
}

func (s *ProfileService) reindex(ctx context.Context, u *entity.User, role entity.Role, fullName string) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexAccount(ctx, u, role, fullName); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("search reindex failed")
	}
}
