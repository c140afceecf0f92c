package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Rafid41/LMS/internal/application"
	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/pkg/response"
	"github.com/Rafid41/LMS/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type updateCommonRequest struct {
	FullName *string `json:"full_name"`
}

type updateLearnerRequest struct {
	FullName  *string   `form:"full_name" json:"full_name"`
	Interests *[]string `form:"interests" json:"interests"`
}

type updateInstructorRequest struct {
	FullName          *string   `form:"full_name" json:"full_name"`
	Designation       *string   `form:"designation" json:"designation"`
	ShortBio          *string   `form:"short_bio" json:"short_bio"`
	FullBio           *string   `form:"full_bio" json:"full_bio"`
	TeachingLanguages *[]string `form:"teaching_languages" json:"teaching_languages"`
	Organization      *string   `form:"organization" json:"organization"`
	YearsOfExperience *float64  `form:"years_of_experience" json:"years_of_experience"`
}

func commonJSON(v *application.CommonView) gin.H {
	return gin.H{
		"user_id":         v.User.ID,
		"email":           v.User.Email,
		"username":        v.User.Username,
		"role":            v.Role,
		"full_name":       v.Common.FullName,
		"profile_picture": v.Common.AvatarURL,
	}
}

func learnerJSON(v *application.LearnerView) gin.H {
	return gin.H{
		"user_id":           v.User.ID,
		"email":             v.User.Email,
		"username":          v.User.Username,
		"full_name":         v.Common.FullName,
		"profile_picture":   v.Common.AvatarURL,
		"interests":         v.Learner.Interests,
		"total_xp":          v.Learner.TotalXP,
		"level":             v.Learner.Level,
		"badges":            v.Learner.Badges,
		"streak_days":       v.Learner.StreakDays,
		"longest_streak":    v.Learner.LongestStreak,
		"courses_enrolled":  v.Learner.CoursesEnrolled,
		"courses_completed": v.Learner.CoursesCompleted,
		"quizzes_attempted": v.Learner.QuizzesAttempted,
		"quizzes_passed":    v.Learner.QuizzesPassed,
	}
}

func instructorJSON(v *application.InstructorView) gin.H {
	return gin.H{
		"user_id":             v.User.ID,
		"email":               v.User.Email,
		"username":            v.User.Username,
		"full_name":           v.Common.FullName,
		"profile_picture":     v.Common.AvatarURL,
		"designation":         v.Instructor.Designation,
		"short_bio":           v.Instructor.ShortBio,
		"full_bio":            v.Instructor.FullBio,
		"teaching_languages":  v.Instructor.TeachingLanguages,
		"organization":        v.Instructor.Organization,
		"years_of_experience": v.Instructor.YearsOfExperience,
		"total_courses":       v.Instructor.TotalCourses,
		"total_students":      v.Instructor.TotalStudents,
		"average_rating":      v.Instructor.AverageRating,
		"is_approved":         v.Instructor.IsApproved,
		"verified_badge":      v.Instructor.VerifiedBadge,
	}
}

func (h *ProfileHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, application.ErrNotFound) {
		response.Error[any](c, http.StatusNotFound, "profile not found", nil)
		return
	}
	h.Logger.WithError(err).WithField("path", c.FullPath()).Error("profile request failed")
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}

func (h *ProfileHandler) GetCommon(c *gin.Context) {
	v, err := h.Svc.GetCommon(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, commonJSON(v), "profile", nil)
}

func (h *ProfileHandler) UpdateCommon(c *gin.Context) {
	var req updateCommonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.UpdateCommon(c.Request.Context(), c.GetString("userID"), req.FullName)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, commonJSON(v), "profile updated", nil)
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	v, err := h.Svc.UploadPhoto(c.Request.Context(), c.GetString("userID"), fh)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, commonJSON(v), "photo uploaded", nil)
}

func (h *ProfileHandler) GetLearner(c *gin.Context) {
	v, err := h.Svc.GetLearner(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, learnerJSON(v), "learner profile", nil)
}

func (h *ProfileHandler) UpdateLearner(c *gin.Context) {
	var req updateLearnerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateLearnerInput{FullName: req.FullName, Interests: req.Interests}
	if fh, err := c.FormFile("profile_picture"); err == nil {
		in.Avatar = fh
	}

	v, err := h.Svc.UpdateLearner(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, learnerJSON(v), "learner profile updated", nil)
}

func (h *ProfileHandler) GetInstructor(c *gin.Context) {
	v, err := h.Svc.GetInstructor(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, instructorJSON(v), "instructor profile", nil)
}

func (h *ProfileHandler) UpdateInstructor(c *gin.Context) {
	var req updateInstructorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateInstructorInput{
		FullName:          req.FullName,
		Designation:       req.Designation,
		ShortBio:          req.ShortBio,
		FullBio:           req.FullBio,
		TeachingLanguages: req.TeachingLanguages,
		Organization:      req.Organization,
		YearsOfExperience: req.YearsOfExperience,
	}
	if fh, err := c.FormFile("profile_picture"); err == nil {
		in.Avatar = fh
	}

	v, err := h.Svc.UpdateInstructor(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, instructorJSON(v), "instructor profile updated", nil)
}

type setThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

type ThemeHandler struct {
	Svc    *application.ThemeService
	Logger *logrus.Logger
}

func NewThemeHandler(svc *application.ThemeService, logger *logrus.Logger) *ThemeHandler {
	return &ThemeHandler{Svc: svc, Logger: logger}
}

func (h *ThemeHandler) Get(c *gin.Context) {
	theme, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.WithError(err).Error("theme lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"theme": theme}, "theme preference", nil)
}

func (h *ThemeHandler) Set(c *gin.Context) {
	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Set(c.Request.Context(), c.GetString("userID"), entity.Theme(req.Theme)); err != nil {
		h.Logger.WithError(err).Error("theme update failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"theme": req.Theme}, "theme updated", nil)
}
