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

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,strongpwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=student teacher"`
}

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	OTP             string `json:"otp" binding:"required,len=6"`
	NewPassword     string `json:"new_password" binding:"required,strongpwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// authStatus maps service errors onto HTTP statuses.
func authStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrDuplicateEmail):
		return http.StatusBadRequest, "an account with this email already exists"
	case errors.Is(err, application.ErrPasswordMismatch):
		return http.StatusBadRequest, "passwords do not match"
	case errors.Is(err, application.ErrWeakPassword):
		return http.StatusBadRequest, "password does not meet the strength requirements"
	case errors.Is(err, application.ErrInvalidCode):
		return http.StatusBadRequest, "invalid verification code"
	case errors.Is(err, application.ErrCodeExpired):
		return http.StatusBadRequest, "verification code has expired"
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, "no matching registration or account found"
	case errors.Is(err, application.ErrResendCooldown):
		return http.StatusTooManyRequests, "please wait before requesting another code"
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, application.ErrDeliveryFailure):
		return http.StatusInternalServerError, "could not deliver the verification email"
	case errors.Is(err, application.ErrMissingRole):
		return http.StatusInternalServerError, "account is missing a role assignment"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	status, msg := authStatus(err)
	if status >= http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("auth request failed")
	}
	response.Error[any](c, status, msg, nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid role", nil)
		return
	}

	err = h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.ConfirmPassword,
		Role:            role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "verification code sent", nil)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, role, err := h.Svc.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user_id":  u.ID,
		"email":    u.Email,
		"username": u.Username,
		"role":     role,
	}, "account created", nil)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "verification code resent", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":   res.Token,
		"user_id": res.UserID,
		"email":   res.Email,
		"role":    res.Role,
	}, "login successful", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "password reset code sent", nil)
}

func (h *AuthHandler) VerifyResetOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verified": true}, "code verified", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}

func (h *AuthHandler) ResendForgotPasswordOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResendResetOTP(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "password reset code resent", nil)
}
