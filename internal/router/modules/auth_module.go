package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rafid41/LMS/internal/container"
	handlers "github.com/Rafid41/LMS/internal/interface/http"
	"github.com/Rafid41/LMS/internal/interface/middleware"
)

// AuthModule owns the public registration, login and password-reset
// routes. Everything here is unauthenticated and rate-limited per IP.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Resolver middleware.TokenResolver
}

func NewAuthModule(h *handlers.AuthHandler, resolver middleware.TokenResolver) *AuthModule {
	return &AuthModule{Handler: h, Resolver: resolver}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	otpIssueLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())
	otpVerifyLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath())

	auth := rg.Group("/auth")
	{
		auth.POST("/register", otpIssueLimiter, m.Handler.Register)
		auth.POST("/verify-otp", otpVerifyLimiter, m.Handler.VerifyOTP)
		auth.POST("/resend-otp", otpIssueLimiter, m.Handler.ResendOTP)
		auth.POST("/login", loginLimiter, m.Handler.Login)
		auth.POST("/forgot-password", otpIssueLimiter, m.Handler.ForgotPassword)
		auth.POST("/verify-reset-otp", otpVerifyLimiter, m.Handler.VerifyResetOTP)
		auth.POST("/reset-password", otpVerifyLimiter, m.Handler.ResetPassword)
		auth.POST("/resend-forgot-password-otp", otpIssueLimiter, m.Handler.ResendForgotPasswordOTP)
	}
}
