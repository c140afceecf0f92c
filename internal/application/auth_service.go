package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Rafid41/LMS/config"
	"github.com/Rafid41/LMS/internal/domain/entity"
	repo "github.com/Rafid41/LMS/internal/domain/repository"
	"github.com/Rafid41/LMS/pkg/helpers"
	"github.com/Rafid41/LMS/pkg/mailer"
	tpl "github.com/Rafid41/LMS/pkg/mailer/templates"
)

// AuthService owns the registration, login and password-reset flows.
// OTP codes are persisted before the send attempt, so a mail delivery
// failure still leaves a valid code recoverable through resend.
type AuthService struct {
	Users   repo.UserRepository
	Pending repo.PendingRegistrationRepository
	Tokens  repo.TokenRepository
	Mailer  mailer.Sender
	Pub     *helpers.RabbitPublisher
	Redis   *redis.Client
	Search  *SearchIndexer
	Logger  *logrus.Logger
	Cfg     *config.Config

	now func() time.Time
}

func NewAuthService(users repo.UserRepository, pending repo.PendingRegistrationRepository,
	tokens repo.TokenRepository, sender mailer.Sender, pub *helpers.RabbitPublisher,
	rdb *redis.Client, search *SearchIndexer, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:   users,
		Pending: pending,
		Tokens:  tokens,
		Mailer:  sender,
		Pub:     pub,
		Redis:   rdb,
		Search:  search,
		Logger:  logger,
		Cfg:     cfg,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Role            entity.Role
}

// Register validates credentials, stores a pending registration with a
// fresh OTP (overwriting any earlier attempt for the same email) and
// mails the code.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEmail
	}
	if in.Password != in.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if err := CheckPasswordStrength(in.Password); err != nil {
		return err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	otp, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}

	p := &entity.PendingRegistration{
		Email:        email,
		Password:     hash,
		Role:         in.Role,
		OTP:          otp,
		OTPCreatedAt: s.now(),
	}
	if err := s.Pending.Upsert(ctx, p); err != nil {
		return err
	}

	return s.sendOTP(ctx, tpl.VerifyOTP, email, otp)
}

// VerifyOTP checks the submitted code against the pending registration
// and promotes it into a permanent account on success.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*entity.User, entity.Role, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.Pending.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if p.OTP != code {
		return nil, "", ErrInvalidCode
	}
	if s.now().Sub(p.OTPCreatedAt) > s.Cfg.OTPTTL {
		return nil, "", ErrCodeExpired
	}

	u, err := s.Users.Promote(ctx, p)
	if err != nil {
		return nil, "", err
	}

	fullName := entity.LocalPart(u.Email)
	if s.Search != nil {
		_ = s.Search.IndexAccount(ctx, u, p.Role, fullName)
	}
	s.publishWelcome(ctx, u, p.Role, fullName)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": p.Role}).Info("account promoted")
	}
	return u, p.Role, nil
}

// ResendOTP regenerates the registration code after the cooldown,
// invalidating the previous one.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.Pending.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.now().Sub(p.OTPCreatedAt) < s.Cfg.ResendCooldown {
		return ErrResendCooldown
	}

	otp, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Pending.UpdateOTP(ctx, email, otp, s.now()); err != nil {
		return err
	}
	return s.sendOTP(ctx, tpl.VerifyOTP, email, otp)
}

type LoginResult struct {
	Token  string
	UserID string
	Email  string
	Role   entity.Role
}

// Login authenticates and returns the account's opaque bearer token,
// creating it on first login and reusing it afterwards. A missing role
// record is a data-integrity error, not a default.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	role, err := s.Users.RoleOf(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			if s.Logger != nil {
				s.Logger.WithField("user_id", u.ID).Error("account missing role assignment")
			}
			return nil, ErrMissingRole
		}
		return nil, err
	}

	t, err := s.Tokens.GetOrCreate(ctx, u.ID, helpers.GenTokenKey)
	if err != nil {
		return nil, err
	}
	s.cacheToken(ctx, t.Key, u, role)

	return &LoginResult{Token: t.Key, UserID: u.ID, Email: u.Email, Role: role}, nil
}

// RequestPasswordReset issues a reset code directly on the account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	otp, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Users.SetResetOTP(ctx, u.ID, otp, s.now()); err != nil {
		return err
	}
	return s.sendOTP(ctx, tpl.ResetOTP, u.Email, otp)
}

// VerifyResetOTP validates the reset code without consuming it; only
// ResetPassword clears the stored code.
func (s *AuthService) VerifyResetOTP(ctx context.Context, email, code string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.checkResetCode(u, code)
}

// ResetPassword re-validates code, expiry and password strength, then
// stores the new hash and clears the OTP fields.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.checkResetCode(u, code); err != nil {
		return err
	}
	if err := CheckPasswordStrength(newPassword); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePasswordClearOTP(ctx, u.ID, hash)
}

// ResendResetOTP mirrors ResendOTP for the reset flow, with the same
// cooldown contract.
func (s *AuthService) ResendResetOTP(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if u.OTPCreatedAt != nil && s.now().Sub(*u.OTPCreatedAt) < s.Cfg.ResendCooldown {
		return ErrResendCooldown
	}

	otp, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Users.SetResetOTP(ctx, u.ID, otp, s.now()); err != nil {
		return err
	}
	return s.sendOTP(ctx, tpl.ResetOTP, u.Email, otp)
}

func (s *AuthService) checkResetCode(u *entity.User, code string) error {
	if u.OTP == nil || *u.OTP != code {
		return ErrInvalidCode
	}
	if u.OTPCreatedAt != nil && s.now().Sub(*u.OTPCreatedAt) > s.Cfg.OTPTTL {
		return ErrCodeExpired
	}
	return nil
}

// tokenSession is the cached resolution of a bearer token.
type tokenSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func tokenCacheKey(key string) string { return "auth:token:" + key }

func (s *AuthService) cacheToken(ctx context.Context, key string, u *entity.User, role entity.Role) {
	if s.Redis == nil {
		return
	}
	sess := tokenSession{UserID: u.ID, Email: u.Email, Role: role.String()}
	if err := helpers.RedisSetJSON(ctx, s.Redis, tokenCacheKey(key), sess, s.Cfg.TokenCacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("token cache write failed")
	}
}

// ResolveToken maps a bearer key to its account and role, consulting the
// Redis cache before Postgres. Used by the auth middleware.
func (s *AuthService) ResolveToken(ctx context.Context, key string) (*entity.User, entity.Role, error) {
	if s.Redis != nil {
		var sess tokenSession
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, tokenCacheKey(key), &sess); err == nil && ok {
			return &entity.User{ID: sess.UserID, Email: sess.Email}, entity.Role(sess.Role), nil
		}
	}

	t, err := s.Tokens.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	u, err := s.Users.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	role, err := s.Users.RoleOf(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrMissingRole
		}
		return nil, "", err
	}
	s.cacheToken(ctx, key, u, role)
	return u, role, nil
}

func (s *AuthService) sendOTP(ctx context.Context, kind, email, code string) error {
	if s.Cfg != nil && !s.Cfg.MailSendEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("mail sending disabled; skipping otp email")
		}
		return nil
	}

	var data tpl.OTPData
	if kind == tpl.ResetOTP {
		data = tpl.NewResetOTPData(s.Cfg.AppName, email, code, s.Cfg.OTPTTL)
	} else {
		data = tpl.NewVerifyOTPData(s.Cfg.AppName, email, code, s.Cfg.OTPTTL)
	}
	subject, text, html, err := tpl.Render(kind, data)
	if err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}
	if err := s.Mailer.Send(ctx, email, subject, text, html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("otp email send failed")
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return nil
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User, role entity.Role, fullName string) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"AppName":  s.Cfg.AppName,
			"Email":    u.Email,
			"FullName": fullName,
			"Role":     role.String(),
			"Username": u.Username,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("failed to publish welcome email job")
	}
}
