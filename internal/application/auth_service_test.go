package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafid41/LMS/config"
	"github.com/Rafid41/LMS/internal/domain/entity"
	repo "github.com/Rafid41/LMS/internal/domain/repository"
	"github.com/Rafid41/LMS/pkg/helpers"
)

// --- in-memory fakes ---

type memStore struct {
	users   map[string]*entity.User
	roles   map[string]entity.Role
	pending map[string]*entity.PendingRegistration
	tokens  map[string]*entity.AuthToken
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*entity.User{},
		roles:   map[string]entity.Role{},
		pending: map[string]*entity.PendingRegistration{},
		tokens:  map[string]*entity.AuthToken{},
	}
}

type fakeUsers struct{ s *memStore }

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.s.users[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) RoleOf(_ context.Context, userID string) (entity.Role, error) {
	if r, ok := f.s.roles[userID]; ok {
		return r, nil
	}
	return "", repo.ErrNotFound
}

func (f *fakeUsers) Promote(_ context.Context, p *entity.PendingRegistration) (*entity.User, error) {
	f.s.nextID++
	u := &entity.User{
		ID:       fmt.Sprintf("user-%d", f.s.nextID),
		Email:    p.Email,
		Username: fmt.Sprintf("u%d", f.s.nextID),
		Password: p.Password,
		IsActive: true,
	}
	f.s.users[u.ID] = u
	f.s.roles[u.ID] = p.Role
	delete(f.s.pending, p.Email)
	return u, nil
}

func (f *fakeUsers) SetResetOTP(_ context.Context, userID, otp string, issuedAt time.Time) error {
	u, ok := f.s.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.OTP = &otp
	t := issuedAt
	u.OTPCreatedAt = &t
	return nil
}

func (f *fakeUsers) UpdatePasswordClearOTP(_ context.Context, userID, passwordHash string) error {
	u, ok := f.s.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = passwordHash
	u.OTP = nil
	u.OTPCreatedAt = nil
	return nil
}

type fakePending struct{ s *memStore }

func (f *fakePending) Upsert(_ context.Context, p *entity.PendingRegistration) error {
	cp := *p
	f.s.pending[p.Email] = &cp
	return nil
}

func (f *fakePending) GetByEmail(_ context.Context, email string) (*entity.PendingRegistration, error) {
	if p, ok := f.s.pending[email]; ok {
		return p, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakePending) UpdateOTP(_ context.Context, email, otp string, issuedAt time.Time) error {
	p, ok := f.s.pending[email]
	if !ok {
		return repo.ErrNotFound
	}
	p.OTP = otp
	p.OTPCreatedAt = issuedAt
	return nil
}

type fakeTokens struct{ s *memStore }

func (f *fakeTokens) GetOrCreate(_ context.Context, userID string, gen func() (string, error)) (*entity.AuthToken, error) {
	if t, ok := f.s.tokens[userID]; ok {
		return t, nil
	}
	key, err := gen()
	if err != nil {
		return nil, err
	}
	t := &entity.AuthToken{UserID: userID, Key: key}
	f.s.tokens[userID] = t
	return t, nil
}

func (f *fakeTokens) GetByKey(_ context.Context, key string) (*entity.AuthToken, error) {
	for _, t := range f.s.tokens {
		if t.Key == key {
			return t, nil
		}
	}
	return nil, repo.ErrNotFound
}

type sentMail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type fakeSender struct {
	sent []sentMail
	fail bool
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(t *testing.T) (*AuthService, *memStore, *fakeSender, *time.Time) {
	t.Helper()
	store := newMemStore()
	sender := &fakeSender{}
	cfg := &config.Config{
		AppName:         "lms-backend",
		OTPTTL:          10 * time.Minute,
		ResendCooldown:  time.Minute,
		TokenCacheTTL:   24 * time.Hour,
		MailSendEnabled: true,
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAuthService(&fakeUsers{store}, &fakePending{store}, &fakeTokens{store},
		sender, nil, nil, nil, quietLogger(), cfg)
	svc.now = func() time.Time { return now }
	return svc, store, sender, &now
}

const strongPassword = "Abc@12345"

func register(t *testing.T, svc *AuthService, email string, role entity.Role) {
	t.Helper()
	err := svc.Register(context.Background(), RegisterInput{
		Email:           email,
		Password:        strongPassword,
		PasswordConfirm: strongPassword,
		Role:            role,
	})
	require.NoError(t, err)
}

// verified creates a fully promoted account and returns it.
func verified(t *testing.T, svc *AuthService, store *memStore, email string, role entity.Role) *entity.User {
	t.Helper()
	register(t, svc, email, role)
	code := store.pending[email].OTP
	u, _, err := svc.VerifyOTP(context.Background(), email, code)
	require.NoError(t, err)
	return u
}

// --- registration ---

func TestRegisterStoresPendingAndSendsCode(t *testing.T) {
	svc, store, sender, _ := newTestService(t)
	register(t, svc, "alice@example.com", entity.RoleStudent)

	p := store.pending["alice@example.com"]
	require.NotNil(t, p)
	assert.Len(t, p.OTP, 6)
	assert.Equal(t, entity.RoleStudent, p.Role)
	assert.NotEqual(t, strongPassword, p.Password, "password must be stored hashed")
	assert.True(t, helpers.CompareHashAndPassword(p.Password, strongPassword))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Text, p.OTP)
	assert.Contains(t, sender.sent[0].HTML, p.OTP)
}

func TestRegisterRejectsExistingAccount(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	err := svc.Register(context.Background(), RegisterInput{
		Email:           "Alice@Example.com",
		Password:        strongPassword,
		PasswordConfirm: strongPassword,
		Role:            entity.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	err := svc.Register(context.Background(), RegisterInput{
		Email:           "alice@example.com",
		Password:        strongPassword,
		PasswordConfirm: "Other@12345",
		Role:            entity.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	for _, pwd := range []string{"abc12345", "ABC@DEFG", "Abcdefgh", "Ab@1", "abc@1234"} {
		err := svc.Register(context.Background(), RegisterInput{
			Email:           "alice@example.com",
			Password:        pwd,
			PasswordConfirm: pwd,
			Role:            entity.RoleStudent,
		})
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q should be rejected", pwd)
	}
	assert.Empty(t, store.pending)
}

func TestRegisterReplacesPreviousAttempt(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	register(t, svc, "alice@example.com", entity.RoleStudent)
	first := store.pending["alice@example.com"].OTP

	register(t, svc, "alice@example.com", entity.RoleTeacher)
	p := store.pending["alice@example.com"]
	assert.NotEqual(t, first, p.OTP)
	assert.Equal(t, entity.RoleTeacher, p.Role)

	// the overwritten code no longer verifies
	_, _, err := svc.VerifyOTP(context.Background(), "alice@example.com", first)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestRegisterDeliveryFailureKeepsPending(t *testing.T) {
	svc, store, sender, _ := newTestService(t)
	sender.fail = true

	err := svc.Register(context.Background(), RegisterInput{
		Email:           "alice@example.com",
		Password:        strongPassword,
		PasswordConfirm: strongPassword,
		Role:            entity.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrDeliveryFailure)

	// code is persisted and still verifies
	p := store.pending["alice@example.com"]
	require.NotNil(t, p)
	_, _, err = svc.VerifyOTP(context.Background(), "alice@example.com", p.OTP)
	assert.NoError(t, err)
}

// --- verification ---

func TestVerifyOTPPromotesAndDeletesPending(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	register(t, svc, "alice@example.com", entity.RoleTeacher)
	code := store.pending["alice@example.com"].OTP

	u, role, err := svc.VerifyOTP(context.Background(), "alice@example.com", code)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.RoleTeacher, role)
	assert.NotEmpty(t, u.Username)
	assert.Empty(t, store.pending)
	assert.Equal(t, entity.RoleTeacher, store.roles[u.ID])
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	register(t, svc, "alice@example.com", entity.RoleStudent)

	_, _, err := svc.VerifyOTP(context.Background(), "alice@example.com", "XXXXXX")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.NotEmpty(t, store.pending, "failed attempt must not consume the registration")
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, _, err := svc.VerifyOTP(context.Background(), "ghost@example.com", "ABC123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyOTPExpiryBoundary(t *testing.T) {
	svc, store, _, now := newTestService(t)
	register(t, svc, "alice@example.com", entity.RoleStudent)
	code := store.pending["alice@example.com"].OTP

	// exactly at the limit: still valid
	*now = now.Add(600 * time.Second)
	_, _, err := svc.VerifyOTP(context.Background(), "alice@example.com", code)
	assert.NoError(t, err)

	register(t, svc, "bob@example.com", entity.RoleStudent)
	code = store.pending["bob@example.com"].OTP
	*now = now.Add(601 * time.Second)
	_, _, err = svc.VerifyOTP(context.Background(), "bob@example.com", code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

// --- resend ---

func TestResendOTPCooldown(t *testing.T) {
	svc, store, sender, now := newTestService(t)
	register(t, svc, "alice@example.com", entity.RoleStudent)
	first := store.pending["alice@example.com"].OTP

	err := svc.ResendOTP(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrResendCooldown)

	*now = now.Add(time.Minute)
	require.NoError(t, svc.ResendOTP(context.Background(), "alice@example.com"))
	second := store.pending["alice@example.com"].OTP
	assert.NotEqual(t, first, second)
	assert.Len(t, sender.sent, 2)

	// the superseded code stops working
	_, _, err = svc.VerifyOTP(context.Background(), "alice@example.com", first)
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, _, err = svc.VerifyOTP(context.Background(), "alice@example.com", second)
	assert.NoError(t, err)
}

func TestResendOTPUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.ErrorIs(t, svc.ResendOTP(context.Background(), "ghost@example.com"), ErrNotFound)
}

// --- login ---

func TestLoginReturnsStableToken(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	u := verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	res1, err := svc.Login(context.Background(), "alice@example.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, u.ID, res1.UserID)
	assert.Equal(t, entity.RoleStudent, res1.Role)
	assert.Len(t, res1.Token, 40)

	res2, err := svc.Login(context.Background(), "alice@example.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, res1.Token, res2.Token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	_, err := svc.Login(context.Background(), "alice@example.com", "Wrong@12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@example.com", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginMissingRoleAssignment(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	u := verified(t, svc, store, "alice@example.com", entity.RoleStudent)
	delete(store.roles, u.ID)

	_, err := svc.Login(context.Background(), "alice@example.com", strongPassword)
	assert.ErrorIs(t, err, ErrMissingRole)
}

// --- password reset ---

func TestPasswordResetFlow(t *testing.T) {
	svc, store, sender, _ := newTestService(t)
	u := verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "alice@example.com"))
	require.NotNil(t, u.OTP)
	code := *u.OTP
	assert.Contains(t, sender.sent[len(sender.sent)-1].Text, code)

	assert.ErrorIs(t, svc.VerifyResetOTP(context.Background(), "alice@example.com", "WRONG1"), ErrInvalidCode)
	assert.NoError(t, svc.VerifyResetOTP(context.Background(), "alice@example.com", code))

	// verify does not consume the code
	assert.NoError(t, svc.VerifyResetOTP(context.Background(), "alice@example.com", code))

	const newPassword = "New@12345"
	require.NoError(t, svc.ResetPassword(context.Background(), "alice@example.com", code, newPassword))
	assert.Nil(t, u.OTP)
	assert.Nil(t, u.OTPCreatedAt)

	_, err := svc.Login(context.Background(), "alice@example.com", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "alice@example.com", newPassword)
	assert.NoError(t, err)

	// the cleared code cannot be replayed
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), "alice@example.com", code, "More@12345"), ErrInvalidCode)
}

func TestPasswordResetExpiredCode(t *testing.T) {
	svc, store, _, now := newTestService(t)
	u := verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "alice@example.com"))
	code := *u.OTP

	*now = now.Add(601 * time.Second)
	assert.ErrorIs(t, svc.VerifyResetOTP(context.Background(), "alice@example.com", code), ErrCodeExpired)
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), "alice@example.com", code, "New@12345"), ErrCodeExpired)
}

func TestPasswordResetWeakNewPassword(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	u := verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "alice@example.com"))
	err := svc.ResetPassword(context.Background(), "alice@example.com", *u.OTP, "weakpass")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.NotNil(t, u.OTP, "failed reset keeps the code")
}

func TestResendResetOTPCooldown(t *testing.T) {
	svc, store, _, now := newTestService(t)
	u := verified(t, svc, store, "alice@example.com", entity.RoleStudent)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "alice@example.com"))
	first := *u.OTP

	assert.ErrorIs(t, svc.ResendResetOTP(context.Background(), "alice@example.com"), ErrResendCooldown)

	*now = now.Add(time.Minute)
	require.NoError(t, svc.ResendResetOTP(context.Background(), "alice@example.com"))
	assert.NotEqual(t, first, *u.OTP)
}

func TestResetRequestUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.ErrorIs(t, svc.RequestPasswordReset(context.Background(), "ghost@example.com"), ErrNotFound)
	assert.ErrorIs(t, svc.ResendResetOTP(context.Background(), "ghost@example.com"), ErrNotFound)
}

// --- token resolution ---

func TestResolveToken(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	verified(t, svc, store, "alice@example.com", entity.RoleTeacher)

	res, err := svc.Login(context.Background(), "alice@example.com", strongPassword)
	require.NoError(t, err)

	u, role, err := svc.ResolveToken(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, u.ID)
	assert.Equal(t, entity.RoleTeacher, role)

	_, _, err = svc.ResolveToken(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
