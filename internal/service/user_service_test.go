package service

import (
	"regexp"
	"testing"

	"social-network-backend/config"
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockOTPStore struct {
	mock.Mock
}

func (m *MockOTPStore) SetOTP(email, code string) error {
	args := m.Called(email, code)
	return args.Error(0)
}

func (m *MockOTPStore) GetOTP(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockOTPStore) DeleteOTP(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockOTPStore) BlacklistToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockOTPStore) IsTokenBlacklisted(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

type MockOTPMailer struct {
	mock.Mock
}

func (m *MockOTPMailer) SendOTPEmail(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

type stubVerifier struct {
	email    string
	verified bool
	err      error
}

func (v *stubVerifier) VerifyToken(idToken string) (string, bool, error) {
	return v.email, v.verified, v.err
}

func newUserService() (*UserService, *MockUserRepository, *MockOTPStore, *MockOTPMailer) {
	userRepo := new(MockUserRepository)
	store := new(MockOTPStore)
	mailer := new(MockOTPMailer)
	svc := NewUserService(userRepo, store, mailer, map[string]TokenVerifier{})
	return svc, userRepo, store, mailer
}

func setDebug(t *testing.T, debug bool) {
	t.Helper()
	prev := config.AppConfig.Debug
	config.AppConfig.Debug = debug
	t.Cleanup(func() { config.AppConfig.Debug = prev })
}

func TestSendOTPDebugFixedCode(t *testing.T) {
	setDebug(t, true)
	svc, userRepo, store, mailer := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com", Username: "alice"}
	userRepo.On("GetOrCreateByEmail", "alice@example.com", "alice").Return(user, true, nil)
	// 调试模式下验证码固定，数据填充脚本依赖这个值
	store.On("SetOTP", "alice@example.com", "000000").Return(nil)
	mailer.On("SendOTPEmail", "alice@example.com", "000000").Return(nil)

	err := svc.SendOTP("Alice@Example.com")

	assert.NoError(t, err)
	store.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSendOTPRandomCode(t *testing.T) {
	setDebug(t, false)
	svc, userRepo, store, mailer := newUserService()

	sixDigits := regexp.MustCompile(`^\d{6}$`)
	user := &model.User{ID: 1, Email: "alice@example.com", Username: "alice"}
	userRepo.On("GetOrCreateByEmail", "alice@example.com", "alice").Return(user, false, nil)
	store.On("SetOTP", "alice@example.com", mock.MatchedBy(func(code string) bool {
		return sixDigits.MatchString(code)
	})).Return(nil)
	mailer.On("SendOTPEmail", "alice@example.com", mock.AnythingOfType("string")).Return(nil)

	err := svc.SendOTP("alice@example.com")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, _, store, _ := newUserService()

	store.On("GetOTP", "alice@example.com").Return("123456", nil)

	err := svc.VerifyOTP("alice@example.com", "654321")

	assert.True(t, errors.Is(err, errors.ErrInvalidOTP))
}

func TestVerifyOTPSuccess(t *testing.T) {
	svc, userRepo, store, _ := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com"}
	store.On("GetOTP", "alice@example.com").Return("123456", nil)
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)
	userRepo.On("Update", user).Return(nil)
	store.On("DeleteOTP", "alice@example.com").Return(nil)

	err := svc.VerifyOTP("alice@example.com", "123456")

	assert.NoError(t, err)
	assert.True(t, user.EmailVerified)
	store.AssertExpectations(t)
}

func TestSetCredentialsRequiresVerifiedEmail(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com"}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)

	_, err := svc.SetCredentials("alice@example.com", "alice", "password123")

	assert.True(t, errors.Is(err, errors.ErrEmailNotVerified))
}

func TestSetCredentialsWeakPassword(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com", EmailVerified: true}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)

	_, err := svc.SetCredentials("alice@example.com", "alice", "short")

	assert.True(t, errors.Is(err, errors.ErrWeakPassword))
}

func TestSetCredentialsUsernameTaken(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com", EmailVerified: true}
	other := &model.User{ID: 2, Username: "alice"}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)
	userRepo.On("FindByUsername", "alice").Return(other, nil)

	_, err := svc.SetCredentials("alice@example.com", "alice", "password123")

	assert.True(t, errors.Is(err, errors.ErrUserExists))
}

func TestSetCredentialsUsernameImmutable(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com", Username: "alice",
		EmailVerified: true, UsernameSet: true}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)

	// 用户名只能设置一次
	_, err := svc.SetCredentials("alice@example.com", "bob", "password123")

	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestLoginUnverifiedEmail(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	user := &model.User{ID: 1, Email: "alice@example.com"}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)

	_, _, err := svc.Login("alice@example.com", "password123")

	assert.True(t, errors.Is(err, errors.ErrEmailNotVerified))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{ID: 1, Username: "alice", EmailVerified: true, PasswordHash: string(hash)}
	userRepo.On("FindByUsername", "alice").Return(user, nil)

	_, _, err := svc.Login("alice", "wrong-password")

	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLoginSuccess(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	svc, userRepo, _, _ := newUserService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{ID: 1, Email: "alice@example.com", EmailVerified: true, PasswordHash: string(hash)}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)

	token, got, err := svc.Login("alice@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user, got)
}

func TestOAuthLoginUnsupportedProvider(t *testing.T) {
	svc, _, _, _ := newUserService()

	_, _, _, err := svc.OAuthLogin("github", "token")

	assert.True(t, errors.Is(err, errors.ErrUnsupportedProvider))
}

func TestOAuthLoginCreatesUser(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, new(MockOTPStore), new(MockOTPMailer), map[string]TokenVerifier{
		"google": &stubVerifier{email: "alice@example.com", verified: true},
	})

	user := &model.User{ID: 1, Email: "alice@example.com", Username: "alice"}
	userRepo.On("GetOrCreateByEmail", "alice@example.com", "alice").Return(user, true, nil)
	userRepo.On("Update", user).Return(nil)

	token, got, created, err := svc.OAuthLogin("google", "id-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, created)
	assert.True(t, got.EmailVerified)
	assert.True(t, got.IsOAuthUser)
}
