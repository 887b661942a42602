package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"social-network-backend/config"
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceInterface 定义用户服务的方法
type UserServiceInterface interface {
	SendOTP(email string) error
	VerifyOTP(email, code string) error
	SetCredentials(email, username, password string) (*model.User, error)
	Login(identifier, password string) (string, *model.User, error)
	OAuthLogin(provider, idToken string) (string, *model.User, bool, error)
	Logout(token string) error
	IsTokenBlacklisted(token string) (bool, error)
	GetUserByID(id int) (*model.User, error)
	UpdateProfile(userID int, bio string) (*model.User, error)
	UpdateAvatar(userID int, avatarURL string) (*model.User, error)
	DeleteAccount(userID int) error
	GetUsers(page, pageSize int) ([]*model.User, int, error)
	UpdateUserRole(userID int, role string) error
}

// OTPStore 保存验证码和令牌黑名单，由 Redis 缓存实现
type OTPStore interface {
	SetOTP(email, code string) error
	GetOTP(email string) (string, error)
	DeleteOTP(email string) error
	BlacklistToken(token string) error
	IsTokenBlacklisted(token string) (bool, error)
}

// OTPMailer 发送验证码邮件
type OTPMailer interface {
	SendOTPEmail(to, code string) error
}

type UserService struct {
	userRepo  interfaces.UserRepository
	cache     OTPStore
	email     OTPMailer
	verifiers map[string]TokenVerifier
}

var _ UserServiceInterface = (*UserService)(nil)

func NewUserService(userRepo interfaces.UserRepository, c OTPStore, email OTPMailer, verifiers map[string]TokenVerifier) *UserService {
	return &UserService{
		userRepo:  userRepo,
		cache:     c,
		email:     email,
		verifiers: verifiers,
	}
}

// 调试模式下验证码固定，本地联调和数据填充脚本依赖这个值
const debugOTPCode = "000000"

func generateOTP() (string, error) {
	if config.AppConfig.Debug {
		return debugOTPCode, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendOTP 注册或重新验证的入口：不存在则创建占位用户，然后发送验证码
func (s *UserService) SendOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	// 邮箱前缀作为占位用户名，正式用户名在 SetCredentials 时设置
	defaultUsername := strings.SplitN(email, "@", 2)[0]
	user, created, err := s.userRepo.GetOrCreateByEmail(email, defaultUsername)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}
	if created {
		util.Logger.Info("新用户注册", zap.String("email", email), zap.Int("user_id", user.ID))
	}

	code, err := generateOTP()
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成验证码失败", err)
	}

	if err := s.cache.SetOTP(email, code); err != nil {
		return errors.Wrap(errors.ErrCache, "保存验证码失败", err)
	}

	if err := s.email.SendOTPEmail(email, code); err != nil {
		return errors.Wrap(errors.ErrInternal, "发送验证码邮件失败", err)
	}

	return nil
}

// VerifyOTP 校验验证码并标记邮箱已验证
func (s *UserService) VerifyOTP(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	stored, err := s.cache.GetOTP(email)
	if err != nil {
		return errors.Wrap(errors.ErrCache, "读取验证码失败", err)
	}
	if stored == "" || stored != code {
		return errors.New(errors.ErrInvalidOTP, "验证码错误或已过期")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}

	if err := s.cache.DeleteOTP(email); err != nil {
		util.Logger.Warn("删除验证码失败", zap.Error(err), zap.String("email", email))
	}

	util.Logger.Info("邮箱验证成功", zap.String("email", email))
	return nil
}

// SetCredentials 设置用户名和密码。用户名只能设置一次。
func (s *UserService) SetCredentials(email, username, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	if !user.EmailVerified {
		return nil, errors.New(errors.ErrEmailNotVerified, "请先完成邮箱验证")
	}

	if len(password) < 8 {
		return nil, errors.New(errors.ErrWeakPassword, "密码长度至少为8个字符")
	}

	if user.UsernameSet {
		if username != "" && username != user.Username {
			return nil, errors.New(errors.ErrValidation, "用户名已设置，不能修改")
		}
	} else {
		existing, err := s.userRepo.FindByUsername(username)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询用户名失败", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, errors.New(errors.ErrUserExists, "用户名已被占用")
		}
		user.Username = username
		user.UsernameSet = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "密码加密失败", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}

	util.Logger.Info("用户凭证设置完成", zap.Int("user_id", user.ID))
	return user, nil
}

// Login 支持邮箱或用户名登录
func (s *UserService) Login(identifier, password string) (string, *model.User, error) {
	var user *model.User
	var err error

	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(identifier)))
	} else {
		user, err = s.userRepo.FindByUsername(identifier)
	}
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return "", nil, errors.New(errors.ErrInvalidCredentials, "用户名或密码错误")
	}
	if !user.EmailVerified {
		return "", nil, errors.New(errors.ErrEmailNotVerified, "请先完成邮箱验证")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New(errors.ErrInvalidCredentials, "用户名或密码错误")
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return token, user, nil
}

// OAuthLogin 第三方登录，邮箱不存在时自动注册；返回是否为新用户
func (s *UserService) OAuthLogin(provider, idToken string) (string, *model.User, bool, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return "", nil, false, errors.New(errors.ErrUnsupportedProvider, "不支持的第三方登录方式: "+provider)
	}

	email, verified, err := verifier.VerifyToken(idToken)
	if err != nil {
		return "", nil, false, err
	}
	if !verified {
		return "", nil, false, errors.New(errors.ErrEmailNotVerified, "第三方账号邮箱未验证")
	}

	email = strings.ToLower(email)
	defaultUsername := strings.SplitN(email, "@", 2)[0]
	user, created, err := s.userRepo.GetOrCreateByEmail(email, defaultUsername)
	if err != nil {
		return "", nil, false, errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	// 第三方登录的邮箱视为已验证
	if created || !user.EmailVerified || !user.IsOAuthUser {
		user.EmailVerified = true
		user.IsOAuthUser = true
		if err := s.userRepo.Update(user); err != nil {
			return "", nil, false, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
		}
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		return "", nil, false, errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}

	util.Logger.Info("第三方登录成功",
		zap.String("provider", provider),
		zap.Int("user_id", user.ID),
		zap.Bool("created", created))
	return token, user, created, nil
}

// Logout 将令牌加入黑名单
func (s *UserService) Logout(token string) error {
	if err := s.cache.BlacklistToken(token); err != nil {
		return errors.Wrap(errors.ErrCache, "注销失败", err)
	}
	return nil
}

func (s *UserService) IsTokenBlacklisted(token string) (bool, error) {
	return s.cache.IsTokenBlacklisted(token)
}

func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID int, bio string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Bio = bio
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID int, avatarURL string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = avatarURL
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}
	return user, nil
}

// DeleteAccount 软删除账号
func (s *UserService) DeleteAccount(userID int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	now := time.Now()
	user.DeletedAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除账号失败", err)
	}

	util.Logger.Info("账号已删除", zap.Int("user_id", userID))
	return nil
}

func (s *UserService) GetUsers(page, pageSize int) ([]*model.User, int, error) {
	users, err := s.userRepo.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询用户列表失败", err)
	}
	total, err := s.userRepo.Count()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "统计用户数失败", err)
	}
	return users, total, nil
}

func (s *UserService) UpdateUserRole(userID int, role string) error {
	if role != model.RoleUser && role != model.RoleModerator && role != model.RoleAdmin {
		return errors.New(errors.ErrValidation, "无效的角色: "+role)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新角色失败", err)
	}

	util.Logger.Info("用户角色已更新", zap.Int("user_id", userID), zap.String("role", role))
	return nil
}
