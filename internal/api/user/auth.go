package user

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"
	"social-network-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 处理注册登录相关的请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTP 发送邮箱验证码，不存在的邮箱会自动创建账号
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	if err := h.userService.SendOTP(req.Email); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "验证码已发送")
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// VerifyOTP 校验验证码并标记邮箱已验证
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	if err := h.userService.VerifyOTP(req.Email, req.Code); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "邮箱验证成功")
}

type setCredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,min=8"`
}

// SetCredentials 设置用户名和密码，完成注册
func (h *AuthHandler) SetCredentials(c *gin.Context) {
	var req setCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	user, err := h.userService.SetCredentials(req.Email, req.Username, req.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, user, "注册完成")
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login 邮箱或用户名登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	token, user, err := h.userService.Login(req.Identifier, req.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"token": token, "user": user}, "登录成功")
}

type oauthRequest struct {
	Provider string `json:"provider" binding:"required,oneof=google apple"`
	IDToken  string `json:"id_token" binding:"required"`
}

// OAuthLogin 第三方登录，首次登录自动注册
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	var req oauthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	token, user, created, err := h.userService.OAuthLogin(req.Provider, req.IDToken)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"token":    token,
		"user":     user,
		"new_user": created,
	}, "登录成功")
}

// Logout 注销，令牌加入黑名单
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := h.userService.Logout(token); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "已注销")
}

type refreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// RefreshToken 用旧令牌换取新令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	blacklisted, err := h.userService.IsTokenBlacklisted(req.Token)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrCache, "认证失败", err))
		return
	}
	if blacklisted {
		errors.HandleError(c, errors.New(errors.ErrInvalidToken, "令牌已注销"))
		return
	}

	newToken, err := util.RefreshToken(req.Token)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrInvalidToken, "无效的令牌"))
		return
	}

	errors.HandleSuccess(c, gin.H{"token": newToken}, "令牌已刷新")
}
