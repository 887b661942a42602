package middleware

import (
	"strings"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"
	"social-network-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 校验 Bearer 令牌并将 user_id 写入上下文
func AuthMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "缺少认证信息"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.HandleError(c, errors.New(errors.ErrInvalidToken, "认证格式错误"))
			c.Abort()
			return
		}
		token := parts[1]

		blacklisted, err := userService.IsTokenBlacklisted(token)
		if err != nil {
			util.Logger.Error("查询令牌黑名单失败", zap.Error(err))
			errors.HandleError(c, errors.Wrap(errors.ErrCache, "认证失败", err))
			c.Abort()
			return
		}
		if blacklisted {
			errors.HandleError(c, errors.New(errors.ErrInvalidToken, "令牌已注销"))
			c.Abort()
			return
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			errors.HandleError(c, errors.New(errors.ErrInvalidToken, "无效的令牌"))
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("token", token)
		c.Next()
	}
}

// OptionalAuthMiddleware 尝试解析令牌但不强制要求登录，
// 用于匿名可访问、登录后信息更丰富的接口
func OptionalAuthMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}
		token := parts[1]

		if blacklisted, err := userService.IsTokenBlacklisted(token); err != nil || blacklisted {
			c.Next()
			return
		}

		if userID, err := util.ValidateToken(token); err == nil {
			c.Set("user_id", userID)
			c.Set("token", token)
		}
		c.Next()
	}
}
