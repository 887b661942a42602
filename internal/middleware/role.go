package middleware

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireRoles 必须在 AuthMiddleware 之后使用，校验当前用户的角色
func RequireRoles(userService service.UserServiceInterface, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		if userID == 0 {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "未登录"))
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(userID)
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		if !allowed[user.Role] {
			errors.HandleError(c, errors.New(errors.ErrForbidden, "没有访问权限"))
			c.Abort()
			return
		}

		c.Set("user_role", user.Role)
		c.Next()
	}
}

// AdminMiddleware 仅管理员可访问
func AdminMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return RequireRoles(userService, model.RoleAdmin)
}

// ModeratorMiddleware 管理员或版主可访问
func ModeratorMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return RequireRoles(userService, model.RoleAdmin, model.RoleModerator)
}
