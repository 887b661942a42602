package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateUsername 验证用户名为单个单词（字母、数字、下划线或连字符）
func ValidateUsername(fl validator.FieldLevel) bool {
	username, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if len(username) < 4 {
		return false
	}
	return usernamePattern.MatchString(username)
}
