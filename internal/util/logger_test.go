package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerUsableBeforeInit(t *testing.T) {
	assert.NotNil(t, Logger)
	// 初始化之前写日志不应 panic
	assert.NotPanics(t, func() {
		Logger.Info("pre-init message")
	})
}
