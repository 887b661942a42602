package cache

import (
	"context"
	"fmt"
	"time"

	"social-network-backend/config"
	"social-network-backend/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	otpTTL       = 10 * time.Minute
	blacklistTTL = 24 * time.Hour
	opTimeout    = 3 * time.Second
)

// Cache 封装 Redis 客户端，存放 OTP 验证码与已注销令牌黑名单
type Cache struct {
	client *redis.Client
}

func NewCache() (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	util.Logger.Info("Redis 连接成功", zap.String("addr", config.AppConfig.RedisAddr))
	return &Cache{client: client}, nil
}

func otpKey(email string) string {
	return "otp:" + email
}

func blacklistKey(token string) string {
	return "token:blacklist:" + token
}

func (c *Cache) SetOTP(email, code string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return c.client.Set(ctx, otpKey(email), code, otpTTL).Err()
}

// GetOTP 验证码不存在或已过期时返回空串
func (c *Cache) GetOTP(email string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	code, err := c.client.Get(ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (c *Cache) DeleteOTP(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return c.client.Del(ctx, otpKey(email)).Err()
}

// BlacklistToken 注销时拉黑令牌，过期时间与令牌有效期一致
func (c *Cache) BlacklistToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return c.client.Set(ctx, blacklistKey(token), "1", blacklistTTL).Err()
}

func (c *Cache) IsTokenBlacklisted(token string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := c.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
