package redis

import (
	"context"
	"fmt"
	"time"

	"sabor-go/internal/config"
	"sabor-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

const tokenDenylistPrefix = "auth:denylist:"

// Init 初始化Redis客户端
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return Client
}

// DenyToken 将登出的 Token 加入黑名单，ttl 为 Token 剩余有效期
func DenyToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, tokenDenylistPrefix+token, 1, ttl).Err()
}

// IsTokenDenied 检查 Token 是否已被登出
func IsTokenDenied(ctx context.Context, token string) (bool, error) {
	n, err := Client.Exists(ctx, tokenDenylistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
