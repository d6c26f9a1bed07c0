package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "vortex:revoked:"

// TokenBlacklist 已注销的访问令牌，按令牌 ID 存储到过期为止
type TokenBlacklist struct {
	client redis.Cmdable
}

// NewTokenBlacklist 创建令牌黑名单
func NewTokenBlacklist(client redis.Cmdable) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func revokedKey(jti string) string {
	return revokedKeyPrefix + jti
}

// Revoke 注销令牌，ttl 为令牌剩余有效期
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

// IsRevoked 令牌是否已注销
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := b.client.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
