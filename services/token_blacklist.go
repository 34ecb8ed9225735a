package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guraspy/personalized-workout-api/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// TokenBlacklist remembers revoked refresh tokens by their jti until they
// would have expired anyway.
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type GormBlacklist struct {
	db *gorm.DB
}

func NewGormBlacklist(db *gorm.DB) *GormBlacklist {
	return &GormBlacklist{db: db}
}

func (b *GormBlacklist) Add(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	err := b.db.WithContext(ctx).Create(&models.BlacklistedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (b *GormBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&models.BlacklistedToken{}).Where("jti = ?", jti).Count(&n).Error
	return n > 0, err
}

// Purge deletes entries whose tokens have expired.
func (b *GormBlacklist) Purge(ctx context.Context, now time.Time) (int64, error) {
	res := b.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	return res.RowsAffected, res.Error
}

const redisBlacklistPrefix = "auth:blacklist:"

// RedisBlacklist keeps one key per jti with a TTL ending at token expiry.
type RedisBlacklist struct {
	rdb *redis.Client
}

func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

func (b *RedisBlacklist) Add(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.rdb.SetNX(ctx, redisBlacklistPrefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis blacklist add: %w", err)
	}
	return nil
}

func (b *RedisBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, redisBlacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis blacklist lookup: %w", err)
	}
	return n > 0, nil
}
