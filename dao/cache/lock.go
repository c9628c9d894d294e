package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker 按 key 互斥，Lock 返回的 token 用于释放
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key string, token string) error
}

// 只删除自己持有的锁，过期后被他人重新获取的锁不受影响
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLock struct {
	redis *redis.Client
}

func NewRedisLock(rds *redis.Client) *RedisLock {
	return &RedisLock{redis: rds}
}

func (l *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.redis.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *RedisLock) Unlock(ctx context.Context, key string, token string) error {
	return unlockScript.Run(ctx, l.redis, []string{key}, token).Err()
}

// LocalLock 单进程互斥，测试与未配置 redis 时使用
type LocalLock struct {
	mu   sync.Mutex
	held map[string]string
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]string)}
}

func (l *LocalLock) Lock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return token, true, nil
}

func (l *LocalLock) Unlock(_ context.Context, key string, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}
