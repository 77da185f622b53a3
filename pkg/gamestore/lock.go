package gamestore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrLockNotAcquired = errors.New("game lock not acquired")
	ErrLockNotHeld     = errors.New("game lock not held by this instance")
)

// releaseScript 原子地校验持有者后删除锁键，别人的锁不会被误删
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
else
    return 0
end
`

// GameLocker 跨进程的牌局互斥锁
// 同一局的动作必须串行应用，多个实例共用一份存储时用它保护 读取-应用-写回
type GameLocker struct {
	rdb     redis.Cmdable
	prefix  string
	ttl     time.Duration
	retries int
	delay   time.Duration
}

func NewGameLocker(rdb redis.Cmdable, opts ...Option) *GameLocker {
	o := new(options)
	o.apply(opts...).setDefault()

	return &GameLocker{
		rdb:     rdb,
		prefix:  o.prefix + ":game:lock:",
		ttl:     o.lockTTL,
		retries: o.lockRetries,
		delay:   o.lockRetryDelay,
	}
}

// Acquire 获取某一局的锁，返回释放函数
// 拿不到会按配置重试，重试耗尽返回 ErrLockNotAcquired
func (gl *GameLocker) Acquire(ctx context.Context, gameId string) (func(context.Context) error, error) {
	key := gl.prefix + gameId
	value := uuid.NewString()

	for attempt := 0; ; attempt++ {
		acquired, err := gl.rdb.SetNX(ctx, key, value, gl.ttl).Result()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		if acquired {
			break
		}
		if attempt >= gl.retries {
			log.Ctx(ctx).Warn().Str("gameId", gameId).Msg("gamestore: game lock busy")
			return nil, ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(gl.delay):
		}
	}

	release := func(ctx context.Context) error {
		result, err := gl.rdb.Eval(ctx, releaseScript, []string{key}, value).Result()
		if err != nil {
			return err
		}
		if deleted, ok := result.(int64); !ok || deleted != 1 {
			return ErrLockNotHeld
		}
		return nil
	}
	return release, nil
}
