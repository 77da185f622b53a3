package gamestore

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"

	"github.com/play/guandan/pkg/guandan"
)

// Cached 在任意 Store 外面套一层读穿透缓存
// 写入时同步更新缓存，命中和写入都返回深拷贝，缓存内容不会被外部改动
type Cached struct {
	backing Store
	games   *expirable.LRU[string, *guandan.GameState]
}

func NewCached(backing Store, opts ...Option) *Cached {
	o := new(options)
	o.apply(opts...).setDefault()

	return &Cached{
		backing: backing,
		games:   expirable.NewLRU[string, *guandan.GameState](o.cacheSize, nil, o.cacheTTL),
	}
}

func (c *Cached) SaveGame(ctx context.Context, state *guandan.GameState) error {
	if err := c.backing.SaveGame(ctx, state); err != nil {
		return err
	}
	c.games.Add(state.Id, state.Clone())
	return nil
}

func (c *Cached) GetGame(ctx context.Context, gameId string) (*guandan.GameState, error) {
	if state, ok := c.games.Get(gameId); ok {
		return state.Clone(), nil
	}

	state, err := c.backing.GetGame(ctx, gameId)
	if err != nil {
		return nil, err
	}
	if evicted := c.games.Add(gameId, state.Clone()); evicted {
		log.Debug().Str("gameId", gameId).Msg("gamestore: cache evicted oldest entry")
	}
	return state, nil
}

func (c *Cached) AppendLog(ctx context.Context, entry *guandan.ActionLog) error {
	return c.backing.AppendLog(ctx, entry)
}

func (c *Cached) ListLogs(ctx context.Context, gameId string) ([]guandan.ActionLog, error) {
	return c.backing.ListLogs(ctx, gameId)
}
