package gamestore

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/play/guandan/pkg/guandan"
)

// Redis 基于 redis 的存储
// 快照放在一个 hash 里按 gameId 索引，日志每局一个 list 只追加
type Redis struct {
	rdb         redis.Cmdable
	gameDataKey string
	logKey      string
}

func NewRedis(rdb redis.Cmdable, opts ...Option) *Redis {
	o := new(options)
	o.apply(opts...).setDefault()

	return &Redis{
		rdb:         rdb,
		gameDataKey: o.prefix + ":game:data",
		logKey:      o.prefix + ":game:log:",
	}
}

func (r *Redis) SaveGame(ctx context.Context, state *guandan.GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", state.Id, err)
	}
	return r.rdb.HSet(ctx, r.gameDataKey, state.Id, payload).Err()
}

func (r *Redis) GetGame(ctx context.Context, gameId string) (*guandan.GameState, error) {
	payload, err := r.rdb.HGet(ctx, r.gameDataKey, gameId).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameId)
		}
		return nil, err
	}

	state := new(guandan.GameState)
	if err := json.Unmarshal([]byte(payload), state); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", gameId, err)
	}
	return state, nil
}

func (r *Redis) AppendLog(ctx context.Context, entry *guandan.ActionLog) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log %s/%d: %w", entry.GameId, entry.Seq, err)
	}
	return r.rdb.RPush(ctx, r.logKey+entry.GameId, payload).Err()
}

func (r *Redis) ListLogs(ctx context.Context, gameId string) ([]guandan.ActionLog, error) {
	rows, err := r.rdb.LRange(ctx, r.logKey+gameId, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	logs := make([]guandan.ActionLog, 0, len(rows))
	for i, row := range rows {
		var entry guandan.ActionLog
		if err := json.Unmarshal([]byte(row), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal log %s[%d]: %w", gameId, i, err)
		}
		logs = append(logs, entry)
	}
	return logs, nil
}
