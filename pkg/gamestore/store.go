package gamestore

import (
	"context"
	"errors"

	"github.com/play/guandan/pkg/guandan"
)

var ErrGameNotFound = errors.New("game not found")

// Store 牌局状态与动作日志的持久化接口
// SaveGame 整体覆盖快照，AppendLog 只追加，日志写入后不再修改
type Store interface {
	SaveGame(ctx context.Context, state *guandan.GameState) error
	GetGame(ctx context.Context, gameId string) (*guandan.GameState, error)
	AppendLog(ctx context.Context, entry *guandan.ActionLog) error
	ListLogs(ctx context.Context, gameId string) ([]guandan.ActionLog, error)
}
