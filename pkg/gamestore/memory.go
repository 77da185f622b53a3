package gamestore

import (
	"context"
	"fmt"
	"sync"

	"github.com/play/guandan/pkg/guandan"
)

// Memory 进程内存储，测试和单机自对弈用
type Memory struct {
	mu    sync.RWMutex
	games map[string]*guandan.GameState
	logs  map[string][]guandan.ActionLog
}

func NewMemory() *Memory {
	return &Memory{
		games: make(map[string]*guandan.GameState),
		logs:  make(map[string][]guandan.ActionLog),
	}
}

// SaveGame 存入快照的副本，调用方之后的修改不影响存储内容
func (m *Memory) SaveGame(_ context.Context, state *guandan.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[state.Id] = state.Clone()
	return nil
}

func (m *Memory) GetGame(_ context.Context, gameId string) (*guandan.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.games[gameId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameId)
	}
	return state.Clone(), nil
}

func (m *Memory) AppendLog(_ context.Context, entry *guandan.ActionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[entry.GameId] = append(m.logs[entry.GameId], *entry)
	return nil
}

func (m *Memory) ListLogs(_ context.Context, gameId string) ([]guandan.ActionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]guandan.ActionLog(nil), m.logs[gameId]...), nil
}
