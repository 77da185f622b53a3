// Package replay 从动作日志重建牌局
// 发牌由 (种子, 局号) 完全决定，同一份日志从同一起点重放必然得到同一状态
package replay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/play/guandan/pkg/guandan"
)

var (
	ErrLogGap        = errors.New("action log sequence gap")
	ErrStateMismatch = errors.New("rebuilt state does not match expected state")
)

// Source 重放起点，和 NewGame 的入参一一对应
type Source struct {
	RoomId      string       `json:"roomId"`
	GameId      string       `json:"gameId"`
	PlayerOrder []string     `json:"playerOrder"`
	LevelRank   guandan.Rank `json:"levelRank"`
	Seed        uint64       `json:"seed"`
}

// SourceOf 从初始状态提取重放起点
// 必须用 NewGame 刚返回、还没有执行过动作的状态，之后级牌可能已经变化
func SourceOf(state *guandan.GameState) Source {
	return Source{
		RoomId:      state.RoomId,
		GameId:      state.Id,
		PlayerOrder: append([]string(nil), state.PlayerOrder...),
		LevelRank:   state.LevelRank,
		Seed:        state.Seed,
	}
}

func inputFromLog(entry guandan.ActionLog) guandan.ActionInput {
	input := guandan.ActionInput{Type: entry.Type, CardIds: entry.CardIds}
	if entry.Type == guandan.ActionToggleAuto {
		input.Enabled = entry.ReasonCode == "auto_enabled"
	}
	return input
}

// Rebuild 从起点按顺序重放全部日志
// 日志序号必须连续，断档说明日志缺失，重放结果不可信
func Rebuild(src Source, logs []guandan.ActionLog) (*guandan.GameState, error) {
	state, err := guandan.NewGame(src.RoomId, src.GameId, src.PlayerOrder, src.LevelRank, src.Seed)
	if err != nil {
		return nil, err
	}

	for i, entry := range logs {
		if entry.Seq != i+1 {
			return nil, fmt.Errorf("%w: entry %d has seq %d", ErrLogGap, i, entry.Seq)
		}
		state, _, err = guandan.ApplyPlayerAction(state, entry.PlayerId, inputFromLog(entry))
		if err != nil {
			return nil, fmt.Errorf("replay seq %d (%s by %s): %w", entry.Seq, entry.Type, entry.PlayerId, err)
		}
	}
	return state, nil
}

// Verify 重放日志并和给定状态逐字节比对序列化结果
func Verify(src Source, logs []guandan.ActionLog, expected *guandan.GameState) error {
	rebuilt, err := Rebuild(src, logs)
	if err != nil {
		return err
	}

	a, err := json.Marshal(rebuilt)
	if err != nil {
		return err
	}
	b, err := json.Marshal(expected)
	if err != nil {
		return err
	}
	if !bytes.Equal(a, b) {
		return fmt.Errorf("%w: game %s", ErrStateMismatch, src.GameId)
	}
	return nil
}

// DecodeLines 解析 JSON lines 格式的日志流，空行跳过
func DecodeLines(r io.Reader) ([]guandan.ActionLog, error) {
	var logs []guandan.ActionLog
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry guandan.ActionLog
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode log line %d: %w", lineNo, err)
		}
		logs = append(logs, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
