// Package snapshot 负责牌局状态的序列化和按观战者视角的脱敏
package snapshot

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/play/guandan/pkg/guandan"
)

// Marshal 序列化完整状态
func Marshal(state *guandan.GameState) ([]byte, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal game %s: %w", state.Id, err)
	}
	return payload, nil
}

// Unmarshal 还原完整状态
func Unmarshal(payload []byte) (*guandan.GameState, error) {
	state := new(guandan.GameState)
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}
	return state, nil
}

// MaskForViewer 对指定观看者脱敏
// 其他玩家的手牌清空，只保留张数统计 handCounts；观看者自己的手牌原样保留
// 直接在 JSON 字节上改写，不需要反序列化整个状态
func MaskForViewer(payload []byte, viewerId string) ([]byte, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("mask snapshot: invalid json")
	}

	out := payload
	var err error

	hands := gjson.GetBytes(payload, "hands")
	if !hands.IsObject() {
		return nil, fmt.Errorf("mask snapshot: missing hands object")
	}

	counts := map[string]int{}
	hands.ForEach(func(key, value gjson.Result) bool {
		playerId := key.String()
		counts[playerId] = int(value.Get("#").Int())
		if playerId != viewerId {
			out, err = sjson.SetBytes(out, "hands."+playerId, []any{})
		}
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("mask snapshot: %w", err)
	}

	out, err = sjson.SetBytes(out, "handCounts", counts)
	if err != nil {
		return nil, fmt.Errorf("mask snapshot: %w", err)
	}
	return out, nil
}
