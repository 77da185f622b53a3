package ai

import (
	"sort"
	"strings"
	"time"

	"github.com/play/guandan/pkg/guandan"
)

// KeyMoment 复盘中的关键一手
type KeyMoment struct {
	Seq      int    `json:"seq"`
	PlayerId string `json:"playerId"`
	Why      string `json:"why"`
	Impact   int    `json:"impact"`
}

// GameReview 整局复盘
type GameReview struct {
	GameId       string      `json:"gameId"`
	Language     string      `json:"language"`
	Summary      string      `json:"summary"`
	KeyMoments   []KeyMoment `json:"keyMoments"`
	Alternatives []string    `json:"alternatives"`
	Suggestions  []string    `json:"suggestions"`
	CreatedAt    time.Time   `json:"createdAt"`
	Model        string      `json:"model"`
}

// reasonToChinese 把动作原因码翻译成复盘解说
// 匹配按特异性从高到低，straight_flush 要先于 straight 和 bomb 命中
func reasonToChinese(reasonCode string) string {
	switch {
	case strings.Contains(reasonCode, "straight_flush"):
		return "同花顺在此轮属于高阶炸弹，可直接夺回牌权。"
	case strings.Contains(reasonCode, "bomb"):
		return "在关键节点使用炸弹改变牌权。"
	case strings.Contains(reasonCode, "steel"):
		return "通过钢板连续压制，强行夺回节奏。"
	case strings.Contains(reasonCode, "consecutive_pairs"):
		return "连对推进能持续施压并消化中段手牌。"
	case strings.Contains(reasonCode, "triple_with_pair"):
		return "三带二兼顾压制与控牌，减少后续卡手风险。"
	case strings.Contains(reasonCode, "straight"):
		return "通过顺子扩大出牌长度，减少手牌阻塞。"
	case strings.Contains(reasonCode, "triple"):
		return "通过三张压制对手并保留高价值牌。"
	case strings.Contains(reasonCode, "pair"):
		return "通过对子试探对手并控制节奏。"
	case strings.Contains(reasonCode, "single"):
		return "以单张过渡，避免暴露核心组合。"
	case strings.Contains(reasonCode, "trick_reset"):
		return "通过连续过牌重置牌权，等待更优起手。"
	case strings.Contains(reasonCode, "pass"):
		return "此处过牌是为了保留关键资源，降低被反制风险。"
	default:
		return "该动作对节奏和资源分配产生了影响。"
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ExtractKeyMoments 按分值影响绝对值取前 topN 条日志
func ExtractKeyMoments(logs []guandan.ActionLog, topN int) []KeyMoment {
	sorted := append([]guandan.ActionLog(nil), logs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].ScoreDelta) > abs(sorted[j].ScoreDelta)
	})
	if topN > len(sorted) {
		topN = len(sorted)
	}

	moments := make([]KeyMoment, 0, topN)
	for _, log := range sorted[:topN] {
		moments = append(moments, KeyMoment{
			Seq:      log.Seq,
			PlayerId: log.PlayerId,
			Why:      reasonToChinese(log.ReasonCode),
			Impact:   log.ScoreDelta,
		})
	}
	return moments
}

// BuildFallbackReview 纯规则复盘，外部大模型不可用时兜底
func BuildFallbackReview(gameId string, logs []guandan.ActionLog) *GameReview {
	totalScore := 0
	for _, log := range logs {
		totalScore += log.ScoreDelta
	}

	summary := "本局整体节奏偏主动，关键在于中后段对牌权的连续控制。"
	if totalScore < 0 {
		summary = "本局前中期资源交换偏被动，关键问题是失去牌权后的反制效率不足。"
	}

	return &GameReview{
		GameId:     gameId,
		Language:   "zh-CN",
		Summary:    summary,
		KeyMoments: ExtractKeyMoments(logs, 5),
		Alternatives: []string{
			"当对手牌型不明时，优先用中段对子试探，再决定是否交高价值组合。",
			"若队友已建立优势，尽量保留炸弹用于终局封锁，而非中盘抢节奏。",
		},
		Suggestions: []string{
			"减少无收益的跟牌，避免在非关键轮次暴露高点数牌。",
			"在出完中段牌型后，提前规划收官顺序，保证最后 2-3 手可连贯出完。",
		},
		CreatedAt: time.Now(),
		Model:     "fallback-rules",
	}
}
