package ai

import (
	"math"

	"github.com/play/guandan/pkg/guandan"
)

// Decision 引擎给出的动作和打分
type Decision struct {
	Action     guandan.ActionInput `json:"action"`
	ReasonCode string              `json:"reasonCode"`
	Score      float64             `json:"score"`
}

// Engine 启发式打牌引擎
// 同一个引擎可以服务多个牌局，Choose 不修改传入的状态
type Engine struct {
	opts *options
}

func New(opts ...Option) *Engine {
	o := new(options)
	o.apply(opts...).setDefault()
	return &Engine{opts: o}
}

func passDecision(reasonCode string, score float64) Decision {
	return Decision{
		Action:     guandan.ActionInput{Type: guandan.ActionPass},
		ReasonCode: reasonCode,
		Score:      score,
	}
}

// handRisk 手牌负担：点数权重总和加上张数惩罚，越小越接近出完
func handRisk(state *guandan.GameState, playerId string) float64 {
	risk := 0.0
	for _, c := range state.Hands[playerId] {
		risk += float64(c.Rank.Power())
	}
	return risk + float64(len(state.Hands[playerId]))*2
}

// moveScore 单个候选动作的基础启发分
func (e *Engine) moveScore(state *guandan.GameState, playerId string, move guandan.LegalMove) float64 {
	var target *guandan.Pattern
	if state.LastPlay != nil && state.LastPlay.PlayerId != playerId {
		target = state.LastPlay.Pattern
	}

	if move.Type == guandan.ActionPass {
		penalty := -18.0
		if e.opts.difficulty == DifficultyEasy {
			penalty = -8
		}
		if target != nil {
			switch target.Type {
			case guandan.PatternTypeSingle, guandan.PatternTypePair:
				// 桌面越弱越不该放弃牌权
				if target.MainPoint <= 10 {
					penalty -= 14
				} else {
					penalty -= 8
				}
			case guandan.PatternTypeTrips, guandan.PatternTypeFullHouse:
				penalty -= 5
			}
		}
		return penalty
	}

	combo := move.Pattern
	if combo == nil {
		return -100
	}
	remain := len(state.Hands[playerId]) - len(move.Cards)
	hard := e.opts.difficulty == DifficultyHard

	score := 0.0
	if remain == 0 {
		score += 200
	}

	switch combo.Type {
	case guandan.PatternTypeStraight:
		score += 12
	case guandan.PatternTypeStraightFlush:
		score += 16
	case guandan.PatternTypePairSeq:
		score += 13
	case guandan.PatternTypeTripsSeq:
		score += 14
	case guandan.PatternTypeFullHouse:
		score += 10
	case guandan.PatternTypeTrips:
		score += 9
	case guandan.PatternTypePair:
		score += 6
	case guandan.PatternTypeSingle:
		score += 3
	}

	if target != nil && combo.Type == target.Type {
		score += 8
		if combo.Type == guandan.PatternTypeSingle || combo.Type == guandan.PatternTypePair {
			// 贴着压：点差越小越赚
			gap := float64(combo.MainPoint - target.MainPoint)
			if gap < 0 {
				gap = 0
			}
			score += math.Max(0, 10-gap)
		}
	}

	switch combo.Type {
	case guandan.PatternTypeBomb:
		if hard {
			score += 8
		} else {
			score -= 10
		}
		if target != nil && target.Type == guandan.PatternTypeSingle && target.MainPoint <= 8 {
			score -= 18
		}
	case guandan.PatternTypeStraightFlush:
		if hard {
			score += 14
		} else {
			score += 6
		}
		if target != nil &&
			(target.Type == guandan.PatternTypeSingle || target.Type == guandan.PatternTypePair) &&
			target.MainPoint <= 9 {
			score -= 12
		}
	case guandan.PatternTypeFourJokers:
		if hard {
			score += 18
		} else {
			score -= 6
		}
		if target != nil &&
			(target.Type == guandan.PatternTypeSingle || target.Type == guandan.PatternTypePair) {
			score -= 22
		}
	}

	score -= float64(combo.MainPoint) / 3
	score -= float64(remain)
	return score
}

// futureScore 困难难度的一步前瞻：试走后按剩余手牌负担计负分
func futureScore(state *guandan.GameState, playerId string, move guandan.LegalMove) float64 {
	next, _, err := guandan.ApplyPlayerAction(state, playerId, guandan.ActionInput{
		Type:    move.Type,
		CardIds: move.Cards.Ids(),
	})
	if err != nil {
		return -999
	}
	return -handRisk(next, playerId)
}

// chooseTribute 进贡阶段：进贡交最大牌，还贡回最小牌
func (e *Engine) chooseTribute(state *guandan.GameState, playerId string) Decision {
	pending, ok := state.PendingFor(playerId)
	if !ok {
		return passDecision("ai_no_legal_move", -100)
	}

	hand := state.Hands[playerId]
	switch pending.Action {
	case guandan.ActionTributeGive:
		max, found := guandan.PickMaxCard(hand)
		if !found {
			return passDecision("ai_no_legal_move", -100)
		}
		return Decision{
			Action:     guandan.ActionInput{Type: guandan.ActionTributeGive, CardIds: []string{max.Id}},
			ReasonCode: "ai_tribute_give",
		}
	case guandan.ActionTributeReturn:
		if len(hand) == 0 {
			return passDecision("ai_no_legal_move", -100)
		}
		low := hand.Sorted()[0]
		return Decision{
			Action:     guandan.ActionInput{Type: guandan.ActionTributeReturn, CardIds: []string{low.Id}},
			ReasonCode: "ai_tribute_return",
		}
	}
	return passDecision("ai_no_legal_move", -100)
}

// Choose 为指定玩家选择一个动作
func (e *Engine) Choose(state *guandan.GameState, playerId string) Decision {
	if state.Phase == guandan.PhaseTribute {
		return e.chooseTribute(state, playerId)
	}

	moves := guandan.GetLegalMoves(state, playerId)
	if len(moves) == 0 {
		return passDecision("ai_no_legal_move", -100)
	}

	bestMove := moves[0]
	bestScore := math.Inf(-1)

	var bestPlay *guandan.LegalMove
	bestPlayScore := math.Inf(-1)
	bestPassScore := math.Inf(-1)

	for i := range moves {
		move := moves[i]
		score := e.moveScore(state, playerId, move)
		if e.opts.difficulty == DifficultyHard {
			score += futureScore(state, playerId, move)
		}
		if e.opts.difficulty == DifficultyEasy {
			score += e.opts.jitter() * 4
		} else {
			score += e.opts.jitter()
		}

		if move.Type == guandan.ActionPass {
			if score > bestPassScore {
				bestPassScore = score
			}
		} else if bestPlay == nil || score > bestPlayScore {
			bestPlay = &moves[i]
			bestPlayScore = score
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	// 跟牌时对出牌加少量倾斜，避免引擎一味过牌拖节奏
	responding := state.LastPlay != nil && state.LastPlay.PlayerId != playerId
	if responding && bestPlay != nil && !math.IsInf(bestPassScore, -1) {
		threshold := 7.0
		if e.opts.difficulty == DifficultyEasy {
			threshold = 2
		}
		if bestPlayScore+threshold >= bestPassScore {
			bestMove = *bestPlay
			bestScore = bestPlayScore
		}
	}

	if bestMove.Type == guandan.ActionPass {
		return passDecision("ai_pass_pressure", bestScore)
	}
	return Decision{
		Action:     guandan.ActionInput{Type: guandan.ActionPlay, CardIds: bestMove.Cards.Ids()},
		ReasonCode: "ai_play_" + bestMove.Pattern.Type.String(),
		Score:      bestScore,
	}
}
