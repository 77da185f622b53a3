// Package autoplay 让引擎自动把牌局打下去
// 既服务托管座位，也用来批量自对弈驱动回归验证
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/play/guandan/pkg/ai"
	"github.com/play/guandan/pkg/gamestore"
	"github.com/play/guandan/pkg/guandan"
)

var (
	ErrNotActionable = errors.New("game is not in an actionable phase")
	ErrNoProgress    = errors.New("autoplay could not make progress")
	ErrBudget        = errors.New("round action budget exhausted")
)

// Runner 自动打牌执行器
type Runner struct {
	store  gamestore.Store
	engine *ai.Engine
	opts   *options
}

func NewRunner(store gamestore.Store, opts ...Option) *Runner {
	o := new(options)
	o.apply(opts...).setDefault()

	engineOpts := []ai.Option{ai.WithDifficulty(o.difficulty)}
	if o.jitter != nil {
		engineOpts = append(engineOpts, ai.WithJitter(o.jitter))
	}

	return &Runner{
		store:  store,
		engine: ai.New(engineOpts...),
		opts:   o,
	}
}

// actingPlayer 当前需要动作的玩家
func actingPlayer(state *guandan.GameState) (string, error) {
	switch state.Phase {
	case guandan.PhaseTurns:
		return state.CurrentPlayerId()
	case guandan.PhaseTribute:
		if len(state.PendingActions) > 0 {
			return state.PendingActions[0].PlayerId, nil
		}
		return "", fmt.Errorf("%w: tribute phase without pending action", ErrNotActionable)
	}
	return "", fmt.Errorf("%w: %s", ErrNotActionable, state.Phase)
}

func (r *Runner) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.opts.backoff):
		return nil
	}
}

// fallbackInput 引擎连续失败后的兜底：直接取第一个合法动作
func fallbackInput(state *guandan.GameState, playerId string) (guandan.ActionInput, bool) {
	moves := guandan.GetLegalMoves(state, playerId)
	if len(moves) == 0 {
		return guandan.ActionInput{}, false
	}
	move := moves[0]
	return guandan.ActionInput{Type: move.Type, CardIds: move.Cards.Ids()}, true
}

// Step 推进一个动作：引擎选择、应用、落库
// 应用失败时按配置重试，重试耗尽后退到第一个合法动作
func (r *Runner) Step(ctx context.Context, state *guandan.GameState) (*guandan.GameState, error) {
	playerId, err := actingPlayer(state)
	if err != nil {
		return nil, err
	}

	if r.opts.locker != nil {
		release, err := r.opts.locker.Acquire(ctx, state.Id)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := release(ctx); err != nil {
				log.Warn().Str("gameId", state.Id).Err(err).Msg("autoplay: release game lock")
			}
		}()
	}

	var lastErr error
	for attempt := 0; attempt < r.opts.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := r.sleep(ctx); err != nil {
				return nil, err
			}
		}

		decision := r.engine.Choose(state, playerId)
		next, entry, err := guandan.ApplyPlayerAction(state, playerId, decision.Action)
		if err != nil {
			lastErr = err
			log.Warn().
				Str("gameId", state.Id).
				Str("playerId", playerId).
				Str("action", string(decision.Action.Type)).
				Int("attempt", attempt+1).
				Err(err).
				Msg("autoplay: engine action rejected")
			continue
		}
		return r.commit(ctx, next, entry, decision.ReasonCode, playerId)
	}

	input, ok := fallbackInput(state, playerId)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no legal moves (last error: %v)", ErrNoProgress, playerId, lastErr)
	}
	next, entry, err := guandan.ApplyPlayerAction(state, playerId, input)
	if err != nil {
		return nil, fmt.Errorf("%w: fallback also rejected: %v", ErrNoProgress, err)
	}
	return r.commit(ctx, next, entry, "autoplay_fallback", playerId)
}

func (r *Runner) commit(ctx context.Context, next *guandan.GameState, entry *guandan.ActionLog, reasonCode, playerId string) (*guandan.GameState, error) {
	if err := r.store.SaveGame(ctx, next); err != nil {
		return nil, fmt.Errorf("save game %s: %w", next.Id, err)
	}
	if err := r.store.AppendLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("append log %s/%d: %w", entry.GameId, entry.Seq, err)
	}

	log.Debug().
		Str("gameId", next.Id).
		Str("playerId", playerId).
		Str("reason", reasonCode).
		Int("seq", entry.Seq).
		Msg("autoplay: step")
	return next, nil
}

// PlayRound 把当前局打到结算为止
// 结算后引擎会立即开出下一局，以局号变化或终局为停止条件
func (r *Runner) PlayRound(ctx context.Context, state *guandan.GameState) (*guandan.GameState, error) {
	startRound := state.Match.RoundNo

	for actions := 0; actions < r.opts.maxActions; actions++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if state.Match.RoundNo != startRound || state.Phase == guandan.PhaseGameFinish {
			return state, nil
		}

		next, err := r.Step(ctx, state)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return nil, fmt.Errorf("%w: round %d still open after %d actions", ErrBudget, startRound, r.opts.maxActions)
}

// Result 一次自对弈的结果
type Result struct {
	GameId  string
	RoomId  string
	Final   *guandan.GameState
	Actions int
}

// Simulate 创建一局并自动打完一整局
func (r *Runner) Simulate(ctx context.Context, playerOrder []string, levelRank guandan.Rank, seed uint64) (*Result, error) {
	roomId := uuid.NewString()
	gameId := uuid.NewString()

	state, err := guandan.NewGame(roomId, gameId, playerOrder, levelRank, seed)
	if err != nil {
		return nil, err
	}
	if err := r.store.SaveGame(ctx, state); err != nil {
		return nil, fmt.Errorf("save game %s: %w", gameId, err)
	}

	final, err := r.PlayRound(ctx, state)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("gameId", gameId).
		Int("actions", final.ActionSeq).
		Int("winnerTeam", final.Match.LastRoundResult.WinnerTeam).
		Msg("autoplay: round finished")

	return &Result{
		GameId:  gameId,
		RoomId:  roomId,
		Final:   final,
		Actions: final.ActionSeq,
	}, nil
}
