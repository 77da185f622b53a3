package guandan

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// 错误定义
// 所有前置条件失败都会返回描述性错误且不产生任何状态变更
var (
	ErrBadPlayerCount   = errors.New("guandan requires exactly 4 players")
	ErrCorruptDeck      = errors.New("corrupt deck")
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrInvalidTurn      = errors.New("invalid turn index")
	ErrEmptyPlay        = errors.New("play action requires card ids")
	ErrDuplicateCardIds = errors.New("duplicate card ids are not allowed")
	ErrCardNotInHand    = errors.New("selected cards are not in hand")
	ErrInvalidPattern   = errors.New("invalid card combination")
	ErrNotLegalMove     = errors.New("selected cards are not a legal move")
	ErrCannotBeat       = errors.New("play does not beat previous combination")
	ErrPassWithoutPlay  = errors.New("cannot pass without previous play")
	ErrLeaderCannotPass = errors.New("leader cannot pass on own lead")
	ErrNoPendingTribute = errors.New("no pending tribute action for player")
	ErrTributeOneCard   = errors.New("tribute action requires exactly one card")
	ErrTributeNotMax    = errors.New("tribute must give the maximum card")
	ErrTributeRole      = errors.New("unexpected tribute role")
	ErrUnsupportedType  = errors.New("unsupported action type")
)

// Phase 游戏阶段
type Phase string

const (
	PhaseDealing    Phase = "dealing"
	PhaseTurns      Phase = "turns"
	PhaseHandFinish Phase = "hand-finish"
	PhaseGameFinish Phase = "game-finish"
	PhaseTribute    Phase = "tribute"
	PhaseLevelUp    Phase = "level-up"
)

// ActionType 玩家动作类型
type ActionType string

const (
	ActionPlay          ActionType = "play"
	ActionPass          ActionType = "pass"
	ActionToggleAuto    ActionType = "toggle_auto"
	ActionTributeGive   ActionType = "tribute_give"
	ActionTributeReturn ActionType = "tribute_return"
)

// ActionInput 外部提交的玩家动作
type ActionInput struct {
	Type    ActionType `json:"type"`
	CardIds []string   `json:"cardIds,omitempty"`
	Enabled bool       `json:"enabled,omitempty"`
}

// PlayRecord 当前桌面上待压制的出牌
type PlayRecord struct {
	PlayerId string   `json:"playerId"`
	Cards    Cards    `json:"cards"`
	Pattern  *Pattern `json:"combo"`
	Seq      int      `json:"seq"`
}

func (pr *PlayRecord) clone() *PlayRecord {
	if pr == nil {
		return nil
	}
	out := *pr
	out.Cards = pr.Cards.Clone()
	out.Pattern = pr.Pattern.Clone()
	return &out
}

// TributeStatus 进贡流程状态
type TributeStatus string

const (
	TributePendingGive   TributeStatus = "pending_give"
	TributePendingReturn TributeStatus = "pending_return"
	TributeCompleted     TributeStatus = "completed"
)

// TributeState 一次进贡交换
type TributeState struct {
	DonorPlayerId    string        `json:"donorPlayerId"`
	ReceiverPlayerId string        `json:"receiverPlayerId"`
	Status           TributeStatus `json:"status"`
	GivenCard        *Card         `json:"givenCard,omitempty"`
	ReturnedCard     *Card         `json:"returnedCard,omitempty"`
}

func (ts *TributeState) clone() *TributeState {
	if ts == nil {
		return nil
	}
	out := *ts
	if ts.GivenCard != nil {
		c := *ts.GivenCard
		out.GivenCard = &c
	}
	if ts.ReturnedCard != nil {
		c := *ts.ReturnedCard
		out.ReturnedCard = &c
	}
	return &out
}

// PendingAction 某位玩家当前必须完成的动作（进贡/还贡）
type PendingAction struct {
	PlayerId string     `json:"playerId"`
	Action   ActionType `json:"action"`
}

// MatchState 跨局的比赛状态
type MatchState struct {
	TeamLevel            [2]Rank       `json:"teamLevel"` // 两队级牌
	RoundNo              int           `json:"roundNo"`
	LastRoundResult      *RoundResult  `json:"lastRoundResult"`
	PendingTribute       *TributeState `json:"pendingTribute"`
	AntiTributeTriggered bool          `json:"antiTributeTriggered"`
}

// GameState 游戏状态快照
// 每次状态转移整体复制后替换，任何组件都不持有内部结构的可变引用
type GameState struct {
	Id               string           `json:"id"`
	RoomId           string           `json:"roomId"`
	Phase            Phase            `json:"phase"`
	LevelRank        Rank             `json:"levelRank"`
	PlayerOrder      []string         `json:"playerOrder"` // 座位顺序，座位号 mod 2 即队伍
	Hands            map[string]Cards `json:"hands"`
	CurrentTurnIndex int              `json:"currentTurnIndex"`
	LastPlay         *PlayRecord      `json:"lastPlay"`
	PassesInRow      int              `json:"passesInRow"`
	FinishedOrder    []string         `json:"finishedOrder"`
	WinnerTeam       int              `json:"winnerTeam"` // -1 表示未分胜负
	ActionSeq        int              `json:"actionSeq"`
	Match            MatchState       `json:"match"`
	PendingActions   []PendingAction  `json:"pendingActions"`
	RuleMeta         RuleOptions      `json:"ruleMeta"`
	Seed             uint64           `json:"seed"` // 创建时的随机种子，第 N 局用 pcg(Seed, N) 发牌
}

// ActionLog 单条动作日志，追加后不再修改
type ActionLog struct {
	GameId     string     `json:"gameId"`
	Seq        int        `json:"seq"`
	PlayerId   string     `json:"playerId"`
	Type       ActionType `json:"type"`
	CardIds    []string   `json:"cardIds"`
	ReasonCode string     `json:"reasonCode"`
	ScoreDelta int        `json:"scoreDelta"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Clone 深拷贝整个状态
func (gs *GameState) Clone() *GameState {
	next := *gs
	next.PlayerOrder = append([]string(nil), gs.PlayerOrder...)
	next.Hands = make(map[string]Cards, len(gs.Hands))
	for playerId, hand := range gs.Hands {
		next.Hands[playerId] = hand.Clone()
	}
	next.FinishedOrder = append([]string(nil), gs.FinishedOrder...)
	next.PendingActions = append([]PendingAction(nil), gs.PendingActions...)
	next.LastPlay = gs.LastPlay.clone()
	next.Match.LastRoundResult = gs.Match.LastRoundResult.Clone()
	next.Match.PendingTribute = gs.Match.PendingTribute.clone()
	return &next
}

// dealRng 第 roundNo 局的发牌随机源
func dealRng(seed uint64, roundNo int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(roundNo)))
}

func dealRoundHands(playerOrder []string, rng *rand.Rand) (map[string]Cards, error) {
	deck := NewDoubleDeck()
	deck.Shuffle(rng)
	dealt, err := DealToFour(deck)
	if err != nil {
		return nil, err
	}

	hands := make(map[string]Cards, len(playerOrder))
	for i, playerId := range playerOrder {
		hands[playerId] = dealt[i]
	}
	return hands, nil
}

// NewGame 创建初始游戏状态并完成首局发牌
// 同样的入参永远产生同样的状态，回放由此开始
func NewGame(roomId, gameId string, playerOrder []string, levelRank Rank, seed uint64) (*GameState, error) {
	if len(playerOrder) != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrBadPlayerCount, len(playerOrder))
	}
	if levelRank == RankNone {
		levelRank = Rank2
	}

	hands, err := dealRoundHands(playerOrder, dealRng(seed, 1))
	if err != nil {
		return nil, err
	}

	return &GameState{
		Id:               gameId,
		RoomId:           roomId,
		Phase:            PhaseTurns,
		LevelRank:        levelRank,
		PlayerOrder:      append([]string(nil), playerOrder...),
		Hands:            hands,
		CurrentTurnIndex: 0,
		PassesInRow:      0,
		FinishedOrder:    []string{},
		WinnerTeam:       -1,
		ActionSeq:        0,
		Match: MatchState{
			TeamLevel: [2]Rank{levelRank, levelRank},
			RoundNo:   1,
		},
		PendingActions: []PendingAction{},
		RuleMeta:       DefaultRuleOptions(levelRank),
		Seed:           seed,
	}, nil
}

// CurrentPlayerId 当前出牌玩家
func (gs *GameState) CurrentPlayerId() (string, error) {
	if gs.CurrentTurnIndex < 0 || gs.CurrentTurnIndex >= len(gs.PlayerOrder) {
		return "", fmt.Errorf("%w: %d", ErrInvalidTurn, gs.CurrentTurnIndex)
	}
	return gs.PlayerOrder[gs.CurrentTurnIndex], nil
}

// HasFinished 玩家是否已出完牌
func (gs *GameState) HasFinished(playerId string) bool {
	for _, id := range gs.FinishedOrder {
		if id == playerId {
			return true
		}
	}
	return false
}

// PendingFor 玩家当前待完成的动作
func (gs *GameState) PendingFor(playerId string) (PendingAction, bool) {
	for _, pending := range gs.PendingActions {
		if pending.PlayerId == playerId {
			return pending, true
		}
	}
	return PendingAction{}, false
}

func (gs *GameState) activePlayerCount() int {
	count := 0
	for _, playerId := range gs.PlayerOrder {
		if !gs.HasFinished(playerId) {
			count++
		}
	}
	return count
}

// nextActiveTurnIndex 从 fromIndex 起顺时针找下一个还有牌可出的玩家
func (gs *GameState) nextActiveTurnIndex(fromIndex int) int {
	n := len(gs.PlayerOrder)
	for offset := 1; offset <= n; offset++ {
		idx := (fromIndex + offset) % n
		if !gs.HasFinished(gs.PlayerOrder[idx]) {
			return idx
		}
	}
	return fromIndex
}

// selectHandCards 按 Id 从手牌中取牌
// 先拒绝重复 Id，再校验牌都在手里，返回升序副本
func selectHandCards(hand Cards, cardIds []string) (Cards, error) {
	seen := make(map[string]bool, len(cardIds))
	for _, id := range cardIds {
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCardIds, id)
		}
		seen[id] = true
	}

	lookup := make(map[string]Card, len(hand))
	for _, c := range hand {
		lookup[c.Id] = c
	}

	picked := make(Cards, 0, len(cardIds))
	for _, id := range cardIds {
		c, ok := lookup[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCardNotInHand, id)
		}
		picked = append(picked, c)
	}
	picked.SortAsc()
	return picked, nil
}

func removeCardsByIds(hand Cards, cardIds []string) Cards {
	removed := make(map[string]bool, len(cardIds))
	for _, id := range cardIds {
		removed[id] = true
	}
	out := make(Cards, 0, len(hand))
	for _, c := range hand {
		if !removed[c.Id] {
			out = append(out, c)
		}
	}
	return out
}

// scoreForPattern 日志里记录的启发式分值，手牌越少加成越高
func scoreForPattern(p *Pattern, remainCards int) int {
	base := map[PatternType]int{
		PatternTypeSingle:        1,
		PatternTypePair:          2,
		PatternTypeTrips:         4,
		PatternTypeFullHouse:     6,
		PatternTypeStraight:      5,
		PatternTypeStraightFlush: 12,
		PatternTypePairSeq:       7,
		PatternTypeTripsSeq:      9,
		PatternTypeBomb:          10,
		PatternTypeFourJokers:    15,
	}[p.Type]

	bonus := 27 - remainCards
	if bonus < 0 {
		bonus = 0
	}
	return base + bonus
}

// roundStarterIndex 下一局首出玩家：上一局头游，缺省 0 号位
func (gs *GameState) roundStarterIndex() int {
	if gs.Match.LastRoundResult != nil && len(gs.Match.LastRoundResult.FinishOrder) > 0 {
		starter := gs.Match.LastRoundResult.FinishOrder[0]
		for i, playerId := range gs.PlayerOrder {
			if playerId == starter {
				return i
			}
		}
	}
	return 0
}

// beginNextRound 开启下一局：局号递增、按 (Seed, RoundNo) 重新发牌、清空局内状态
func (gs *GameState) beginNextRound() (*GameState, error) {
	next := gs.Clone()
	next.Match.RoundNo++
	next.Match.PendingTribute = nil
	next.Match.AntiTributeTriggered = false

	starterIndex := next.roundStarterIndex()

	hands, err := dealRoundHands(next.PlayerOrder, dealRng(next.Seed, next.Match.RoundNo))
	if err != nil {
		return nil, err
	}

	next.Hands = hands
	next.Phase = PhaseTurns
	next.LastPlay = nil
	next.PassesInRow = 0
	next.FinishedOrder = []string{}
	next.WinnerTeam = -1
	next.PendingActions = []PendingAction{}
	next.CurrentTurnIndex = starterIndex
	return next, nil
}

// settleRoundAndPrepareNext 结算当前局并立即进入下一局
// 进贡双方按结算时的剩余手牌决定；抗贡看进贡者重新发牌后的新手牌
func (gs *GameState) settleRoundAndPrepareNext() (*GameState, error) {
	next := gs.Clone()
	winnerTeam := next.ResolveWinnerTeam()
	if winnerTeam < 0 {
		return next, nil
	}

	next.WinnerTeam = winnerTeam
	next.Phase = PhaseGameFinish

	result := next.SettleRound(winnerTeam)
	next.Match.ApplyLevelUpgrade(result)

	newLevel := next.Match.TeamLevel[winnerTeam]
	next.LevelRank = newLevel
	next.RuleMeta.LevelRank = newLevel

	donor, receiver, ok := next.ResolveTributeParticipants(winnerTeam)
	if !ok {
		return next.beginNextRound()
	}

	started, err := next.beginNextRound()
	if err != nil {
		return nil, err
	}

	if started.Hands[donor].HasDoubleJokers() {
		started.Match.AntiTributeTriggered = true
		return started, nil
	}

	started.Phase = PhaseTribute
	started.Match.PendingTribute = &TributeState{
		DonorPlayerId:    donor,
		ReceiverPlayerId: receiver,
		Status:           TributePendingGive,
	}
	started.PendingActions = []PendingAction{{PlayerId: donor, Action: ActionTributeGive}}

	for i, playerId := range started.PlayerOrder {
		if playerId == donor {
			started.CurrentTurnIndex = i
			break
		}
	}
	return started, nil
}

func (gs *GameState) newLog(playerId string, typ ActionType, cardIds []string, reasonCode string, scoreDelta int) *ActionLog {
	if cardIds == nil {
		cardIds = []string{}
	}
	return &ActionLog{
		GameId:     gs.Id,
		Seq:        gs.ActionSeq,
		PlayerId:   playerId,
		Type:       typ,
		CardIds:    cardIds,
		ReasonCode: reasonCode,
		ScoreDelta: scoreDelta,
		CreatedAt:  time.Now(),
	}
}

// ApplyPlayerAction 唯一的状态变更入口
// 在完整副本上执行，任何错误都不会影响调用方手里的原状态
func ApplyPlayerAction(state *GameState, playerId string, input ActionInput) (*GameState, *ActionLog, error) {
	switch input.Type {
	case ActionTributeGive, ActionTributeReturn:
		return applyTributeAction(state, playerId, input)
	case ActionPlay, ActionPass, ActionToggleAuto:
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, input.Type)
	}

	next := state.Clone()

	if next.Phase != PhaseTurns {
		return nil, nil, fmt.Errorf("%w: %s", ErrWrongPhase, next.Phase)
	}
	current, err := next.CurrentPlayerId()
	if err != nil {
		return nil, nil, err
	}
	if current != playerId {
		return nil, nil, fmt.Errorf("%w: current player is %s", ErrNotYourTurn, current)
	}

	switch input.Type {
	case ActionPlay:
		return applyPlay(next, playerId, input)
	case ActionPass:
		return applyPass(next, playerId)
	default: // toggle_auto 只记日志，座位托管标记由外部房间层维护
		next.ActionSeq++
		reason := "auto_disabled"
		if input.Enabled {
			reason = "auto_enabled"
		}
		return next, next.newLog(playerId, ActionToggleAuto, nil, reason, 0), nil
	}
}

func applyPlay(next *GameState, playerId string, input ActionInput) (*GameState, *ActionLog, error) {
	if len(input.CardIds) == 0 {
		return nil, nil, ErrEmptyPlay
	}

	hand := next.Hands[playerId]
	cards, err := selectHandCards(hand, input.CardIds)
	if err != nil {
		return nil, nil, err
	}

	pattern := NewPattern(cards, next.RuleMeta)
	if !pattern.IsValid() {
		return nil, nil, ErrInvalidPattern
	}

	// 提交的牌必须等价于某个被枚举出的合法选择，
	// 防止客户端拼出形状合法但万能牌用法不被允许的组合
	legal := false
	for _, move := range GetLegalMoves(next, playerId) {
		if move.Type == ActionPlay && pattern.Equivalent(move.Pattern) {
			legal = true
			break
		}
	}
	if !legal {
		return nil, nil, ErrNotLegalMove
	}

	if next.LastPlay != nil && next.LastPlay.PlayerId != playerId && !pattern.CanBeat(next.LastPlay.Pattern) {
		return nil, nil, ErrCannotBeat
	}

	next.Hands[playerId] = removeCardsByIds(hand, input.CardIds)
	next.LastPlay = &PlayRecord{
		PlayerId: playerId,
		Cards:    cards,
		Pattern:  pattern,
		Seq:      next.ActionSeq + 1,
	}
	next.PassesInRow = 0

	reason := "play_" + pattern.Type.String()
	scoreDelta := scoreForPattern(pattern, len(next.Hands[playerId]))

	if len(next.Hands[playerId]) == 0 && !next.HasFinished(playerId) {
		next.FinishedOrder = append(next.FinishedOrder, playerId)
		reason += "_finish"
	}

	if next.ResolveWinnerTeam() < 0 {
		next.CurrentTurnIndex = next.nextActiveTurnIndex(next.CurrentTurnIndex)
	} else {
		next, err = next.settleRoundAndPrepareNext()
		if err != nil {
			return nil, nil, err
		}
	}

	next.ActionSeq++
	return next, next.newLog(playerId, ActionPlay, input.CardIds, reason, scoreDelta), nil
}

func applyPass(next *GameState, playerId string) (*GameState, *ActionLog, error) {
	if next.LastPlay == nil {
		return nil, nil, ErrPassWithoutPlay
	}
	if next.LastPlay.PlayerId == playerId {
		return nil, nil, ErrLeaderCannotPass
	}

	next.PassesInRow++
	reason := "pass"

	required := next.activePlayerCount() - 1
	if required < 1 {
		required = 1
	}

	if next.PassesInRow >= required {
		// 一圈都过，牌权回到原出牌人；若其已出完则交给下一个还有牌的玩家
		leaderIndex := -1
		for i, id := range next.PlayerOrder {
			if id == next.LastPlay.PlayerId {
				leaderIndex = i
				break
			}
		}
		if leaderIndex >= 0 {
			leaderId := next.PlayerOrder[leaderIndex]
			if next.HasFinished(leaderId) || len(next.Hands[leaderId]) == 0 {
				next.CurrentTurnIndex = next.nextActiveTurnIndex(leaderIndex)
			} else {
				next.CurrentTurnIndex = leaderIndex
			}
		}
		next.LastPlay = nil
		next.PassesInRow = 0
		reason = "trick_reset"
	} else {
		next.CurrentTurnIndex = next.nextActiveTurnIndex(next.CurrentTurnIndex)
	}

	next.ActionSeq++
	return next, next.newLog(playerId, ActionPass, nil, reason, -1), nil
}

func applyTributeAction(state *GameState, playerId string, input ActionInput) (*GameState, *ActionLog, error) {
	next := state.Clone()

	if next.Phase != PhaseTribute {
		return nil, nil, fmt.Errorf("%w: %s", ErrWrongPhase, next.Phase)
	}

	pending, ok := next.PendingFor(playerId)
	if !ok || pending.Action != input.Type {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoPendingTribute, playerId)
	}

	if len(input.CardIds) != 1 {
		return nil, nil, ErrTributeOneCard
	}

	hand := next.Hands[playerId]
	selected, err := selectHandCards(hand, input.CardIds)
	if err != nil {
		return nil, nil, err
	}
	card := selected[0]

	tribute := next.Match.PendingTribute
	var reason string

	switch input.Type {
	case ActionTributeGive:
		if tribute == nil || tribute.DonorPlayerId != playerId {
			return nil, nil, fmt.Errorf("%w: invalid giver", ErrTributeRole)
		}

		max, found := PickMaxCard(hand)
		if !found {
			return nil, nil, ErrCardNotInHand
		}
		if card.Rank.Power() != max.Rank.Power() {
			return nil, nil, fmt.Errorf("%w: max is %s", ErrTributeNotMax, max.Display())
		}

		next.Hands[playerId] = removeCardsByIds(hand, []string{card.Id})
		receiverHand := append(next.Hands[tribute.ReceiverPlayerId].Clone(), card)
		receiverHand.SortAsc()
		next.Hands[tribute.ReceiverPlayerId] = receiverHand

		tribute.Status = TributePendingReturn
		tribute.GivenCard = &card
		next.PendingActions = []PendingAction{{PlayerId: tribute.ReceiverPlayerId, Action: ActionTributeReturn}}
		for i, id := range next.PlayerOrder {
			if id == tribute.ReceiverPlayerId {
				next.CurrentTurnIndex = i
				break
			}
		}
		reason = "tribute_give"

	case ActionTributeReturn:
		if tribute == nil || tribute.ReceiverPlayerId != playerId {
			return nil, nil, fmt.Errorf("%w: invalid receiver", ErrTributeRole)
		}

		next.Hands[playerId] = removeCardsByIds(hand, []string{card.Id})
		donorHand := append(next.Hands[tribute.DonorPlayerId].Clone(), card)
		donorHand.SortAsc()
		next.Hands[tribute.DonorPlayerId] = donorHand

		tribute.Status = TributeCompleted
		tribute.ReturnedCard = &card

		// 还贡完成：回到出牌阶段，手牌不再重发（发牌发生在局初、进贡之前）
		next.PendingActions = []PendingAction{}
		next.Phase = PhaseTurns
		next.LastPlay = nil
		next.PassesInRow = 0
		next.CurrentTurnIndex = next.roundStarterIndex()
		next.Match.PendingTribute = nil
		reason = "tribute_return"
	}

	next.ActionSeq++
	return next, next.newLog(playerId, input.Type, []string{card.Id}, reason, 0), nil
}
