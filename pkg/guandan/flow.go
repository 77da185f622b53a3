package guandan

import "sort"

// MaxLevelRank 级牌封顶为 A
const MaxLevelRank = RankA

// RoundMode 单局结算模式
type RoundMode string

const (
	RoundModeDoubleDown RoundMode = "double_down" // 双上（1,2名）升3级
	RoundModeSingleDown RoundMode = "single_down" // 1,3名 升2级
	RoundModeOpponent   RoundMode = "opponent"    // 1,4名 升1级
)

// RoundResult 单局结算结果
type RoundResult struct {
	WinnerTeam   int       `json:"winnerTeam"`
	Mode         RoundMode `json:"mode"`
	FinishOrder  []string  `json:"finishOrder"`
	UpgradeDelta Rank      `json:"upgradeDelta"`
}

// Clone 复制结算结果
func (r *RoundResult) Clone() *RoundResult {
	if r == nil {
		return nil
	}
	out := *r
	out.FinishOrder = append([]string(nil), r.FinishOrder...)
	return &out
}

// TeamForSeat 座位到队伍的映射，0、2 号位为 0 队，1、3 号位为 1 队
func TeamForSeat(seatIndex int) int {
	return seatIndex % 2
}

// TeamForPlayer 返回玩家所在队伍，未入座返回 -1
func (gs *GameState) TeamForPlayer(playerId string) int {
	for i, id := range gs.PlayerOrder {
		if id == playerId {
			return TeamForSeat(i)
		}
	}
	return -1
}

// ResolveWinnerTeam 判定获胜队伍，未分胜负返回 -1
// 主规则：一队两人都进入完成序列
// 兜底：一队手牌全部为空（防御外部注入的状态，正常流程走不到）
func (gs *GameState) ResolveWinnerTeam() int {
	finished := [2]int{}
	for _, playerId := range gs.FinishedOrder {
		if team := gs.TeamForPlayer(playerId); team >= 0 {
			finished[team]++
		}
	}
	for team := range 2 {
		if finished[team] >= 2 {
			return team
		}
	}

	for team := range 2 {
		empty := true
		for i, playerId := range gs.PlayerOrder {
			if TeamForSeat(i) != team {
				continue
			}
			if len(gs.Hands[playerId]) > 0 {
				empty = false
				break
			}
		}
		if empty {
			return team
		}
	}
	return -1
}

// modeBySecondFinisher 按获胜队第二名的完成名次定模式
func modeBySecondFinisher(pos int) RoundMode {
	switch {
	case pos <= 2:
		return RoundModeDoubleDown
	case pos == 3:
		return RoundModeSingleDown
	default:
		return RoundModeOpponent
	}
}

func (m RoundMode) upgradeDelta() Rank {
	switch m {
	case RoundModeDoubleDown:
		return 3
	case RoundModeSingleDown:
		return 2
	default:
		return 1
	}
}

// SettleRound 生成本局结算结果
func (gs *GameState) SettleRound(winnerTeam int) *RoundResult {
	var winnerRanks []int
	for i, playerId := range gs.PlayerOrder {
		if TeamForSeat(i) != winnerTeam {
			continue
		}
		for pos, finished := range gs.FinishedOrder {
			if finished == playerId {
				winnerRanks = append(winnerRanks, pos+1)
			}
		}
	}
	sort.Ints(winnerRanks)

	secondPos := 4
	if len(winnerRanks) >= 2 {
		secondPos = winnerRanks[1]
	}
	mode := modeBySecondFinisher(secondPos)

	return &RoundResult{
		WinnerTeam:   winnerTeam,
		Mode:         mode,
		FinishOrder:  append([]string(nil), gs.FinishedOrder...),
		UpgradeDelta: mode.upgradeDelta(),
	}
}

// ApplyLevelUpgrade 把结算结果折算进队伍级牌，封顶 A
func (m *MatchState) ApplyLevelUpgrade(result *RoundResult) {
	level := m.TeamLevel[result.WinnerTeam] + result.UpgradeDelta
	if level > MaxLevelRank {
		level = MaxLevelRank
	}
	m.TeamLevel[result.WinnerTeam] = level
	m.LastRoundResult = result
}

// PickMaxCard 返回权重最大的一张牌，点数并列时取 Id 较大者
// 进贡校验用：进贡必须交出手里权重最大的牌（并列任选其一）
func PickMaxCard(cards Cards) (Card, bool) {
	if len(cards) == 0 {
		return Card{}, false
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank.Power() > best.Rank.Power() ||
			(c.Rank.Power() == best.Rank.Power() && c.Id > best.Id) {
			best = c
		}
	}
	return best, true
}

// ResolveTributeParticipants 计算进贡双方
// 收贡者：获胜队在上一局完成序列中最靠前的玩家
// 进贡者：失败队重新发牌后手牌较多的玩家，并列按 Id 升序取第一个
// 找不到合法双方时返回 false，进贡直接跳过
func (gs *GameState) ResolveTributeParticipants(winnerTeam int) (donor, receiver string, ok bool) {
	for _, playerId := range gs.FinishedOrder {
		if gs.TeamForPlayer(playerId) == winnerTeam {
			receiver = playerId
			break
		}
	}
	if receiver == "" {
		return "", "", false
	}

	loserTeam := 1 - winnerTeam
	var losers []string
	for i, playerId := range gs.PlayerOrder {
		if TeamForSeat(i) == loserTeam {
			losers = append(losers, playerId)
		}
	}
	if len(losers) != 2 {
		return "", "", false
	}

	sort.Slice(losers, func(i, j int) bool {
		ci, cj := len(gs.Hands[losers[i]]), len(gs.Hands[losers[j]])
		if ci != cj {
			return ci > cj
		}
		return losers[i] < losers[j]
	})
	return losers[0], receiver, true
}
