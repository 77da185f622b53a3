package guandan

import (
	"sort"
	"strings"
)

// LegalMove 一个可执行的动作：出一手牌或过牌
type LegalMove struct {
	Type    ActionType `json:"type"`
	Cards   Cards      `json:"cards"`
	Pattern *Pattern   `json:"combo"`
}

// candidateSet 按排序后的 Id 签名去重的候选集合
type candidateSet struct {
	keys  map[string]bool
	cards []Cards
}

func newCandidateSet() *candidateSet {
	return &candidateSet{keys: make(map[string]bool)}
}

func (s *candidateSet) add(cards Cards) {
	if len(cards) == 0 {
		return
	}
	ids := cards.Ids()
	sort.Strings(ids)
	key := strings.Join(ids, "|")
	if s.keys[key] {
		return
	}
	s.keys[key] = true
	s.cards = append(s.cards, cards.Sorted())
}

// buildChainCandidate 从 start 开始取 chainLength 个点数、每个点数 unit 张
// 自然牌不够的槽位用万能牌补，补不齐返回 nil
func buildChainCandidate(byRank map[Rank]Cards, wildcards Cards, start Rank, chainLength, unit int) Cards {
	selected := make(Cards, 0, chainLength*unit)
	wildUsed := 0

	for r := start; r < start+Rank(chainLength); r++ {
		bucket := byRank[r]
		take := len(bucket)
		if take > unit {
			take = unit
		}
		selected = append(selected, bucket[:take]...)

		missing := unit - take
		if missing > 0 {
			if wildUsed+missing > len(wildcards) {
				return nil
			}
			selected = append(selected, wildcards[wildUsed:wildUsed+missing]...)
			wildUsed += missing
		}
	}
	return selected
}

// buildFlushCandidate 组同花顺：指定花色下每个点数取一张，缺口用万能牌补
func buildFlushCandidate(bySuitRank map[Suit]map[Rank]Cards, wildcards Cards, suit Suit, start Rank) Cards {
	suitBucket := bySuitRank[suit]
	if suitBucket == nil {
		return nil
	}

	selected := make(Cards, 0, StraightLength)
	wildUsed := 0
	for r := start; r <= start+4; r++ {
		if bucket := suitBucket[r]; len(bucket) > 0 {
			selected = append(selected, bucket[0])
			continue
		}
		if wildUsed >= len(wildcards) {
			return nil
		}
		selected = append(selected, wildcards[wildUsed])
		wildUsed++
	}
	return selected
}

// CandidatePlays 枚举一手牌能组成的全部候选牌型（未按桌面过滤）
// 覆盖：单张、按点数的对/三/炸、三带对、顺子、同花顺、三连对、钢板、四大天王
// 按排序后的 Id 签名去重
func CandidatePlays(hand Cards, opts RuleOptions) []Cards {
	collector := newCandidateSet()
	sorted := hand.Sorted()

	for _, c := range sorted {
		collector.add(Cards{c})
	}

	wildcards, normals := SplitWildcards(sorted, opts)

	byRank := make(map[Rank]Cards)
	bySuitRank := map[Suit]map[Rank]Cards{
		SuitSpade:   {},
		SuitHeart:   {},
		SuitClub:    {},
		SuitDiamond: {},
	}
	for _, c := range normals {
		byRank[c.Rank] = append(byRank[c.Rank], c)
		if bucket, ok := bySuitRank[c.Suit]; ok {
			bucket[c.Rank] = append(bucket[c.Rank], c)
		}
	}

	// 同点数组合：对子到 8 张炸弹，王牌点数不允许万能牌补
	for r := Rank2; r <= RankRedJoker; r++ {
		bucket := byRank[r]
		for need := 2; need <= 8; need++ {
			natural := len(bucket)
			if natural > need {
				natural = need
			}
			missing := need - natural
			if missing > len(wildcards) {
				continue
			}
			if r >= RankBlackJoker && missing > 0 {
				continue
			}

			cards := append(bucket[:natural:natural], wildcards[:missing]...)
			collector.add(cards)
		}
	}

	// 三带对
	for tripsRank := Rank2; tripsRank <= RankRedJoker; tripsRank++ {
		for pairRank := Rank2; pairRank <= RankRedJoker; pairRank++ {
			if tripsRank == pairRank {
				continue
			}

			tripsBucket := byRank[tripsRank]
			pairBucket := byRank[pairRank]

			tripsNatural := min(3, len(tripsBucket))
			pairNatural := min(2, len(pairBucket))
			tripsMissing := 3 - tripsNatural
			pairMissing := 2 - pairNatural

			if tripsMissing+pairMissing > len(wildcards) {
				continue
			}
			if tripsRank >= RankBlackJoker && tripsMissing > 0 {
				continue
			}
			if pairRank >= RankBlackJoker && pairMissing > 0 {
				continue
			}

			cards := make(Cards, 0, 5)
			cards = append(cards, tripsBucket[:tripsNatural]...)
			cards = append(cards, pairBucket[:pairNatural]...)
			cards = append(cards, wildcards[:tripsMissing]...)
			cards = append(cards, wildcards[tripsMissing:tripsMissing+pairMissing]...)
			collector.add(cards)
		}
	}

	// 顺子
	for start := Rank3; start+4 <= RankA; start++ {
		if cards := buildChainCandidate(byRank, wildcards, start, StraightLength, 1); cards != nil {
			collector.add(cards)
		}
	}

	// 同花顺
	for _, suit := range []Suit{SuitSpade, SuitHeart, SuitClub, SuitDiamond} {
		for start := Rank3; start+4 <= RankA; start++ {
			if cards := buildFlushCandidate(bySuitRank, wildcards, suit, start); cards != nil {
				collector.add(cards)
			}
		}
	}

	// 三连对和钢板，各自顶到张数上限
	for start := Rank3; int(start)+MaxPairSeqChain-1 <= int(RankA); start++ {
		if cards := buildChainCandidate(byRank, wildcards, start, MaxPairSeqChain, 2); cards != nil {
			collector.add(cards)
		}
	}
	for start := Rank3; int(start)+MaxTripsSeqChain-1 <= int(RankA); start++ {
		if cards := buildChainCandidate(byRank, wildcards, start, MaxTripsSeqChain, 3); cards != nil {
			collector.add(cards)
		}
	}

	// 四大天王
	var blacks, reds Cards
	for _, c := range normals {
		switch c.Rank {
		case RankBlackJoker:
			blacks = append(blacks, c)
		case RankRedJoker:
			reds = append(reds, c)
		}
	}
	if len(blacks) >= 2 && len(reds) >= 2 {
		collector.add(append(blacks[:2:2], reds[:2]...))
	}

	return collector.cards
}

// GetLegalMoves 返回玩家当前可执行的动作
// 非出牌阶段、未轮到该玩家或已出完牌时返回空
// 桌面有他人的牌时只保留能压过的候选并追加过牌选项；自己领出时不提供过牌
func GetLegalMoves(state *GameState, playerId string) []LegalMove {
	if state.Phase != PhaseTurns {
		return nil
	}
	current, err := state.CurrentPlayerId()
	if err != nil || current != playerId {
		return nil
	}
	if state.HasFinished(playerId) {
		return nil
	}

	hand := state.Hands[playerId]
	responding := state.LastPlay != nil && state.LastPlay.PlayerId != playerId

	var moves []LegalMove
	for _, cards := range CandidatePlays(hand, state.RuleMeta) {
		pattern := NewPattern(cards, state.RuleMeta)
		if !pattern.IsValid() {
			continue
		}
		if responding && !pattern.CanBeat(state.LastPlay.Pattern) {
			continue
		}
		moves = append(moves, LegalMove{
			Type:    ActionPlay,
			Cards:   cards,
			Pattern: pattern,
		})
	}

	if responding {
		moves = append(moves, LegalMove{Type: ActionPass})
	}
	return moves
}
