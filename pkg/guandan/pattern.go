package guandan

// PatternType 牌型
type PatternType uint8

const (
	PatternTypeNone          PatternType = iota // 无效牌型
	PatternTypeSingle                           // 单张
	PatternTypePair                             // 对子
	PatternTypeTrips                            // 三同张
	PatternTypeFullHouse                        // 三带对
	PatternTypeStraight                         // 顺子（5张）
	PatternTypeStraightFlush                    // 同花顺（5张）
	PatternTypePairSeq                          // 三连对（6张）
	PatternTypeTripsSeq                         // 钢板/三同连张（6张）
	PatternTypeBomb                             // 炸弹（>=4张同点）
	PatternTypeFourJokers                       // 四大天王
)

var patternTypeNames = map[PatternType]string{
	PatternTypeNone:          "invalid",
	PatternTypeSingle:        "single",
	PatternTypePair:          "pair",
	PatternTypeTrips:         "triple",
	PatternTypeFullHouse:     "triple_with_pair",
	PatternTypeStraight:      "straight",
	PatternTypeStraightFlush: "straight_flush",
	PatternTypePairSeq:       "consecutive_pairs",
	PatternTypeTripsSeq:      "steel",
	PatternTypeBomb:          "bomb",
	PatternTypeFourJokers:    "joker_bomb",
}

func (t PatternType) String() string {
	return patternTypeNames[t]
}

// 顺子固定 5 张；三连对和钢板最多 6 张实牌
const (
	StraightLength    = 5
	MaxPairSeqCards   = 6
	MaxTripsSeqCards  = 6
	MaxPairSeqChain   = MaxPairSeqCards / 2
	MaxTripsSeqChain  = MaxTripsSeqCards / 3
	fourJokersPrimary = 100
)

// Pattern 一手牌的牌型判定结果
// 非无效牌型保证 len(EffectiveRanks) == Length
type Pattern struct {
	Type           PatternType `json:"type"`
	Length         int         `json:"length"`
	MainPoint      int         `json:"primaryRank"`           // 比较主键（权重值）
	ChainLength    int         `json:"chainLength,omitempty"` // 顺子/连对/钢板的连数
	Kickers        []int       `json:"kickerRanks,omitempty"` // 三带对中对子的权重
	WildCount      int         `json:"wildcardCount"`
	EffectiveRanks []int       `json:"effectiveRanks"` // 每张牌（含万能牌替身）实际充当的权重
}

// Clone 复制牌型
func (p *Pattern) Clone() *Pattern {
	if p == nil {
		return nil
	}
	out := *p
	if p.Kickers != nil {
		out.Kickers = append([]int(nil), p.Kickers...)
	}
	if p.EffectiveRanks != nil {
		out.EffectiveRanks = append([]int(nil), p.EffectiveRanks...)
	}
	return &out
}

// IsValid 是否为有效牌型
func (p *Pattern) IsValid() bool {
	return p != nil && p.Type != PatternTypeNone
}

func invalidPattern(length int) *Pattern {
	return &Pattern{Type: PatternTypeNone, Length: length}
}

// isFourJokers 恰好 2 小王 + 2 大王，不允许万能牌顶替
func isFourJokers(cards Cards) bool {
	if len(cards) != 4 {
		return false
	}
	var black, red int
	for _, c := range cards {
		switch c.Rank {
		case RankBlackJoker:
			black++
		case RankRedJoker:
			red++
		}
	}
	return black == 2 && red == 2
}

// allSameRank 判断是否全部为同一有效点数（普通牌 + 万能牌补齐）
// size 为 2 时是对子，3 是三同张，>=4 是炸弹
// 王牌点数（>=16）不允许用万能牌补
func allSameRank(cards Cards, size int, opts RuleOptions) *Pattern {
	if len(cards) != size {
		return nil
	}
	wildcards, normals := SplitWildcards(cards, opts)
	counts := rankCounts(normals)
	if len(counts) > 1 {
		return nil
	}

	useRank := opts.LevelRank // 全是万能牌时按级牌本身算
	for r := range counts {
		useRank = r
	}

	if useRank >= RankBlackJoker && len(wildcards) > 0 {
		return nil
	}
	if counts[useRank]+len(wildcards) != size {
		return nil
	}

	typ := PatternTypeBomb
	switch size {
	case 2:
		typ = PatternTypePair
	case 3:
		typ = PatternTypeTrips
	}

	effective := make([]int, size)
	for i := range effective {
		effective[i] = useRank.Power()
	}
	return &Pattern{
		Type:           typ,
		Length:         size,
		MainPoint:      useRank.Power(),
		WildCount:      len(wildcards),
		EffectiveRanks: effective,
	}
}

// straightLike 判定顺子类牌型
// unit 为每个点数需要的张数：顺子 1、三连对 2、钢板 3
// 张数有硬上限：顺子恰好 5 张，三连对/钢板恰好 6 张，超长一律无效
func straightLike(cards Cards, opts RuleOptions, unit int, typ PatternType) *Pattern {
	total := len(cards)
	switch typ {
	case PatternTypeStraight:
		if total != StraightLength {
			return nil
		}
	case PatternTypePairSeq:
		if total != MaxPairSeqCards {
			return nil
		}
	case PatternTypeTripsSeq:
		if total != MaxTripsSeqCards {
			return nil
		}
	}

	if total%unit != 0 {
		return nil
	}
	chainLength := total / unit

	wildcards, normals := SplitWildcards(cards, opts)
	counts := rankCounts(normals)
	for r := range counts {
		if !chainEligible(r) {
			return nil
		}
	}

	for start := Rank3; int(start)+chainLength-1 <= int(RankA); start++ {
		end := start + Rank(chainLength) - 1

		valid := true
		for r, count := range counts {
			if r < start || r > end {
				valid = false
				break
			}
			if count > unit {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		needed := 0
		for r := start; r <= end; r++ {
			needed += unit - counts[r]
		}
		if needed != len(wildcards) {
			continue
		}

		effective := make([]int, 0, total)
		for r := start; r <= end; r++ {
			for range unit {
				effective = append(effective, r.Power())
			}
		}
		return &Pattern{
			Type:           typ,
			Length:         total,
			MainPoint:      end.Power(), // 连张以最大点数为主键
			ChainLength:    chainLength,
			WildCount:      len(wildcards),
			EffectiveRanks: effective,
		}
	}
	return nil
}

// straightFlush 同花顺：5 张同花色连张，万能牌可补缺口
// 大小王以及 [3,14] 之外的点数一票否决
func straightFlush(cards Cards, opts RuleOptions) *Pattern {
	if len(cards) != StraightLength {
		return nil
	}

	wildcards, normals := SplitWildcards(cards, opts)
	counts := rankCounts(normals)
	var suit Suit
	for _, c := range normals {
		if c.IsJoker() || !chainEligible(c.Rank) {
			return nil
		}
		if suit == SuitNone {
			suit = c.Suit
		} else if c.Suit != suit {
			return nil
		}
		if counts[c.Rank] > 1 {
			return nil
		}
	}

	for start := Rank3; start+4 <= RankA; start++ {
		needed := 0
		for r := start; r <= start+4; r++ {
			needed += 1 - counts[r]
		}
		if needed != len(wildcards) {
			continue
		}

		effective := make([]int, 0, StraightLength)
		for r := start; r <= start+4; r++ {
			effective = append(effective, r.Power())
		}
		return &Pattern{
			Type:           PatternTypeStraightFlush,
			Length:         StraightLength,
			MainPoint:      (start + 4).Power(),
			ChainLength:    StraightLength,
			WildCount:      len(wildcards),
			EffectiveRanks: effective,
		}
	}
	return nil
}

// fullHouse 三带对：穷举三张和对子的点数组合
// 王牌点数的那一组必须全是自然牌，不允许万能牌补
func fullHouse(cards Cards, opts RuleOptions) *Pattern {
	if len(cards) != 5 {
		return nil
	}

	wildcards, normals := SplitWildcards(cards, opts)
	counts := rankCounts(normals)

	for tripsRank := Rank2; tripsRank <= RankRedJoker; tripsRank++ {
		for pairRank := Rank2; pairRank <= RankRedJoker; pairRank++ {
			if tripsRank == pairRank {
				continue
			}

			valid := true
			for r := range counts {
				if r != tripsRank && r != pairRank {
					valid = false
					break
				}
			}
			if !valid {
				continue
			}

			tripsCount := counts[tripsRank]
			pairCount := counts[pairRank]
			if tripsCount > 3 || pairCount > 2 {
				continue
			}
			if tripsRank >= RankBlackJoker && tripsCount < 3 {
				continue
			}
			if pairRank >= RankBlackJoker && pairCount < 2 {
				continue
			}

			needed := (3 - tripsCount) + (2 - pairCount)
			if needed != len(wildcards) {
				continue
			}

			mp := tripsRank.Power()
			sp := pairRank.Power()
			return &Pattern{
				Type:           PatternTypeFullHouse,
				Length:         5,
				MainPoint:      mp,
				Kickers:        []int{sp},
				WildCount:      len(wildcards),
				EffectiveRanks: []int{mp, mp, mp, sp, sp},
			}
		}
	}
	return nil
}

// bomb 炸弹：4 张及以上同一有效点数，王牌点数不构成普通炸弹
func bomb(cards Cards, opts RuleOptions) *Pattern {
	if len(cards) < 4 {
		return nil
	}
	p := allSameRank(cards, len(cards), opts)
	if p == nil || p.Type != PatternTypeBomb {
		return nil
	}
	if p.MainPoint >= int(RankBlackJoker) {
		return nil
	}
	return p
}

// NewPattern 牌型判定，对任意非空牌集返回确定结果
// 判定顺序即优先级，越特殊越靠前，匹配不到任何形状时返回无效牌型
func NewPattern(cards Cards, opts RuleOptions) *Pattern {
	if len(cards) == 0 {
		return invalidPattern(0)
	}

	sorted := cards.Sorted()

	if len(sorted) == 1 {
		c := sorted[0]
		return &Pattern{
			Type:           PatternTypeSingle,
			Length:         1,
			MainPoint:      c.Rank.Power(),
			EffectiveRanks: []int{c.Rank.Power()},
		}
	}

	if isFourJokers(sorted) {
		return &Pattern{
			Type:           PatternTypeFourJokers,
			Length:         4,
			MainPoint:      fourJokersPrimary,
			EffectiveRanks: []int{16, 16, 17, 17},
		}
	}

	if p := straightFlush(sorted, opts); p != nil {
		return p
	}
	if p := bomb(sorted, opts); p != nil {
		return p
	}
	if p := straightLike(sorted, opts, 3, PatternTypeTripsSeq); p != nil {
		return p
	}
	if p := straightLike(sorted, opts, 2, PatternTypePairSeq); p != nil {
		return p
	}
	if p := fullHouse(sorted, opts); p != nil {
		return p
	}
	if p := straightLike(sorted, opts, 1, PatternTypeStraight); p != nil {
		return p
	}
	if p := allSameRank(sorted, 3, opts); p != nil && p.Type == PatternTypeTrips {
		return p
	}
	if p := allSameRank(sorted, 2, opts); p != nil && p.Type == PatternTypePair {
		return p
	}

	return invalidPattern(len(sorted))
}
