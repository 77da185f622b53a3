package guandan

// RuleOptions 本局规则参数
type RuleOptions struct {
	LevelRank       Rank `json:"levelRank"`       // 当前级牌
	WildcardEnabled bool `json:"wildcardEnabled"` // 是否启用万能牌（红桃级牌）
}

// DefaultRuleOptions 默认规则：启用万能牌
func DefaultRuleOptions(levelRank Rank) RuleOptions {
	return RuleOptions{
		LevelRank:       levelRank,
		WildcardEnabled: true,
	}
}

// IsJoker 判断是否为大小王
func (c Card) IsJoker() bool {
	return c.Rank == RankBlackJoker || c.Rank == RankRedJoker
}

// IsWild 判断是否为万能牌（红桃级牌），大小王永远不是万能牌
func (c Card) IsWild(opts RuleOptions) bool {
	return opts.WildcardEnabled && c.Suit == SuitHeart && c.Rank == opts.LevelRank
}

// SplitWildcards 分离万能牌和普通牌，保持原有顺序
func SplitWildcards(cards Cards, opts RuleOptions) (wildcards, normals Cards) {
	for _, c := range cards {
		if c.IsWild(opts) {
			wildcards = append(wildcards, c)
		} else {
			normals = append(normals, c)
		}
	}
	return
}

// HasDoubleJokers 是否同时持有大王和小王
// 用于抗贡判定：重新发牌后进贡者若持双王则免贡
func (cs Cards) HasDoubleJokers() bool {
	var hasBlack, hasRed bool
	for _, c := range cs {
		switch c.Rank {
		case RankBlackJoker:
			hasBlack = true
		case RankRedJoker:
			hasRed = true
		}
	}
	return hasBlack && hasRed
}

// rankCounts 统计各点数的张数
func rankCounts(cards Cards) map[Rank]int {
	counts := make(map[Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// chainEligible 点数是否能作为顺子/连对/钢板的自然锚点
// 只有 [3,14] 区间内的点数可以，2、级牌替身和大小王都不行
func chainEligible(r Rank) bool {
	return r >= Rank3 && r <= RankA
}
