package guandan

import "sort"

// sameLengthRequired 这些牌型只有同长度才可比
var sameLengthRequired = map[PatternType]bool{
	PatternTypeStraight:      true,
	PatternTypeStraightFlush: true,
	PatternTypePairSeq:       true,
	PatternTypeTripsSeq:      true,
	PatternTypePair:          true,
	PatternTypeTrips:         true,
	PatternTypeFullHouse:     true,
}

// CanBeat 判断 p 能否压过 target
// target 为 nil 表示首出，任何有效牌型都可以出；无效牌型永远压不了任何牌
// 压制层级：四大天王 > 同花顺/大炸弹 > 炸弹 > 同型比点
func (p *Pattern) CanBeat(target *Pattern) bool {
	if !p.IsValid() {
		return false
	}
	if target == nil || !target.IsValid() {
		return true
	}

	// 四大天王压一切，只有四大天王互相不压
	if p.Type == PatternTypeFourJokers {
		return target.Type != PatternTypeFourJokers
	}
	if target.Type == PatternTypeFourJokers {
		return false
	}

	// 同花顺压 5 张及以下的炸弹，输给 6 张及以上的炸弹
	if p.Type == PatternTypeStraightFlush {
		switch target.Type {
		case PatternTypeStraightFlush:
			return p.MainPoint > target.MainPoint
		case PatternTypeBomb:
			return target.Length <= 5
		}
		return true
	}
	if target.Type == PatternTypeStraightFlush {
		if p.Type == PatternTypeBomb {
			return p.Length >= 6
		}
		return false
	}

	// 炸弹压任何非炸弹
	if p.Type == PatternTypeBomb && target.Type != PatternTypeBomb {
		return true
	}
	if p.Type != PatternTypeBomb && target.Type == PatternTypeBomb {
		return false
	}

	if p.Type != target.Type {
		return false
	}

	// 炸弹之间先比张数再比点数
	if p.Type == PatternTypeBomb {
		if p.Length != target.Length {
			return p.Length > target.Length
		}
		return p.MainPoint > target.MainPoint
	}

	if sameLengthRequired[p.Type] && p.Length != target.Length {
		return false
	}

	return p.MainPoint > target.MainPoint
}

func sortedInts(src []int) []int {
	out := append([]int(nil), src...)
	sort.Ints(out)
	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Equivalent 判断两个牌型是否完全等价
// 类型、长度、主键、连数、带牌和有效点数多重集全部一致才算等价，
// 出牌校验用它来确认提交的牌确实对应某个被枚举出的合法选择
func (p *Pattern) Equivalent(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Type == other.Type &&
		p.Length == other.Length &&
		p.MainPoint == other.MainPoint &&
		p.ChainLength == other.ChainLength &&
		intsEqual(sortedInts(p.Kickers), sortedInts(other.Kickers)) &&
		intsEqual(sortedInts(p.EffectiveRanks), sortedInts(other.EffectiveRanks))
}
