package guandan

import (
	"fmt"
	"testing"
)

var testCardSeq int

// tc 构造测试用牌，Id 自动生成
func tc(rank Rank, suit Suit) Card {
	testCardSeq++
	return NewCard(fmt.Sprintf("t-%d-%d-%d", rank, suit, testCardSeq), rank, suit)
}

func opts6() RuleOptions {
	return DefaultRuleOptions(Rank6)
}

// TestNewPattern_Single 测试单张
func TestNewPattern_Single(t *testing.T) {
	tests := []struct {
		name      string
		card      Card
		wantPoint int
	}{
		{"单张3", tc(Rank3, SuitSpade), 3},
		{"单张2权重15", tc(Rank2, SuitSpade), 15},
		{"单张A", tc(RankA, SuitDiamond), 14},
		{"单张万能牌按本身点数", tc(Rank6, SuitHeart), 6},
		{"单张小王", tc(RankBlackJoker, SuitBlackJoker), 16},
		{"单张大王", tc(RankRedJoker, SuitRedJoker), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPattern(Cards{tt.card}, opts6())
			if p.Type != PatternTypeSingle {
				t.Fatalf("Type = %v, want single", p.Type)
			}
			if p.MainPoint != tt.wantPoint {
				t.Errorf("MainPoint = %d, want %d", p.MainPoint, tt.wantPoint)
			}
			if len(p.EffectiveRanks) != p.Length {
				t.Errorf("effective ranks length %d != %d", len(p.EffectiveRanks), p.Length)
			}
		})
	}
}

// TestNewPattern_PairTrips 测试对子和三同张
func TestNewPattern_PairTrips(t *testing.T) {
	tests := []struct {
		name      string
		cards     Cards
		wantType  PatternType
		wantPoint int
		wantWild  int
	}{
		{"普通对子", Cards{tc(Rank9, SuitSpade), tc(Rank9, SuitClub)}, PatternTypePair, 9, 0},
		{"万能牌配对", Cards{tc(Rank9, SuitSpade), tc(Rank6, SuitHeart)}, PatternTypePair, 9, 1},
		{"双万能牌成对", Cards{tc(Rank6, SuitHeart), tc(Rank6, SuitHeart)}, PatternTypePair, 6, 2},
		{"小王对子", Cards{tc(RankBlackJoker, SuitBlackJoker), tc(RankBlackJoker, SuitBlackJoker)}, PatternTypePair, 16, 0},
		{"万能牌不能配王", Cards{tc(RankBlackJoker, SuitBlackJoker), tc(Rank6, SuitHeart)}, PatternTypeNone, 0, 0},
		{"三同张", Cards{tc(Rank7, SuitSpade), tc(Rank7, SuitClub), tc(Rank7, SuitDiamond)}, PatternTypeTrips, 7, 0},
		{"万能牌补三张", Cards{tc(Rank7, SuitSpade), tc(Rank7, SuitClub), tc(Rank6, SuitHeart)}, PatternTypeTrips, 7, 1},
		{"杂牌无效", Cards{tc(Rank7, SuitSpade), tc(Rank8, SuitClub)}, PatternTypeNone, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPattern(tt.cards, opts6())
			if p.Type != tt.wantType {
				t.Fatalf("Type = %v, want %v", p.Type, tt.wantType)
			}
			if tt.wantType == PatternTypeNone {
				return
			}
			if p.MainPoint != tt.wantPoint {
				t.Errorf("MainPoint = %d, want %d", p.MainPoint, tt.wantPoint)
			}
			if p.WildCount != tt.wantWild {
				t.Errorf("WildCount = %d, want %d", p.WildCount, tt.wantWild)
			}
		})
	}
}

// TestNewPattern_FullHouse 测试三带对
func TestNewPattern_FullHouse(t *testing.T) {
	t.Run("级牌6时 777+红桃6+9 判为三带对", func(t *testing.T) {
		cards := Cards{
			tc(Rank7, SuitSpade),
			tc(Rank7, SuitDiamond),
			tc(Rank7, SuitClub),
			tc(Rank6, SuitHeart), // 万能牌
			tc(Rank9, SuitDiamond),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeFullHouse {
			t.Fatalf("Type = %v, want full house", p.Type)
		}
		if p.WildCount != 1 {
			t.Errorf("WildCount = %d, want 1", p.WildCount)
		}
		if p.MainPoint != 7 {
			t.Errorf("MainPoint = %d, want 7", p.MainPoint)
		}
		if len(p.Kickers) != 1 || p.Kickers[0] != 9 {
			t.Errorf("Kickers = %v, want [9]", p.Kickers)
		}
	})

	t.Run("自然三带对", func(t *testing.T) {
		cards := Cards{
			tc(Rank9, SuitSpade), tc(Rank9, SuitClub), tc(Rank9, SuitDiamond),
			tc(Rank4, SuitSpade), tc(Rank4, SuitHeart),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeFullHouse || p.MainPoint != 9 {
			t.Fatalf("got %v/%d, want full house/9", p.Type, p.MainPoint)
		}
	})
}

// TestNewPattern_Straight 测试顺子与长度上限
func TestNewPattern_Straight(t *testing.T) {
	t.Run("普通顺子", func(t *testing.T) {
		straight := Cards{
			tc(Rank3, SuitSpade), tc(Rank4, SuitClub), tc(Rank5, SuitDiamond),
			tc(Rank6, SuitSpade), tc(Rank7, SuitHeart),
		}
		p := NewPattern(straight, opts6())
		if p.Type != PatternTypeStraight {
			t.Fatalf("Type = %v, want straight", p.Type)
		}
		if p.MainPoint != 7 || p.ChainLength != 5 {
			t.Errorf("MainPoint/Chain = %d/%d, want 7/5", p.MainPoint, p.ChainLength)
		}
	})

	t.Run("万能牌补顺", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank4, SuitClub), tc(Rank6, SuitHeart),
			tc(Rank5, SuitDiamond), tc(Rank7, SuitHeart),
		}
		// 红桃6是万能牌，窗口 3-7 缺 6 用它补
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeStraight {
			t.Fatalf("Type = %v, want straight", p.Type)
		}
		if p.WildCount != 1 {
			t.Errorf("WildCount = %d, want 1", p.WildCount)
		}
	})

	t.Run("6张不是长顺子而是无效", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank4, SuitClub), tc(Rank5, SuitDiamond),
			tc(Rank7, SuitSpade), tc(Rank8, SuitHeart), tc(Rank9, SuitClub),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeNone {
			t.Fatalf("Type = %v, want invalid", p.Type)
		}
	})

	t.Run("2不能进顺子", func(t *testing.T) {
		cards := Cards{
			tc(Rank2, SuitSpade), tc(Rank3, SuitClub), tc(Rank4, SuitDiamond),
			tc(Rank5, SuitSpade), tc(Rank7, SuitHeart), // 没有6，红桃7不是万能牌
		}
		p := NewPattern(cards, DefaultRuleOptions(Rank10))
		if p.Type != PatternTypeNone {
			t.Fatalf("Type = %v, want invalid", p.Type)
		}
	})
}

// TestNewPattern_StraightFlush 测试同花顺
func TestNewPattern_StraightFlush(t *testing.T) {
	t.Run("自然同花顺", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank4, SuitSpade), tc(Rank5, SuitSpade),
			tc(Rank6, SuitSpade), tc(Rank7, SuitSpade),
		}
		p := NewPattern(cards, DefaultRuleOptions(Rank10))
		if p.Type != PatternTypeStraightFlush {
			t.Fatalf("Type = %v, want straight flush", p.Type)
		}
		if p.MainPoint != 7 {
			t.Errorf("MainPoint = %d, want 7", p.MainPoint)
		}
	})

	t.Run("万能牌补同花顺", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank4, SuitSpade), tc(Rank6, SuitHeart),
			tc(Rank6, SuitSpade), tc(Rank7, SuitSpade),
		}
		// 黑桃 3 4 6 7 + 万能牌补 5
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeStraightFlush {
			t.Fatalf("Type = %v, want straight flush", p.Type)
		}
		if p.WildCount != 1 {
			t.Errorf("WildCount = %d, want 1", p.WildCount)
		}
	})

	t.Run("花色不齐只是顺子", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank4, SuitSpade), tc(Rank5, SuitClub),
			tc(Rank6, SuitSpade), tc(Rank7, SuitSpade),
		}
		p := NewPattern(cards, DefaultRuleOptions(Rank10))
		if p.Type != PatternTypeStraight {
			t.Fatalf("Type = %v, want straight", p.Type)
		}
	})
}

// TestNewPattern_Seq 测试三连对和钢板
func TestNewPattern_Seq(t *testing.T) {
	t.Run("三连对", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank3, SuitClub),
			tc(Rank4, SuitSpade), tc(Rank4, SuitDiamond),
			tc(Rank5, SuitSpade), tc(Rank5, SuitHeart),
		}
		p := NewPattern(cards, DefaultRuleOptions(Rank10))
		if p.Type != PatternTypePairSeq {
			t.Fatalf("Type = %v, want pair seq", p.Type)
		}
		if p.MainPoint != 5 || p.ChainLength != 3 {
			t.Errorf("MainPoint/Chain = %d/%d, want 5/3", p.MainPoint, p.ChainLength)
		}
	})

	t.Run("万能牌补三连对", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank3, SuitClub),
			tc(Rank4, SuitSpade), tc(Rank4, SuitDiamond),
			tc(Rank5, SuitSpade), tc(Rank6, SuitHeart),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypePairSeq || p.WildCount != 1 {
			t.Fatalf("got %v wild=%d, want pair seq wild=1", p.Type, p.WildCount)
		}
	})

	t.Run("钢板", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank3, SuitClub), tc(Rank3, SuitDiamond),
			tc(Rank4, SuitSpade), tc(Rank4, SuitClub), tc(Rank4, SuitHeart),
		}
		p := NewPattern(cards, DefaultRuleOptions(Rank10))
		if p.Type != PatternTypeTripsSeq {
			t.Fatalf("Type = %v, want steel", p.Type)
		}
		if p.MainPoint != 4 || p.ChainLength != 2 {
			t.Errorf("MainPoint/Chain = %d/%d, want 4/2", p.MainPoint, p.ChainLength)
		}
	})

	t.Run("8张连对无效", func(t *testing.T) {
		cards := Cards{
			tc(Rank3, SuitSpade), tc(Rank3, SuitClub),
			tc(Rank4, SuitSpade), tc(Rank4, SuitDiamond),
			tc(Rank5, SuitSpade), tc(Rank5, SuitHeart),
			tc(Rank6, SuitSpade), tc(Rank6, SuitDiamond),
		}
		p := NewPattern(cards, DefaultRuleOptions(Rank10))
		if p.Type != PatternTypeNone {
			t.Fatalf("Type = %v, want invalid", p.Type)
		}
	})
}

// TestNewPattern_Bomb 测试炸弹
func TestNewPattern_Bomb(t *testing.T) {
	t.Run("四张炸弹", func(t *testing.T) {
		cards := Cards{
			tc(Rank9, SuitSpade), tc(Rank9, SuitClub),
			tc(Rank9, SuitDiamond), tc(Rank9, SuitHeart),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeBomb || p.Length != 4 || p.MainPoint != 9 {
			t.Fatalf("got %v/%d/%d, want bomb/4/9", p.Type, p.Length, p.MainPoint)
		}
	})

	t.Run("万能牌补五张炸弹", func(t *testing.T) {
		cards := Cards{
			tc(Rank9, SuitSpade), tc(Rank9, SuitClub),
			tc(Rank9, SuitDiamond), tc(Rank9, SuitHeart), tc(Rank6, SuitHeart),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeBomb || p.Length != 5 || p.WildCount != 1 {
			t.Fatalf("got %v/%d wild=%d, want bomb/5 wild=1", p.Type, p.Length, p.WildCount)
		}
	})

	t.Run("2的炸弹权重15", func(t *testing.T) {
		cards := Cards{
			tc(Rank2, SuitSpade), tc(Rank2, SuitClub),
			tc(Rank2, SuitDiamond), tc(Rank2, SuitHeart),
		}
		p := NewPattern(cards, opts6())
		if p.Type != PatternTypeBomb || p.MainPoint != 15 {
			t.Fatalf("got %v/%d, want bomb/15", p.Type, p.MainPoint)
		}
	})
}

// TestNewPattern_FourJokers 测试四大天王
func TestNewPattern_FourJokers(t *testing.T) {
	cards := Cards{
		tc(RankBlackJoker, SuitBlackJoker), tc(RankBlackJoker, SuitBlackJoker),
		tc(RankRedJoker, SuitRedJoker), tc(RankRedJoker, SuitRedJoker),
	}
	p := NewPattern(cards, DefaultRuleOptions(Rank2))
	if p.Type != PatternTypeFourJokers {
		t.Fatalf("Type = %v, want four jokers", p.Type)
	}
	if p.MainPoint != fourJokersPrimary {
		t.Errorf("MainPoint = %d, want %d", p.MainPoint, fourJokersPrimary)
	}
}

// TestNewPattern_Total 任意牌集都有确定结果，不匹配任何形状时无效
func TestNewPattern_Total(t *testing.T) {
	junk := Cards{
		tc(Rank3, SuitSpade), tc(Rank5, SuitClub), tc(Rank9, SuitDiamond),
		tc(RankJ, SuitSpade), tc(RankK, SuitHeart), tc(Rank2, SuitClub),
		tc(RankBlackJoker, SuitBlackJoker),
	}
	p := NewPattern(junk, opts6())
	if p.Type != PatternTypeNone {
		t.Fatalf("Type = %v, want invalid", p.Type)
	}
	if p.Length != len(junk) {
		t.Errorf("Length = %d, want %d", p.Length, len(junk))
	}

	if got := NewPattern(nil, opts6()); got.Type != PatternTypeNone {
		t.Errorf("empty input should be invalid, got %v", got.Type)
	}
}
