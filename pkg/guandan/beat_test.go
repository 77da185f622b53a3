package guandan

import "testing"

func mustPattern(t *testing.T, cards Cards, opts RuleOptions) *Pattern {
	t.Helper()
	p := NewPattern(cards, opts)
	if !p.IsValid() {
		t.Fatalf("expected valid pattern, got invalid for %d cards", len(cards))
	}
	return p
}

// TestCanBeat_SameType 同型比点
func TestCanBeat_SameType(t *testing.T) {
	opts := DefaultRuleOptions(Rank2)

	tests := []struct {
		name   string
		mine   Cards
		target Cards
		want   bool
	}{
		{
			"大单张压小单张",
			Cards{tc(RankK, SuitSpade)},
			Cards{tc(Rank9, SuitClub)},
			true,
		},
		{
			"同点单张不相压",
			Cards{tc(Rank9, SuitSpade)},
			Cards{tc(Rank9, SuitClub)},
			false,
		},
		{
			"2的单张权重15压K",
			Cards{tc(Rank2, SuitSpade)},
			Cards{tc(RankK, SuitClub)},
			true,
		},
		{
			"大王压小王",
			Cards{tc(RankRedJoker, SuitRedJoker)},
			Cards{tc(RankBlackJoker, SuitBlackJoker)},
			true,
		},
		{
			"对子压对子",
			Cards{tc(RankQ, SuitSpade), tc(RankQ, SuitClub)},
			Cards{tc(Rank8, SuitSpade), tc(Rank8, SuitHeart)},
			true,
		},
		{
			"对子压不了三同张",
			Cards{tc(RankA, SuitSpade), tc(RankA, SuitClub)},
			Cards{tc(Rank3, SuitSpade), tc(Rank3, SuitClub), tc(Rank3, SuitDiamond)},
			false,
		},
		{
			"三带对比三张点数",
			Cards{
				tc(Rank10, SuitSpade), tc(Rank10, SuitClub), tc(Rank10, SuitDiamond),
				tc(Rank3, SuitSpade), tc(Rank3, SuitHeart),
			},
			Cards{
				tc(Rank8, SuitSpade), tc(Rank8, SuitClub), tc(Rank8, SuitDiamond),
				tc(RankA, SuitSpade), tc(RankA, SuitHeart),
			},
			true,
		},
		{
			"顺子比最大点数",
			Cards{
				tc(Rank5, SuitSpade), tc(Rank6, SuitClub), tc(Rank7, SuitDiamond),
				tc(Rank8, SuitSpade), tc(Rank9, SuitHeart),
			},
			Cards{
				tc(Rank3, SuitSpade), tc(Rank4, SuitClub), tc(Rank5, SuitDiamond),
				tc(Rank6, SuitSpade), tc(Rank7, SuitHeart),
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mine := mustPattern(t, tt.mine, opts)
			target := mustPattern(t, tt.target, opts)
			if got := mine.CanBeat(target); got != tt.want {
				t.Errorf("CanBeat = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCanBeat_Hierarchy 压制层级
func TestCanBeat_Hierarchy(t *testing.T) {
	opts := DefaultRuleOptions(Rank2)

	single := mustPattern(t, Cards{tc(RankA, SuitSpade)}, opts)
	bomb4 := mustPattern(t, Cards{
		tc(Rank5, SuitSpade), tc(Rank5, SuitClub), tc(Rank5, SuitDiamond), tc(Rank5, SuitHeart),
	}, opts)
	bomb5 := mustPattern(t, Cards{
		tc(Rank4, SuitSpade), tc(Rank4, SuitClub), tc(Rank4, SuitDiamond),
		tc(Rank4, SuitHeart), tc(Rank4, SuitSpade),
	}, opts)
	bomb6 := mustPattern(t, Cards{
		tc(Rank3, SuitSpade), tc(Rank3, SuitClub), tc(Rank3, SuitDiamond),
		tc(Rank3, SuitHeart), tc(Rank3, SuitSpade), tc(Rank3, SuitClub),
	}, opts)
	sf := mustPattern(t, Cards{
		tc(Rank3, SuitHeart), tc(Rank4, SuitHeart), tc(Rank5, SuitHeart),
		tc(Rank6, SuitHeart), tc(Rank7, SuitHeart),
	}, opts)
	sfBig := mustPattern(t, Cards{
		tc(Rank10, SuitClub), tc(RankJ, SuitClub), tc(RankQ, SuitClub),
		tc(RankK, SuitClub), tc(RankA, SuitClub),
	}, opts)
	jokers := mustPattern(t, Cards{
		tc(RankBlackJoker, SuitBlackJoker), tc(RankBlackJoker, SuitBlackJoker),
		tc(RankRedJoker, SuitRedJoker), tc(RankRedJoker, SuitRedJoker),
	}, opts)

	tests := []struct {
		name   string
		mine   *Pattern
		target *Pattern
		want   bool
	}{
		{"炸弹压单张", bomb4, single, true},
		{"单张压不了炸弹", single, bomb4, false},
		{"五张炸弹压四张炸弹", bomb5, bomb4, true},
		{"四张炸弹压不了五张", bomb4, bomb5, false},
		{"同花顺压五张炸弹", sf, bomb5, true},
		{"同花顺压不了六张炸弹", sf, bomb6, false},
		{"六张炸弹压同花顺", bomb6, sf, true},
		{"五张炸弹压不了同花顺", bomb5, sf, false},
		{"同花顺之间比点", sfBig, sf, true},
		{"四大天王压六张炸弹", jokers, bomb6, true},
		{"四大天王压同花顺", jokers, sfBig, true},
		{"六张炸弹压不了四大天王", bomb6, jokers, false},
		{"四大天王互不相压", jokers, jokers, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mine.CanBeat(tt.target); got != tt.want {
				t.Errorf("CanBeat = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCanBeat_Lead 首出与无效牌型
func TestCanBeat_Lead(t *testing.T) {
	opts := DefaultRuleOptions(Rank2)
	single := mustPattern(t, Cards{tc(Rank3, SuitSpade)}, opts)

	if !single.CanBeat(nil) {
		t.Error("首出时任何有效牌型都应可出")
	}

	bad := NewPattern(Cards{tc(Rank3, SuitSpade), tc(Rank9, SuitClub)}, opts)
	if bad.CanBeat(nil) {
		t.Error("无效牌型不可首出")
	}
	if bad.CanBeat(single) {
		t.Error("无效牌型不可跟牌")
	}
	if !single.CanBeat(bad) {
		t.Error("目标无效时视同首出")
	}
}

// TestEquivalent 牌型等价判定
func TestEquivalent(t *testing.T) {
	opts := DefaultRuleOptions(Rank6)

	a := mustPattern(t, Cards{tc(Rank9, SuitSpade), tc(Rank9, SuitClub)}, opts)
	b := mustPattern(t, Cards{tc(Rank9, SuitDiamond), tc(Rank9, SuitHeart)}, opts)
	if !a.Equivalent(b) {
		t.Error("不同花色的同点对子应等价")
	}

	wild := mustPattern(t, Cards{tc(Rank9, SuitSpade), tc(Rank6, SuitHeart)}, opts)
	if !a.Equivalent(wild) {
		t.Error("万能牌拼出的同点对子应等价")
	}

	c := mustPattern(t, Cards{tc(Rank10, SuitSpade), tc(Rank10, SuitClub)}, opts)
	if a.Equivalent(c) {
		t.Error("点数不同不应等价")
	}

	var nilP *Pattern
	if nilP.Equivalent(a) || a.Equivalent(nilP) {
		t.Error("nil 与非 nil 不应等价")
	}
	if !nilP.Equivalent(nil) {
		t.Error("双 nil 应等价")
	}
}
