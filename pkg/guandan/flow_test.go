package guandan

import "testing"

func flowState(finished []string, hands map[string]Cards) *GameState {
	if hands == nil {
		hands = map[string]Cards{
			"p0": {tc(Rank3, SuitSpade)},
			"p1": {tc(Rank4, SuitSpade)},
			"p2": {tc(Rank5, SuitSpade)},
			"p3": {tc(Rank6, SuitSpade)},
		}
	}
	return &GameState{
		PlayerOrder:   []string{"p0", "p1", "p2", "p3"},
		FinishedOrder: finished,
		Hands:         hands,
		WinnerTeam:    -1,
	}
}

// TestResolveWinnerTeam 胜负判定
func TestResolveWinnerTeam(t *testing.T) {
	tests := []struct {
		name     string
		finished []string
		want     int
	}{
		{"无人完成", nil, -1},
		{"一人完成不分胜负", []string{"p0"}, -1},
		{"双上0队", []string{"p0", "p2"}, 0},
		{"1队先凑齐两人", []string{"p1", "p0", "p3"}, 1},
		{"0队在第三名凑齐", []string{"p0", "p1", "p2"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hands := map[string]Cards{"p0": {}, "p1": {}, "p2": {}, "p3": {}}
			for _, id := range []string{"p0", "p1", "p2", "p3"} {
				found := false
				for _, f := range tt.finished {
					if f == id {
						found = true
					}
				}
				if !found {
					hands[id] = Cards{tc(Rank3, SuitSpade)}
				}
			}
			if got := flowState(tt.finished, hands).ResolveWinnerTeam(); got != tt.want {
				t.Errorf("ResolveWinnerTeam = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("兜底按空手牌判定", func(t *testing.T) {
		hands := map[string]Cards{
			"p0": {}, "p2": {},
			"p1": {tc(Rank4, SuitSpade)}, "p3": {tc(Rank6, SuitSpade)},
		}
		state := flowState(nil, hands)
		if got := state.ResolveWinnerTeam(); got != 0 {
			t.Errorf("ResolveWinnerTeam = %d, want 0", got)
		}
	})
}

// TestSettleRound 结算模式与升级幅度
func TestSettleRound(t *testing.T) {
	tests := []struct {
		name       string
		finished   []string
		winnerTeam int
		wantMode   RoundMode
		wantDelta  Rank
	}{
		{"双上升3级", []string{"p0", "p2", "p1", "p3"}, 0, RoundModeDoubleDown, 3},
		{"一三名升2级", []string{"p0", "p1", "p2", "p3"}, 0, RoundModeSingleDown, 2},
		{"一四名升1级", []string{"p0", "p1", "p3", "p2"}, 0, RoundModeOpponent, 1},
		{"对手队双上", []string{"p1", "p3", "p0", "p2"}, 1, RoundModeDoubleDown, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := flowState(tt.finished, map[string]Cards{"p0": {}, "p1": {}, "p2": {}, "p3": {}})
			result := state.SettleRound(tt.winnerTeam)
			if result.Mode != tt.wantMode {
				t.Errorf("Mode = %s, want %s", result.Mode, tt.wantMode)
			}
			if result.UpgradeDelta != tt.wantDelta {
				t.Errorf("UpgradeDelta = %d, want %d", result.UpgradeDelta, tt.wantDelta)
			}
			if result.WinnerTeam != tt.winnerTeam {
				t.Errorf("WinnerTeam = %d, want %d", result.WinnerTeam, tt.winnerTeam)
			}
		})
	}
}

// TestApplyLevelUpgrade 级牌升级封顶A
func TestApplyLevelUpgrade(t *testing.T) {
	tests := []struct {
		name  string
		level Rank
		delta Rank
		want  Rank
	}{
		{"正常升级", Rank5, 3, Rank8},
		{"升到K", RankJ, 2, RankK},
		{"恰好到A", RankQ, 2, RankA},
		{"超出封顶A", RankK, 3, RankA},
		{"A不再上升", RankA, 1, RankA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchState{TeamLevel: [2]Rank{tt.level, Rank2}}
			m.ApplyLevelUpgrade(&RoundResult{WinnerTeam: 0, UpgradeDelta: tt.delta})
			if m.TeamLevel[0] != tt.want {
				t.Errorf("TeamLevel = %d, want %d", m.TeamLevel[0], tt.want)
			}
			if m.TeamLevel[1] != Rank2 {
				t.Errorf("loser level changed to %d", m.TeamLevel[1])
			}
		})
	}
}

// TestPickMaxCard 进贡最大牌
func TestPickMaxCard(t *testing.T) {
	t.Run("取权重最大", func(t *testing.T) {
		cards := Cards{
			tc(RankA, SuitSpade),
			tc(Rank2, SuitClub), // 权重15
			tc(RankK, SuitHeart),
		}
		max, ok := PickMaxCard(cards)
		if !ok || max.Rank != Rank2 {
			t.Fatalf("max = %v ok=%v, want rank 2", max.Rank, ok)
		}
	})

	t.Run("并列取Id较大", func(t *testing.T) {
		a := NewCard("a-1", RankK, SuitSpade)
		b := NewCard("b-1", RankK, SuitClub)
		max, ok := PickMaxCard(Cards{a, b})
		if !ok || max.Id != "b-1" {
			t.Fatalf("max id = %s, want b-1", max.Id)
		}
	})

	t.Run("空手牌", func(t *testing.T) {
		if _, ok := PickMaxCard(nil); ok {
			t.Fatal("expected ok=false for empty hand")
		}
	})
}

// TestResolveTributeParticipants 进贡双方判定
func TestResolveTributeParticipants(t *testing.T) {
	t.Run("收贡者是获胜队头游", func(t *testing.T) {
		state := flowState([]string{"p2", "p0"}, map[string]Cards{
			"p0": {}, "p2": {},
			"p1": {tc(Rank3, SuitSpade), tc(Rank4, SuitSpade)},
			"p3": {tc(Rank5, SuitSpade)},
		})
		donor, receiver, ok := state.ResolveTributeParticipants(0)
		if !ok {
			t.Fatal("expected tribute participants")
		}
		if receiver != "p2" {
			t.Errorf("receiver = %s, want p2", receiver)
		}
		if donor != "p1" {
			t.Errorf("donor = %s, want p1", donor)
		}
	})

	t.Run("手牌数并列按Id升序", func(t *testing.T) {
		state := flowState([]string{"p0", "p2"}, map[string]Cards{
			"p0": {}, "p2": {},
			"p1": {tc(Rank3, SuitSpade)},
			"p3": {tc(Rank5, SuitSpade)},
		})
		donor, _, ok := state.ResolveTributeParticipants(0)
		if !ok {
			t.Fatal("expected tribute participants")
		}
		if donor != "p1" {
			t.Errorf("donor = %s, want p1", donor)
		}
	})

	t.Run("获胜队无人完成时跳过", func(t *testing.T) {
		state := flowState([]string{"p1"}, nil)
		if _, _, ok := state.ResolveTributeParticipants(0); ok {
			t.Fatal("expected no tribute participants")
		}
	})
}
