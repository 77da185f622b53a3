package guandan

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Suit 牌的花色
type Suit uint8

const (
	SuitNone       Suit = iota
	SuitSpade           // 黑桃
	SuitHeart           // 红桃
	SuitClub            // 梅花
	SuitDiamond         // 方块
	SuitBlackJoker      // 小王
	SuitRedJoker        // 大王
)

var suitLabels = map[Suit]string{
	SuitSpade:      "S",
	SuitHeart:      "H",
	SuitClub:       "C",
	SuitDiamond:    "D",
	SuitBlackJoker: "BJ",
	SuitRedJoker:   "RJ",
}

func (s Suit) String() string {
	return suitLabels[s]
}

// Rank 牌的点数，2-14 为自然点数（11=J 12=Q 13=K 14=A），16/17 为大小王
type Rank uint8

const (
	RankNone       Rank = 0
	Rank2          Rank = 2
	Rank3          Rank = 3
	Rank4          Rank = 4
	Rank5          Rank = 5
	Rank6          Rank = 6
	Rank7          Rank = 7
	Rank8          Rank = 8
	Rank9          Rank = 9
	Rank10         Rank = 10
	RankJ          Rank = 11
	RankQ          Rank = 12
	RankK          Rank = 13
	RankA          Rank = 14
	RankBlackJoker Rank = 16
	RankRedJoker   Rank = 17
)

// Power 返回点数的比较权重
// 2 在同点数比较时压过 A，权重为 15；其余点数权重即点数本身
func (r Rank) Power() int {
	if r == Rank2 {
		return 15
	}
	return int(r)
}

func (r Rank) label() string {
	switch {
	case r <= Rank10:
		return fmt.Sprintf("%d", r)
	case r == RankJ:
		return "J"
	case r == RankQ:
		return "Q"
	case r == RankK:
		return "K"
	case r == RankA:
		return "A"
	case r == RankBlackJoker:
		return "BJ"
	case r == RankRedJoker:
		return "RJ"
	}
	return fmt.Sprintf("%d", r)
}

// Card 代表一张扑克牌，Id 在整副 108 张中唯一
type Card struct {
	Id   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// NewCard
func NewCard(id string, rank Rank, suit Suit) Card {
	return Card{
		Id:   id,
		Rank: rank,
		Suit: suit,
	}
}

// Display 返回展示用的牌面
func (c Card) Display() string {
	if c.Suit == SuitBlackJoker || c.Suit == SuitRedJoker {
		return c.Rank.label()
	}
	return c.Suit.String() + c.Rank.label()
}

// Equal 按 Id 判等
func (c Card) Equal(other Card) bool {
	return c.Id == other.Id
}

type Cards []Card

// Clone 复制一份手牌
func (cs Cards) Clone() Cards {
	if cs == nil {
		return nil
	}
	out := make(Cards, len(cs))
	copy(out, cs)
	return out
}

// Ids 返回全部牌的 Id
func (cs Cards) Ids() []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.Id
	}
	return ids
}

// SortAsc 升序排序（权重、花色、Id），用于稳定展示与比较
func (cs Cards) SortAsc() {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Rank.Power() != b.Rank.Power() {
			return a.Rank.Power() < b.Rank.Power()
		}
		if a.Suit != b.Suit {
			return a.Suit < b.Suit
		}
		return a.Id < b.Id
	})
}

// Sorted 返回升序排序后的副本，原切片不变
func (cs Cards) Sorted() Cards {
	out := cs.Clone()
	out.SortAsc()
	return out
}

// DoubleDeckSize 两副牌的总张数
const DoubleDeckSize = 108

// NewDoubleDeck 生成两副牌共 108 张
// 每副 52 张普通牌 + 大小王各一张
func NewDoubleDeck() Cards {
	cards := make(Cards, 0, DoubleDeckSize)
	suits := []Suit{SuitSpade, SuitHeart, SuitClub, SuitDiamond}

	for deck := range 2 {
		for _, suit := range suits {
			for rank := Rank2; rank <= RankA; rank++ {
				id := fmt.Sprintf("d%d-%s-%d-%d", deck, suit, rank, len(cards))
				cards = append(cards, NewCard(id, rank, suit))
			}
		}
		cards = append(cards, NewCard(fmt.Sprintf("d%d-BJ-%d", deck, len(cards)), RankBlackJoker, SuitBlackJoker))
		cards = append(cards, NewCard(fmt.Sprintf("d%d-RJ-%d", deck, len(cards)), RankRedJoker, SuitRedJoker))
	}
	return cards
}

// Shuffle 洗牌，Fisher–Yates，随机源由调用方注入以便回放
func (cs Cards) Shuffle(rng *rand.Rand) {
	for i := len(cs) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cs[i], cs[j] = cs[j], cs[i]
	}
}

// DealToFour 将整副 108 张按 index mod 4 轮发成 4 手各 27 张
// 每手升序排序后返回
func DealToFour(deck Cards) ([4]Cards, error) {
	var hands [4]Cards
	if len(deck) != DoubleDeckSize {
		return hands, fmt.Errorf("%w: deck has %d cards, want %d", ErrCorruptDeck, len(deck), DoubleDeckSize)
	}

	for i, card := range deck {
		hands[i%4] = append(hands[i%4], card)
	}
	for i := range hands {
		hands[i].SortAsc()
	}
	return hands, nil
}
