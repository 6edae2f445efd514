package card

import "strconv"

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Hearts   Suit = iota // 红心
	Diamonds             // 方块
	Clubs                // 梅花
	Spades               // 黑桃
)

// suitNames 花色名称映射表
var suitNames = map[Suit]string{
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
	Spades:   "Spades",
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "Suit(" + strconv.Itoa(int(s)) + ")"
}

// Symbol returns the one-rune suit glyph used by the terminal renderer.
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Color reports whether the suit is printed in red or black.
func (s Suit) Color() CardColor {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "Jack",
	RankQ:  "Queen",
	RankK:  "King",
	RankA:  "Ace",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Short returns the compact face label ("2".."10", "J", "Q", "K", "A").
func (r Rank) Short() string {
	if r >= RankJ && r <= RankA {
		return r.String()[:1]
	}
	return r.String()
}

// Suits lists the four suits in deck construction order.
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// Ranks lists the thirteen ranks in deck construction order.
func Ranks() []Rank {
	return []Rank{Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK, RankA}
}

// Card 定义一张牌
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Key is the artwork lookup key, e.g. "Jack_Hearts".
func (c Card) Key() string {
	return c.Rank.String() + "_" + c.Suit.String()
}

// Color 返回牌面颜色
func (c Card) Color() CardColor {
	return c.Suit.Color()
}

// hiLoValues Hi-Lo 记牌法点数表
var hiLoValues = map[Rank]int{
	Rank2:  1,
	Rank3:  1,
	Rank4:  1,
	Rank5:  1,
	Rank6:  1,
	Rank7:  0,
	Rank8:  0,
	Rank9:  0,
	Rank10: -1,
	RankJ:  -1,
	RankQ:  -1,
	RankK:  -1,
	RankA:  -1,
}

// HiLoValue returns the Hi-Lo tag for a rank: +1 for 2-6, 0 for 7-9 and -1 for
// ten-valued cards and aces. Unknown ranks count as 0.
func HiLoValue(r Rank) int {
	return hiLoValues[r]
}
