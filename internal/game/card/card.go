package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

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

// Card 定义一张牌。花色和点数一经创建不再改变，只有 FaceUp 会翻转。
type Card struct {
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// NumSuits 花色数量
const NumSuits = 4

// AllSuits 按固定顺序列出的全部花色
var AllSuits = [NumSuits]Suit{Hearts, Diamonds, Clubs, Spades}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

var suitNames = map[Suit]string{
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
	Spades:   "spades",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Name returns the lowercase suit name used on the wire and in card IDs.
func (s Suit) Name() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return ""
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Color 由花色推导颜色
func (s Suit) Color() CardColor {
	if s.IsRed() {
		return Red
	}
	return Black
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

// ParseSuit 解析花色名称（hearts/diamonds/clubs/spades，兼容单字母和符号）
func ParseSuit(name string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hearts", "h", "♥":
		return Hearts, nil
	case "diamonds", "d", "♦":
		return Diamonds, nil
	case "clubs", "c", "♣":
		return Clubs, nil
	case "spades", "s", "♠":
		return Spades, nil
	}
	return -1, fmt.Errorf("unknown suit: %q", name)
}

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks 每种花色的点数数量
const NumRanks = 13

var rankNames = map[Rank]string{
	Ace:   "A",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Value returns the ordering value: A=1, numeric ranks at face value, J=11, Q=12, K=13.
func (r Rank) Value() int {
	return int(r)
}

// Valid reports whether r is in Ace..King.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// ParseRank 解析点数字符串（A,2..10,J,Q,K；T 视为 10）
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return Ace, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "T":
		return Ten, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(Two) || n > int(Ten) {
		return -1, fmt.Errorf("unknown rank: %q", s)
	}
	return Rank(n), nil
}

// New 创建一张背面朝上的牌
func New(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r}
}

// ID returns the identity key of the card, e.g. "hearts-A".
func (c Card) ID() string {
	return c.Suit.Name() + "-" + c.Rank.String()
}

// Color 返回牌的颜色
func (c Card) Color() CardColor {
	return c.Suit.Color()
}

// IsRed reports whether the card is red.
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Same reports whether c and o are the same card, ignoring orientation.
func (c Card) Same(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

// Flipped 返回翻面后的副本
func (c Card) Flipped(faceUp bool) Card {
	c.FaceUp = faceUp
	return c
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Deck 定义一组有序的牌，末尾为牌顶
type Deck []Card

// NewDeck 按花色、点数顺序生成 52 张背面朝上的牌
func NewDeck() Deck {
	deck := make(Deck, 0, NumSuits*NumRanks)
	for _, s := range AllSuits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, New(s, r))
		}
	}
	return deck
}

// Shuffle 返回 d 的一个均匀随机排列（Fisher-Yates），不修改原切片
func Shuffle(d Deck, rng *rand.Rand) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NewRand 根据种子创建确定性的随机源
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
