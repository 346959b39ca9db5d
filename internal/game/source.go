package game

import (
	"fmt"

	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/game/rule"
)

// SourceKind 牌的来源区域
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceWaste
	SourceTableau
	SourceFoundation
)

var sourceKindNames = map[SourceKind]string{
	SourceNone:       "none",
	SourceWaste:      "waste",
	SourceTableau:    "tableau",
	SourceFoundation: "foundation",
}

func (k SourceKind) String() string {
	return sourceKindNames[k]
}

// Source identifies where a moved card comes from. Use FromWaste, FromColumn
// or FromFoundation to build one; the zero value refers to nothing.
type Source struct {
	kind   SourceKind
	column int
	suit   card.Suit
}

// FromWaste 废牌堆顶
func FromWaste() Source {
	return Source{kind: SourceWaste}
}

// FromColumn 第 i 列（从 0 开始）
func FromColumn(i int) Source {
	return Source{kind: SourceTableau, column: i}
}

// FromFoundation 指定花色的收牌堆顶
func FromFoundation(suit card.Suit) Source {
	return Source{kind: SourceFoundation, suit: suit}
}

func (s Source) Kind() SourceKind { return s.kind }
func (s Source) Column() int      { return s.column }
func (s Source) Suit() card.Suit  { return s.suit }

func (s Source) String() string {
	switch s.kind {
	case SourceWaste:
		return "waste"
	case SourceTableau:
		return fmt.Sprintf("column %d", s.column+1)
	case SourceFoundation:
		return s.suit.Name() + " foundation"
	}
	return "nowhere"
}

// Pick is a face-up card (or a run of face-up cards) lifted from a source.
// It can only be obtained from State.Pick or State.PickRun, so a move can
// never be requested from an empty pile.
type Pick struct {
	cards []card.Card
	from  Source
}

// Card 返回被拿起的最底下一张牌，即要落到目标上的那张
func (p Pick) Card() card.Card { return p.cards[0] }

// Cards 返回被拿起的全部牌，自下而上
func (p Pick) Cards() []card.Card { return p.cards }

// From 返回来源
func (p Pick) From() Source { return p.from }

// Len 返回被拿起的牌数
func (p Pick) Len() int { return len(p.cards) }

// Pick 拿起来源最上面的一张正面朝上的牌。来源为空或牌背面朝上时返回 false。
func (s *State) Pick(from Source) (Pick, bool) {
	top, ok := card.Top(s.pile(from))
	if !ok || !top.FaceUp {
		return Pick{}, false
	}
	return Pick{cards: []card.Card{top}, from: from}, true
}

// PickRun lifts the top count cards of a tableau column. They must all be
// face up and form a descending, alternating run.
func (s *State) PickRun(column, count int) (Pick, bool) {
	col := s.Column(column)
	if count < 1 || count > len(col) {
		return Pick{}, false
	}
	run := col[len(col)-count:]
	if !run[0].FaceUp || !rule.IsSequence(run) {
		return Pick{}, false
	}
	return Pick{cards: run, from: FromColumn(column)}, true
}

// holds reports whether the pick still matches the top of its source in s.
func (s *State) holds(p Pick) bool {
	if len(p.cards) == 0 {
		return false
	}
	pile := s.pile(p.from)
	if len(p.cards) > len(pile) {
		return false
	}
	top := pile[len(pile)-len(p.cards):]
	for i := range top {
		if !top[i].Same(p.cards[i]) || !top[i].FaceUp {
			return false
		}
	}
	return true
}
