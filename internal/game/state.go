package game

import (
	"slices"

	"github.com/palemoky/klondike/internal/game/card"
)

// NumColumns 桌面列数
const NumColumns = 7

// Foundations 四个收牌堆，按花色索引
type Foundations [card.NumSuits][]card.Card

// Tableau 七列桌面牌，每列末尾为最上面的牌
type Tableau [NumColumns][]card.Card

// State 一局游戏在某一时刻的完整快照。
// 引擎的每个操作都返回新的 State，调用方不应原地修改。
type State struct {
	Deck        card.Deck   `json:"deck"`
	Waste       []card.Card `json:"waste"`
	Foundations Foundations `json:"foundations"`
	Tableau     Tableau     `json:"tableau"`
	Score       int         `json:"score"`
	Moves       int         `json:"moves"`
	Won         bool        `json:"won"`
	Seed        uint64      `json:"seed"`

	// History holds prior snapshots, oldest first. Snapshots never carry
	// history of their own.
	History []*State `json:"-"`
}

// Foundation 返回指定花色的收牌堆
func (s *State) Foundation(suit card.Suit) []card.Card {
	if !suit.Valid() {
		return nil
	}
	return s.Foundations[suit]
}

// Column 返回指定列，越界时返回 nil
func (s *State) Column(i int) []card.Card {
	if i < 0 || i >= NumColumns {
		return nil
	}
	return s.Tableau[i]
}

// Top 返回来源牌堆最上面的牌（不论正反面）
func (s *State) Top(from Source) (card.Card, bool) {
	return card.Top(s.pile(from))
}

// CanUndo reports whether there is a snapshot to return to.
func (s *State) CanUndo() bool {
	return len(s.History) > 0
}

// CardCount 返回所有区域中的牌数总和
func (s *State) CardCount() int {
	n := len(s.Deck) + len(s.Waste)
	for _, pile := range s.Foundations {
		n += len(pile)
	}
	for _, col := range s.Tableau {
		n += len(col)
	}
	return n
}

// pile 返回来源对应的切片（共享底层数组，只读）
func (s *State) pile(from Source) []card.Card {
	switch from.kind {
	case SourceWaste:
		return s.Waste
	case SourceTableau:
		return s.Column(from.column)
	case SourceFoundation:
		return s.Foundation(from.suit)
	}
	return nil
}

// snapshot 返回不含历史的浅拷贝。State 不可变，因此可以共享切片。
func (s *State) snapshot() *State {
	snap := *s
	snap.History = nil
	return &snap
}

// clone 返回深拷贝的工作副本（不含历史），只有工作副本可以被原地修改
func (s *State) clone() *State {
	c := &State{
		Deck:  slices.Clone(s.Deck),
		Waste: slices.Clone(s.Waste),
		Score: s.Score,
		Moves: s.Moves,
		Won:   s.Won,
		Seed:  s.Seed,
	}
	for i := range s.Foundations {
		c.Foundations[i] = slices.Clone(s.Foundations[i])
	}
	for i := range s.Tableau {
		c.Tableau[i] = slices.Clone(s.Tableau[i])
	}
	return c
}

// take 从工作副本的来源处移走 n 张牌，若露出的桌面牌背面朝上则翻开
func (s *State) take(from Source, n int) {
	switch from.kind {
	case SourceWaste:
		s.Waste = s.Waste[:len(s.Waste)-n]
	case SourceFoundation:
		s.Foundations[from.suit] = s.Foundations[from.suit][:len(s.Foundations[from.suit])-n]
	case SourceTableau:
		col := s.Tableau[from.column][:len(s.Tableau[from.column])-n]
		if len(col) > 0 && !col[len(col)-1].FaceUp {
			col[len(col)-1].FaceUp = true
		}
		s.Tableau[from.column] = col
	}
}

// settle 在每次移动后检查胜利条件；Won 只会由 false 变为 true
func (s *State) settle() {
	if !s.Won && CheckWin(s) {
		s.Won = true
	}
}

// CheckWin reports whether all four foundations are complete.
func CheckWin(s *State) bool {
	for _, pile := range s.Foundations {
		if len(pile) != card.NumRanks {
			return false
		}
	}
	return true
}
