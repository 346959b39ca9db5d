package ui

import (
	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/game/card"
)

// Pile 光标可以停留的牌堆：牌库、废牌堆、4 个收牌堆、7 列
type Pile int

const (
	PileDeck Pile = iota
	PileWaste
	pileFoundation
	pileColumn = pileFoundation + card.NumSuits
	numPiles   = pileColumn + game.NumColumns
)

// FoundationPile 返回 suit 的收牌堆
func FoundationPile(suit card.Suit) Pile {
	return pileFoundation + Pile(suit)
}

// ColumnPile 返回第 i 列（从 0 开始）
func ColumnPile(i int) Pile {
	return pileColumn + Pile(i)
}

func (p Pile) IsFoundation() bool {
	return p >= pileFoundation && p < pileColumn
}

func (p Pile) IsColumn() bool {
	return p >= pileColumn && p < numPiles
}

func (p Pile) Suit() card.Suit {
	return card.Suit(p - pileFoundation)
}

func (p Pile) Column() int {
	return int(p - pileColumn)
}

// Source 返回牌堆对应的出牌来源，牌库没有来源
func (p Pile) Source() (game.Source, bool) {
	switch {
	case p == PileWaste:
		return game.FromWaste(), true
	case p.IsFoundation():
		return game.FromFoundation(p.Suit()), true
	case p.IsColumn():
		return game.FromColumn(p.Column()), true
	default:
		return game.Source{}, false
	}
}

// move 向左或向右移动光标，两端循环
func (p Pile) move(delta int) Pile {
	return Pile((int(p) + delta + int(numPiles)) % int(numPiles))
}
