package game

import (
	"fmt"

	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/game/rule"
)

// HintKind 提示类型
type HintKind int

const (
	HintNone HintKind = iota
	HintTableauToFoundation
	HintWasteToFoundation
	HintDraw
)

var hintKindNames = map[HintKind]string{
	HintNone:                "none",
	HintTableauToFoundation: "tableau_to_foundation",
	HintWasteToFoundation:   "waste_to_foundation",
	HintDraw:                "draw",
}

func (k HintKind) String() string {
	return hintKindNames[k]
}

// Hint 一条单步提示。Card 和 From 只在移动类提示中有意义。
type Hint struct {
	Kind    HintKind
	Card    card.Card
	From    Source
	Message string
}

func (h Hint) String() string {
	return h.Message
}

// GetHint 按优先级返回第一条可用提示：
// 桌面列顶牌上收牌堆 > 废牌堆顶上收牌堆 > 翻牌 > 无明显可走。
// 只读，不做多步搜索，也不考虑列之间的移动。
func GetHint(s *State) Hint {
	for col, column := range s.Tableau {
		top, ok := card.Top(column)
		if ok && top.FaceUp && rule.CanPlaceOnFoundation(top, s.Foundations[top.Suit]) {
			return Hint{
				Kind:    HintTableauToFoundation,
				Card:    top,
				From:    FromColumn(col),
				Message: fmt.Sprintf("Move %s of %s to foundation", top.Rank, top.Suit.Name()),
			}
		}
	}

	if top, ok := card.Top(s.Waste); ok && rule.CanPlaceOnFoundation(top, s.Foundations[top.Suit]) {
		return Hint{
			Kind:    HintWasteToFoundation,
			Card:    top,
			From:    FromWaste(),
			Message: fmt.Sprintf("Move %s of %s from waste to foundation", top.Rank, top.Suit.Name()),
		}
	}

	if len(s.Deck) > 0 {
		return Hint{Kind: HintDraw, Message: "Draw cards from deck"}
	}
	return Hint{Kind: HintNone, Message: "No obvious moves available"}
}
