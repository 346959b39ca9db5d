// Package rule holds the Klondike placement predicates.
//
// They are pure functions with no side effects. Every move path uses them:
// manual moves, click dispatch, auto-complete and hints.
package rule

import (
	"github.com/palemoky/klondike/internal/game/card"
)

// CanPlaceOnTableau 判断 c 能否放到桌面列上。
// target 为 nil 表示空列，只接受 K；否则要求点数小一且颜色交替。
func CanPlaceOnTableau(c card.Card, target *card.Card) bool {
	if target == nil {
		return c.Rank == card.King
	}
	return c.Rank.Value() == target.Rank.Value()-1 && c.IsRed() != target.IsRed()
}

// CanPlaceOnFoundation 判断 c 能否放到收牌堆上。
// 空堆只接受 A；否则要求同花色且点数大一。
func CanPlaceOnFoundation(c card.Card, pile []card.Card) bool {
	top, ok := card.Top(pile)
	if !ok {
		return c.Rank == card.Ace
	}
	return c.Suit == top.Suit && c.Rank.Value() == top.Rank.Value()+1
}

// IsSequence reports whether cards, bottom to top, form a descending run of
// alternating colors, i.e. every card could legally sit on the one below it.
func IsSequence(cards []card.Card) bool {
	for i := 1; i < len(cards); i++ {
		below := cards[i-1]
		if !CanPlaceOnTableau(cards[i], &below) {
			return false
		}
	}
	return true
}

// IsFoundationPile reports whether pile is a valid foundation for suit:
// Ace first, then strictly ascending by one, all of that suit.
func IsFoundationPile(pile []card.Card, suit card.Suit) bool {
	for i, c := range pile {
		if c.Suit != suit || c.Rank.Value() != i+1 {
			return false
		}
	}
	return true
}
