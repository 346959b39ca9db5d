//go:build !production

package game

import (
	"github.com/palemoky/klondike/internal/game/card"
)

// FoundationUpTo 返回 suit 从 A 到 top 的完整收牌堆，全部正面朝上
func FoundationUpTo(suit card.Suit, top card.Rank) []card.Card {
	pile := make([]card.Card, 0, card.NumRanks)
	for r := card.Ace; r <= top; r++ {
		pile = append(pile, card.New(suit, r).Flipped(true))
	}
	return pile
}

// NearlyWon 返回四个收牌堆都到 Q、四张 K 分别位于第 1~4 列顶部的局面。
// 该局面满足全部不变式，一次 AutoComplete 即可获胜。
func NearlyWon() *State {
	s := &State{Seed: 1}
	for i, suit := range card.AllSuits {
		s.Foundations[suit] = FoundationUpTo(suit, card.Queen)
		s.Tableau[i] = []card.Card{card.New(suit, card.King).Flipped(true)}
	}
	s.Score = 48 * FoundationScore
	s.Moves = 48
	return s
}
