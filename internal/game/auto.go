package game

import (
	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/game/rule"
)

// maxAutoMoves bounds AutoComplete: every step moves one card onto a
// foundation, and there are only 52 cards.
const maxAutoMoves = card.NumSuits * card.NumRanks

// AutoComplete 反复把能上收牌堆的牌送上去，直到一轮扫描找不到可走的牌。
// 每轮按第 1~7 列、再废牌堆的顺序，执行找到的第一步。
// 所有移动都在一个工作副本上完成，只发布最终结果，并只记录一条历史。
// 一步都走不了时原样返回 s。
func (e *Engine) AutoComplete(s *State) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}

	work := s.clone()
	moved := 0
	for moved < maxAutoMoves && work.autoStep() {
		moved++
	}
	if moved == 0 {
		return s, nil
	}

	work.History = appendHistory(s.History, s.snapshot(), e.opts.HistoryLimit)
	work.settle()
	return work, nil
}

// autoStep 在工作副本上执行一步收牌，找不到时返回 false
func (s *State) autoStep() bool {
	for col := range s.Tableau {
		if s.autoMove(FromColumn(col)) {
			return true
		}
	}
	return s.autoMove(FromWaste())
}

func (s *State) autoMove(from Source) bool {
	top, ok := card.Top(s.pile(from))
	if !ok || !top.FaceUp || !rule.CanPlaceOnFoundation(top, s.Foundations[top.Suit]) {
		return false
	}
	s.take(from, 1)
	s.Foundations[top.Suit] = append(s.Foundations[top.Suit], top)
	s.Score += FoundationScore
	s.Moves++
	return true
}
