package game

import (
	"fmt"

	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/game/rule"
)

// Draw 从牌库翻牌到废牌堆。
// 牌库不为空时翻出至多 DrawCount 张并正面朝上；牌库为空时把废牌堆倒序、
// 背面朝上重新作为牌库。两种情况都计一步。
func (e *Engine) Draw(s *State) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}

	n := e.begin(s)
	if len(n.Deck) == 0 {
		recycled := make(card.Deck, 0, len(n.Waste))
		for i := len(n.Waste) - 1; i >= 0; i-- {
			recycled = append(recycled, n.Waste[i].Flipped(false))
		}
		n.Deck = recycled
		n.Waste = nil
	} else {
		k := min(e.opts.DrawCount, len(n.Deck))
		for _, c := range n.Deck[len(n.Deck)-k:] {
			n.Waste = append(n.Waste, c.Flipped(true))
		}
		n.Deck = n.Deck[:len(n.Deck)-k]
	}
	n.Moves++
	return n, nil
}

// MoveToFoundation 把拿起的牌放到 suit 对应的收牌堆，得 10 分
func (e *Engine) MoveToFoundation(s *State, p Pick, suit card.Suit) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}
	if err := s.checkPick(p); err != nil {
		return s, err
	}

	c := p.Card()
	switch {
	case p.Len() != 1:
		return s, fmt.Errorf("%w: only one card at a time goes to a foundation", apperrors.ErrInvalidMove)
	case p.from.kind == SourceFoundation:
		return s, fmt.Errorf("%w: %s is already on a foundation", apperrors.ErrInvalidMove, c)
	case !suit.Valid() || c.Suit != suit:
		return s, fmt.Errorf("%w: %s does not belong on the %s foundation", apperrors.ErrInvalidMove, c, suit.Name())
	case !rule.CanPlaceOnFoundation(c, s.Foundations[suit]):
		return s, fmt.Errorf("%w: %s cannot go to the %s foundation yet", apperrors.ErrInvalidMove, c, suit.Name())
	}

	n := e.begin(s)
	n.take(p.from, 1)
	n.Foundations[suit] = append(n.Foundations[suit], c.Flipped(true))
	n.Score += FoundationScore
	n.Moves++
	n.settle()
	return n, nil
}

// MoveToTableau 把拿起的牌（或一串牌）放到第 column 列，不计分
func (e *Engine) MoveToTableau(s *State, p Pick, column int) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}
	if err := s.checkPick(p); err != nil {
		return s, err
	}
	if column < 0 || column >= NumColumns {
		return s, fmt.Errorf("%w: no column %d", apperrors.ErrInvalidMove, column+1)
	}
	if p.from.kind == SourceTableau && p.from.column == column {
		return s, fmt.Errorf("%w: %s is already in column %d", apperrors.ErrInvalidMove, p.Card(), column+1)
	}

	var target *card.Card
	if top, ok := card.Top(s.Tableau[column]); ok {
		if !top.FaceUp {
			return s, fmt.Errorf("%w: column %d is covered", apperrors.ErrInvalidMove, column+1)
		}
		target = &top
	}
	if !rule.CanPlaceOnTableau(p.Card(), target) {
		return s, fmt.Errorf("%w: %s cannot go on column %d", apperrors.ErrInvalidMove, p.Card(), column+1)
	}

	n := e.begin(s)
	n.take(p.from, p.Len())
	for _, c := range p.cards {
		n.Tableau[column] = append(n.Tableau[column], c.Flipped(true))
	}
	n.Moves++
	n.settle()
	return n, nil
}

// Flip 翻开第 column 列最上面的背面牌
func (e *Engine) Flip(s *State, column int) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}
	top, ok := card.Top(s.Column(column))
	if !ok || top.FaceUp {
		return s, fmt.Errorf("%w: nothing to flip in column %d", apperrors.ErrInvalidMove, column+1)
	}

	n := e.begin(s)
	n.Tableau[column][len(n.Tableau[column])-1].FaceUp = true
	n.Moves++
	return n, nil
}

// Click 处理对某个牌堆顶的点击：
// 先尝试把牌送上收牌堆；不行且是背面朝上的桌面牌时翻开；否则什么都不做，
// 原样返回 s 且 error 为 nil。
func (e *Engine) Click(s *State, from Source) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}

	if p, ok := s.Pick(from); ok {
		c := p.Card()
		if from.kind != SourceFoundation && rule.CanPlaceOnFoundation(c, s.Foundations[c.Suit]) {
			return e.MoveToFoundation(s, p, c.Suit)
		}
	}

	if from.kind == SourceTableau {
		if top, ok := card.Top(s.Column(from.column)); ok && !top.FaceUp {
			return e.Flip(s, from.column)
		}
	}
	return s, nil
}

// checkPick 校验拿起的牌仍在来源顶部
func (s *State) checkPick(p Pick) error {
	if !s.holds(p) {
		return fmt.Errorf("%w: the card is no longer on top of %s", apperrors.ErrInvalidMove, p.from)
	}
	return nil
}
