package game

import (
	"github.com/palemoky/klondike/internal/apperrors"
)

// Undo 恢复最近一次快照，并丢弃它之后的状态。
// 没有历史时返回 ErrNoHistory；已经获胜的牌局不能撤销。
func (e *Engine) Undo(s *State) (*State, error) {
	if s.Won {
		return s, apperrors.ErrGameFinished
	}
	if len(s.History) == 0 {
		return s, apperrors.ErrNoHistory
	}

	last := len(s.History) - 1
	restored := *s.History[last]
	if last > 0 {
		restored.History = s.History[:last:last]
	}
	return &restored, nil
}
