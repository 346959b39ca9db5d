package apperrors

import (
	"errors"

	"github.com/palemoky/klondike/internal/protocol"
)

// GameError 游戏错误，均为可恢复的非致命错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidMove  = &GameError{Code: protocol.ErrCodeInvalidMove, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidMove]}
	ErrNoHistory    = &GameError{Code: protocol.ErrCodeNoHistory, Message: protocol.ErrorMessages[protocol.ErrCodeNoHistory]}
	ErrGameFinished = &GameError{Code: protocol.ErrCodeGameFinished, Message: protocol.ErrorMessages[protocol.ErrCodeGameFinished]}
	ErrNoGame       = &GameError{Code: protocol.ErrCodeNoGame, Message: protocol.ErrorMessages[protocol.ErrCodeNoGame]}
	ErrSessionGone  = &GameError{Code: protocol.ErrCodeSessionNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeSessionNotFound]}
)

// Code 提取错误码，非 GameError 返回 ErrCodeUnknown
func Code(err error) int {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return protocol.ErrCodeUnknown
}
