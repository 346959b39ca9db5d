package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/network/server/session"
	"github.com/palemoky/klondike/internal/network/server/types"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
	"github.com/palemoky/klondike/internal/protocol/convert"
)

// recordTimeout 写排行榜的超时
const recordTimeout = 3 * time.Second

// --- 牌局处理 ---

// handleNewGame 开新局。未完成的旧局计为一局未胜。
func (h *Handler) handleNewGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.NewGamePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	cfg := h.server.GetGameConfig()
	drawCount := payload.DrawCount
	if drawCount == 0 {
		drawCount = cfg.DrawCount
	}
	if drawCount != 1 && drawCount != 3 {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "draw_count must be 1 or 3"))
		return
	}

	ps := h.playerSession(client)
	if ps == nil {
		return
	}
	if prev := ps.Game(); prev != nil && prev.Started() && !prev.Finished() {
		h.recordResult(client, prev)
	}

	engine := game.NewEngine(game.WithDrawCount(drawCount), game.WithHistoryLimit(cfg.HistoryLimit))
	var state *game.State
	if payload.Seed != 0 {
		state = engine.NewGameWithSeed(payload.Seed)
	} else {
		state = engine.NewGame()
	}

	g := session.NewGameSession(engine, state)
	ps.SetGame(g)
	log.Printf("🃏 玩家 %s 开始新牌局 #%d (翻 %d 张)", client.GetName(), state.Seed, drawCount)

	h.sendState(client, g)
}

// handleDraw 翻牌
func (h *Handler) handleDraw(client types.ClientInterface) {
	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		return e.Draw(s)
	})
}

// handleMoveToFoundation 移到收牌堆
func (h *Handler) handleMoveToFoundation(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.MoveToFoundationPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	from, err := convert.LocationToSource(payload.From)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
		return
	}
	var target card.Suit
	if payload.Suit != "" {
		if target, err = card.ParseSuit(payload.Suit); err != nil {
			client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
			return
		}
	}

	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		p, ok := s.Pick(from)
		if !ok {
			return s, nothingToPick(from)
		}
		suit := p.Card().Suit
		if payload.Suit != "" {
			suit = target
		}
		return e.MoveToFoundation(s, p, suit)
	})
}

// handleMoveToTableau 移到桌面列，Count 大于 1 时移动一串牌
func (h *Handler) handleMoveToTableau(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.MoveToTableauPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	from, err := convert.LocationToSource(payload.From)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
		return
	}
	count := max(payload.Count, 1)
	if count > 1 && from.Kind() != game.SourceTableau {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "only tableau runs can move more than one card"))
		return
	}

	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		var (
			p  game.Pick
			ok bool
		)
		if count > 1 {
			p, ok = s.PickRun(from.Column(), count)
		} else {
			p, ok = s.Pick(from)
		}
		if !ok {
			return s, nothingToPick(from)
		}
		return e.MoveToTableau(s, p, payload.Column)
	})
}

// handleFlip 翻开桌面列顶部的背面牌
func (h *Handler) handleFlip(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.FlipPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		return e.Flip(s, payload.Column)
	})
}

// handleClick 点击牌堆顶
func (h *Handler) handleClick(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ClickPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	from, err := convert.LocationToSource(payload.From)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, err.Error()))
		return
	}
	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		return e.Click(s, from)
	})
}

// handleUndo 撤销
func (h *Handler) handleUndo(client types.ClientInterface) {
	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		return e.Undo(s)
	})
}

// handleAutoComplete 自动收牌
func (h *Handler) handleAutoComplete(client types.ClientInterface) {
	h.apply(client, func(e *game.Engine, s *game.State) (*game.State, error) {
		return e.AutoComplete(s)
	})
}

// handleHint 提示
func (h *Handler) handleHint(client types.ClientInterface) {
	g := h.currentGame(client)
	if g == nil {
		return
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgHintResult, convert.HintToPayload(game.GetHint(g.State()))))
}

// handleGetState 获取当前局面
func (h *Handler) handleGetState(client types.ClientInterface) {
	if g := h.currentGame(client); g != nil {
		h.sendState(client, g)
	}
}

// currentGame 返回进行中的牌局，没有时回复错误并返回 nil
func (h *Handler) currentGame(client types.ClientInterface) *session.GameSession {
	ps := h.playerSession(client)
	if ps == nil {
		return nil
	}
	g := ps.Game()
	if g == nil {
		client.SendMessage(codec.NewErrorMessageFromErr(apperrors.ErrNoGame))
	}
	return g
}

// apply 执行操作；成功时下发新局面，获胜时再下发 game_won 并记录成绩
func (h *Handler) apply(client types.ClientInterface, op session.Op) {
	g := h.currentGame(client)
	if g == nil {
		return
	}

	s, won, err := g.Apply(op)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageFromErr(err))
		return
	}

	h.sendState(client, g)
	if won {
		client.SendMessage(codec.MustNewMessage(protocol.MsgGameWon, convert.GameWonPayload(s, g.Elapsed())))
		log.Printf("🏆 玩家 %s 完成牌局 #%d: %d 分, %d 步", client.GetName(), s.Seed, s.Score, s.Moves)
		h.recordResult(client, g)
	}
}

func (h *Handler) sendState(client types.ClientInterface, g *session.GameSession) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgState, convert.StateToPayload(g.State(), g.DrawCount(), g.Elapsed())))
}

// recordResult 把一局结果写入排行榜，每局只写一次
func (h *Handler) recordResult(client types.ClientInterface, g *session.GameSession) {
	RecordResult(h.server.GetLeaderboard(), client.GetID(), client.GetName(), g)
}

// RecordResult 把牌局结果写入排行榜，lb 为 nil 时忽略
func RecordResult(lb types.LeaderboardInterface, playerID, playerName string, g *session.GameSession) {
	if lb == nil {
		return
	}
	result, ok := g.TakeResult()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := lb.RecordGame(ctx, playerID, playerName, result); err != nil {
		log.Printf("记录玩家 %s 的成绩失败: %v", playerID, err)
	}
}

func nothingToPick(from game.Source) error {
	return fmt.Errorf("%w: no face-up card on %s", apperrors.ErrInvalidMove, from)
}
