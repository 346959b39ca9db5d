package handlers

import (
	"log"

	"github.com/palemoky/klondike/internal/network/server/session"
	"github.com/palemoky/klondike/internal/network/server/types"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

// Handler 消息处理器
type Handler struct {
	server types.ServerContext
}

// NewHandler 创建处理器
func NewHandler(s types.ServerContext) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)
	case protocol.MsgReconnect:
		h.handleReconnect(client, msg)

	// 牌局操作
	case protocol.MsgNewGame:
		h.handleNewGame(client, msg)
	case protocol.MsgDraw:
		h.handleDraw(client)
	case protocol.MsgMoveToFoundation:
		h.handleMoveToFoundation(client, msg)
	case protocol.MsgMoveToTableau:
		h.handleMoveToTableau(client, msg)
	case protocol.MsgFlip:
		h.handleFlip(client, msg)
	case protocol.MsgClick:
		h.handleClick(client, msg)
	case protocol.MsgUndo:
		h.handleUndo(client)
	case protocol.MsgAutoComplete:
		h.handleAutoComplete(client)
	case protocol.MsgHint:
		h.handleHint(client)
	case protocol.MsgGetState:
		h.handleGetState(client)

	// 排行榜操作
	case protocol.MsgGetStats:
		h.handleGetStats(client)
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// playerSession 返回客户端的会话，不存在时回复错误并返回 nil
func (h *Handler) playerSession(client types.ClientInterface) *session.PlayerSession {
	ps := h.server.GetSessionManager().GetSession(client.GetID())
	if ps == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeSessionNotFound))
	}
	return ps
}
