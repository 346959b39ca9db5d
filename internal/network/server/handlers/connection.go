package handlers

import (
	"log"
	"time"

	"github.com/palemoky/klondike/internal/network/server/types"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
	"github.com/palemoky/klondike/internal/protocol/convert"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连：当前连接接管旧会话，连接时新建的会话被丢弃
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	sessions := h.server.GetSessionManager()

	// 验证重连令牌
	if !sessions.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeSessionNotFound))
		return
	}
	old := sessions.GetSession(payload.PlayerID)
	if old == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeSessionNotFound))
		return
	}

	// 从临时 ID 注销，用旧 ID 注册
	tempID := client.GetID()
	h.server.UnregisterClient(tempID)
	sessions.DeleteSession(tempID)

	client.Rebind(old.PlayerID, old.PlayerName)
	h.server.RegisterClient(old.PlayerID, client)
	sessions.SetOnline(old.PlayerID)

	reconnected := protocol.ReconnectedPayload{
		PlayerID:   old.PlayerID,
		PlayerName: old.PlayerName,
	}
	// 恢复进行中的牌局
	if g := old.Game(); g != nil {
		reconnected.Game = convert.StateToPayload(g.State(), g.DrawCount(), g.Elapsed())
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgReconnected, reconnected))

	log.Printf("🔄 玩家 %s (%s) 重连成功", old.PlayerName, old.PlayerID)
}
