package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

// ErrNoToken 还没有收到重连令牌
var ErrNoToken = errors.New("no reconnect token")

const (
	resumeAttempts = 10
	resumeBackoff  = 50 * time.Millisecond
)

// Reconnect 发送重连请求
func (c *Client) Reconnect(token, playerID string) error {
	if token == "" || playerID == "" {
		return ErrNoToken
	}
	return c.SendMessage(codec.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		Token:    token,
		PlayerID: playerID,
	}))
}

// Resume 用 old 的身份建立新连接并接管其会话。
// 返回新客户端和服务端恢复的牌局（没有牌局时为 nil）。old 会被关闭。
func Resume(ctx context.Context, old *Client) (*Client, *protocol.GameStatePayload, error) {
	token, playerID := old.ReconnectToken(), old.PlayerID()
	if token == "" || playerID == "" {
		return nil, nil, ErrNoToken
	}
	old.Close()

	c := NewClient(old.ServerURL)
	c.Format = old.Format
	c.OnMessage = old.OnMessage
	if err := c.Connect(ctx); err != nil {
		return nil, nil, err
	}

	// 服务端会先为新连接分配临时身份
	if _, err := c.Await(ctx, protocol.MsgConnected); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("wait connected: %w", err)
	}

	msg, err := c.awaitReconnected(ctx, token, playerID)
	if err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("reconnect: %w", err)
	}
	payload, err := codec.ParsePayload[protocol.ReconnectedPayload](msg)
	if err != nil {
		c.Close()
		return nil, nil, err
	}

	// 令牌不变，沿用旧值
	c.setIdentity(payload.PlayerID, payload.PlayerName, token)
	return c, payload.Game, nil
}

// awaitReconnected 发送重连请求并等待结果。
// 服务端可能还没处理完旧连接的断开，此时会话仍在线，稍后重试。
func (c *Client) awaitReconnected(ctx context.Context, token, playerID string) (*protocol.Message, error) {
	var lastErr error
	for range resumeAttempts {
		if err := c.Reconnect(token, playerID); err != nil {
			return nil, err
		}
		msg, err := c.Await(ctx, protocol.MsgReconnected)
		if err == nil {
			return msg, nil
		}

		var serverErr *ServerError
		if !errors.As(err, &serverErr) || serverErr.Code != protocol.ErrCodeSessionNotFound {
			return nil, err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(resumeBackoff):
		}
	}
	return nil, lastErr
}
