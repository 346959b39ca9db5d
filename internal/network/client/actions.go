package client

import (
	"time"

	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

// --- 便捷方法 ---

// NewGame 开新局，seed 为 0 时随机发牌，drawCount 为 0 时使用服务端配置
func (c *Client) NewGame(seed uint64, drawCount int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgNewGame, protocol.NewGamePayload{
		Seed:      seed,
		DrawCount: drawCount,
	}))
}

// Draw 翻牌
func (c *Client) Draw() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgDraw, nil))
}

// MoveToFoundation 移到收牌堆，suit 为空时使用牌自身的花色
func (c *Client) MoveToFoundation(from protocol.LocationInfo, suit string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgMoveToFoundation, protocol.MoveToFoundationPayload{
		From: from,
		Suit: suit,
	}))
}

// MoveToTableau 移到桌面列，count 大于 1 时移动一串牌
func (c *Client) MoveToTableau(from protocol.LocationInfo, column, count int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgMoveToTableau, protocol.MoveToTableauPayload{
		From:   from,
		Column: column,
		Count:  count,
	}))
}

// Flip 翻开桌面列顶部的牌
func (c *Client) Flip(column int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgFlip, protocol.FlipPayload{Column: column}))
}

// Click 点击牌堆顶
func (c *Client) Click(from protocol.LocationInfo) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgClick, protocol.ClickPayload{From: from}))
}

// Undo 撤销
func (c *Client) Undo() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgUndo, nil))
}

// AutoComplete 自动收牌
func (c *Client) AutoComplete() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgAutoComplete, nil))
}

// Hint 请求提示
func (c *Client) Hint() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgHint, nil))
}

// GetState 请求当前局面
func (c *Client) GetState() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetState, nil))
}

// GetStats 获取个人统计
func (c *Client) GetStats() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetStats, nil))
}

// GetLeaderboard 获取排行榜
func (c *Client) GetLeaderboard(limit int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Limit: limit,
	}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
