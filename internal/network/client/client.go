// Package client is a websocket driver for the Klondike server, used by the
// autoplay bot and by end-to-end tests.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
)

// ErrClosed 连接已关闭
var ErrClosed = errors.New("connection closed")

// ServerError 服务端返回的 error 消息
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// frame 待写出的一帧
type frame struct {
	kind int
	data []byte
}

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	Format    codec.Format // 发送使用的编码，连接前设置

	conn    *websocket.Conn
	send    chan frame
	receive chan *protocol.Message
	done    chan struct{}

	playerID       string
	playerName     string
	reconnectToken string

	// 网络延迟（毫秒）
	latency atomic.Int64

	// OnMessage 在读协程中对每条消息调用，连接前设置
	OnMessage func(*protocol.Message)

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		send:      make(chan frame, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// Connect 连接服务器
func (c *Client) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, _, err := dialer.DialContext(ctx, c.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.ServerURL, err)
	}
	c.conn = conn

	// 启动读写协程
	go c.readPump()
	go c.writePump()
	return nil
}

// SendMessage 发送消息
func (c *Client) SendMessage(msg *protocol.Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	data, err := codec.Encode(msg, c.Format)
	if err != nil {
		return err
	}
	kind := websocket.TextMessage
	if c.Format == codec.FormatBinary {
		kind = websocket.BinaryMessage
	}

	select {
	case c.send <- frame{kind: kind, data: data}:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Receive 接收下一条消息，阻塞直到收到、ctx 结束或连接关闭
func (c *Client) Receive(ctx context.Context) (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		// 关闭前已收到的消息仍然可以读出
		select {
		case msg := <-c.receive:
			return msg, nil
		default:
			return nil, ErrClosed
		}
	}
}

// Await 读取消息直到出现 want 中的某个类型。
// 收到 error 消息时返回 *ServerError，其它类型的消息被丢弃。
func (c *Client) Await(ctx context.Context, want ...protocol.MessageType) (*protocol.Message, error) {
	for {
		msg, err := c.Receive(ctx)
		if err != nil {
			return nil, err
		}
		if msg.Type == protocol.MsgError {
			payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
			if err != nil {
				return nil, err
			}
			return nil, &ServerError{Code: payload.Code, Message: payload.Message}
		}
		for _, t := range want {
			if msg.Type == t {
				return msg, nil
			}
		}
	}
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// PlayerID 服务端分配的玩家 ID
func (c *Client) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// PlayerName 服务端分配的昵称
func (c *Client) PlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// ReconnectToken 重连令牌
func (c *Client) ReconnectToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reconnectToken
}

// Latency 最近一次心跳的往返延迟（毫秒）
func (c *Client) Latency() int64 {
	return c.latency.Load()
}

func (c *Client) setIdentity(id, name, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = id
	c.playerName = name
	if token != "" {
		c.reconnectToken = token
	}
}
