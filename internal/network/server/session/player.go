package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout 断线后会话保留时长
const DefaultTimeout = 10 * time.Minute

// PlayerSession 玩家会话（用于断线重连）
type PlayerSession struct {
	PlayerID       string
	PlayerName     string
	ReconnectToken string

	DisconnectedAt time.Time // 断线时间
	IsOnline       bool      // 是否在线

	game *GameSession
	mu   sync.RWMutex
}

// Game 返回当前牌局，没有时为 nil
func (ps *PlayerSession) Game() *GameSession {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.game
}

// SetGame 替换当前牌局
func (ps *PlayerSession) SetGame(g *GameSession) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.game = g
}

// Online 是否在线
func (ps *PlayerSession) Online() bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.IsOnline
}

// Manager 会话管理器
type Manager struct {
	sessions map[string]*PlayerSession // playerID -> session
	tokens   map[string]string         // token -> playerID
	timeout  time.Duration
	mu       sync.RWMutex
}

// NewManager 创建会话管理器，timeout 为断线后可重连的时长
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		sessions: make(map[string]*PlayerSession),
		tokens:   make(map[string]string),
		timeout:  timeout,
	}
}

// CreateSession 创建新会话
func (m *Manager) CreateSession(playerID, playerName string) *PlayerSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	session := &PlayerSession{
		PlayerID:       playerID,
		PlayerName:     playerName,
		ReconnectToken: token,
		IsOnline:       true,
	}

	m.sessions[playerID] = session
	m.tokens[token] = playerID
	return session
}

// GetSession 获取会话
func (m *Manager) GetSession(playerID string) *PlayerSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[playerID]
}

// GetSessionByToken 通过 token 获取会话
func (m *Manager) GetSessionByToken(token string) *PlayerSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	playerID, ok := m.tokens[token]
	if !ok {
		return nil
	}
	return m.sessions[playerID]
}

// SetOffline 设置玩家离线
func (m *Manager) SetOffline(playerID string) {
	if session := m.GetSession(playerID); session != nil {
		session.mu.Lock()
		session.IsOnline = false
		session.DisconnectedAt = time.Now()
		session.mu.Unlock()
	}
}

// SetOnline 设置玩家上线
func (m *Manager) SetOnline(playerID string) {
	if session := m.GetSession(playerID); session != nil {
		session.mu.Lock()
		session.IsOnline = true
		session.DisconnectedAt = time.Time{}
		session.mu.Unlock()
	}
}

// IsOnline 检查玩家是否在线
func (m *Manager) IsOnline(playerID string) bool {
	session := m.GetSession(playerID)
	return session != nil && session.Online()
}

// DeleteSession 删除会话
func (m *Manager) DeleteSession(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[playerID]; ok {
		delete(m.tokens, session.ReconnectToken)
		delete(m.sessions, playerID)
	}
}

// CanReconnect 检查玩家是否可以用 token 重连。
// 在线的会话不能被另一个连接接管。
func (m *Manager) CanReconnect(token, playerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	storedPlayerID, ok := m.tokens[token]
	if !ok || storedPlayerID != playerID {
		return false
	}
	session, ok := m.sessions[playerID]
	if !ok {
		return false
	}

	session.mu.RLock()
	defer session.mu.RUnlock()
	return !session.IsOnline && time.Since(session.DisconnectedAt) <= m.timeout
}

// Count 会话总数（含离线）
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Cleanup 删除离线超过保留时长的会话，返回被删除的会话
func (m *Manager) Cleanup(now time.Time) []*PlayerSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []*PlayerSession
	for playerID, session := range m.sessions {
		session.mu.RLock()
		stale := !session.IsOnline && now.Sub(session.DisconnectedAt) > m.timeout
		session.mu.RUnlock()

		if stale {
			delete(m.tokens, session.ReconnectToken)
			delete(m.sessions, playerID)
			expired = append(expired, session)
		}
	}
	return expired
}

// Run 定期清理过期会话，直到 ctx 结束。onExpire 对每个被清理的会话调用一次。
func (m *Manager) Run(ctx context.Context, interval time.Duration, onExpire func(*PlayerSession)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, session := range m.Cleanup(now) {
				if onExpire != nil {
					onExpire(session)
				}
			}
		}
	}
}
