package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/klondike/internal/config"
	"github.com/palemoky/klondike/internal/network/server/session"
	"github.com/palemoky/klondike/internal/network/server/storage"
	"github.com/palemoky/klondike/internal/network/server/types"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

// --- MockClient ---

type MockClient struct {
	mock.Mock

	mu   sync.Mutex
	id   string
	name string
	sent []*protocol.Message
}

func newMockClient(id, name string) *MockClient {
	return &MockClient{id: id, name: name}
}

func (m *MockClient) GetID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

func (m *MockClient) GetName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

func (m *MockClient) Rebind(id, name string) {
	m.Called(id, name)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id, m.name = id, name
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// Sent 返回已发送的消息并清空
func (m *MockClient) Sent() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := m.sent
	m.sent = nil
	return sent
}

// --- MockServer ---

type MockServer struct {
	mock.Mock

	sessions *session.Manager
	cfg      config.GameConfig
}

func newMockServer() *MockServer {
	return &MockServer{
		sessions: session.NewManager(time.Minute),
		cfg:      config.Default().Game,
	}
}

func (m *MockServer) GetLeaderboard() types.LeaderboardInterface {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.LeaderboardInterface)
}

func (m *MockServer) GetSessionManager() *session.Manager { return m.sessions }
func (m *MockServer) GetGameConfig() *config.GameConfig   { return &m.cfg }

func (m *MockServer) IsMaintenanceMode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockServer) GetOnlineCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockServer) RegisterClient(id string, client types.ClientInterface) {
	m.Called(id, client)
}

func (m *MockServer) UnregisterClient(id string) {
	m.Called(id)
}

// --- MockLeaderboard ---

type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) RecordGame(ctx context.Context, playerID, playerName string, result storage.GameResult) error {
	args := m.Called(ctx, playerID, playerName, result)
	return args.Error(0)
}

func (m *MockLeaderboard) GetPlayerStats(ctx context.Context, playerID string) (*storage.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PlayerStats), args.Error(1)
}

func (m *MockLeaderboard) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboard) GetTopPlayers(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.LeaderboardEntry), args.Error(1)
}

// --- helpers ---

// newTestHandler 创建处理器和一个已建立会话的客户端
func newTestHandler(t *testing.T) (*Handler, *MockServer, *MockClient) {
	t.Helper()
	srv := newMockServer()
	client := newMockClient("p1", "Player1")
	srv.sessions.CreateSession(client.GetID(), client.GetName())
	return NewHandler(srv), srv, client
}

func request(t *testing.T, msgType protocol.MessageType, payload any) *protocol.Message {
	t.Helper()
	msg, err := codec.NewMessage(msgType, payload)
	require.NoError(t, err)
	return msg
}

// lastMessage 返回最后一条消息并断言类型
func lastMessage(t *testing.T, client *MockClient, want protocol.MessageType) *protocol.Message {
	t.Helper()
	sent := client.Sent()
	require.NotEmpty(t, sent)
	msg := sent[len(sent)-1]
	require.Equal(t, want, msg.Type, "payload: %s", msg.Payload)
	return msg
}

func decode[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	payload, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return payload
}

// errorCode 断言最后一条消息是错误并返回错误码
func errorCode(t *testing.T, client *MockClient) int {
	t.Helper()
	return decode[protocol.ErrorPayload](t, lastMessage(t, client, protocol.MsgError)).Code
}
