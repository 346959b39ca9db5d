// Package server hosts Klondike games over websocket. Each connection gets a
// player session holding at most one game; sessions outlive the connection
// for the configured timeout so a client can reconnect and resume.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/klondike/internal/config"
	"github.com/palemoky/klondike/internal/network/server/core"
	"github.com/palemoky/klondike/internal/network/server/handlers"
	"github.com/palemoky/klondike/internal/network/server/session"
	"github.com/palemoky/klondike/internal/network/server/storage"
	"github.com/palemoky/klondike/internal/network/server/types"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

const (
	sessionSweepInterval = time.Minute
	rateCleanupInterval  = 5 * time.Minute
	monitorInterval      = 30 * time.Second
)

// Server WebSocket 服务器
type Server struct {
	config         *config.Config
	redis          *redis.Client // 未启用时为 nil
	leaderboard    *storage.LeaderboardManager
	sessionManager *session.Manager
	clients        map[string]*Client
	clientsMu      sync.RWMutex
	handler        *handlers.Handler
	upgrader       websocket.Upgrader

	// 安全组件
	rateLimiter    *core.RateLimiter
	originChecker  *core.OriginChecker
	messageLimiter *core.MessageRateLimiter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	httpServer *http.Server
	stop       context.CancelFunc
}

// NewServer 创建服务器实例，启用 Redis 时先检查连接
func NewServer(cfg *config.Config) (*Server, error) {
	if !cfg.Redis.Enabled {
		log.Println("ℹ️ 未启用 Redis，排行榜不可用")
		return New(cfg, nil), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	return New(cfg, rdb), nil
}

// New 用已有的 Redis 客户端创建服务器，rdb 为 nil 时不记录排行榜
func New(cfg *config.Config, rdb *redis.Client) *Server {
	s := &Server{
		config:         cfg,
		redis:          rdb,
		clients:        make(map[string]*Client),
		sessionManager: session.NewManager(cfg.Game.SessionTimeoutDuration()),
		// 初始化安全组件
		rateLimiter: core.NewRateLimiter(
			cfg.Security.ConnPerSecond,
			cfg.Security.ConnPerMinute,
			cfg.Security.BanDurationTime(),
		),
		originChecker:  core.NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: core.NewMessageRateLimiter(cfg.Game.MessageRateLimit),
		// 初始化连接控制
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}
	if rdb != nil {
		s.leaderboard = storage.NewLeaderboardManager(rdb)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	// 初始化消息处理器
	s.handler = handlers.NewHandler(s)

	log.Printf("🔒 安全配置: 连接限制=%d/s, 消息限制=%d/s, 最大连接数=%d",
		cfg.Security.ConnPerSecond, cfg.Game.MessageRateLimit, cfg.Server.MaxConnections)
	return s
}

// Handler 返回 HTTP 路由：/ws 与 /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务器，阻塞直到 Shutdown
func (s *Server) Start() error {
	addr := s.config.Server.Addr()

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.RunBackground(ctx)

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RunBackground 启动会话清理、限流记录清理和状态监控，直到 ctx 结束
func (s *Server) RunBackground(ctx context.Context) {
	go s.sessionManager.Run(ctx, sessionSweepInterval, s.onSessionExpired)
	go s.rateLimiter.Run(ctx, rateCleanupInterval)
	go s.monitorStats(ctx)
}

// onSessionExpired 会话过期时，走过的未完成牌局计为一局未胜
func (s *Server) onSessionExpired(ps *session.PlayerSession) {
	if g := ps.Game(); g != nil && g.Started() && !g.Finished() {
		handlers.RecordResult(s.GetLeaderboard(), ps.PlayerID, ps.PlayerName, g)
	}
	log.Printf("🧹 会话过期: %s (%s)", ps.PlayerName, ps.PlayerID)
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// 获取真实客户端IP
	clientIP := core.GetClientIP(r)

	// 维护模式检查（最优先）
	if s.IsMaintenanceMode() {
		log.Printf("🔧 维护模式，拒绝新连接: %s", clientIP)
		http.Error(w, "Server is under maintenance, please try again later", http.StatusServiceUnavailable)
		return
	}

	// 连接数限制检查
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Printf("🚫 达到最大连接数限制 (%d), IP: %s", s.maxConnections, clientIP)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}
	release := func() { <-s.semaphore }

	// 速率限制检查
	if !s.rateLimiter.Allow(clientIP) {
		release()
		log.Printf("🚫 IP %s 请求过于频繁", clientIP)
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	// 来源验证由 upgrader.CheckOrigin 完成，失败时返回 403
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		release()
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	// 创建客户端
	client := NewClient(s, conn)
	client.IP = clientIP
	s.registerClient(client)

	// 创建会话
	ps := s.sessionManager.CreateSession(client.ID, client.Name)

	// 发送连接成功消息（包含重连令牌）
	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:       client.ID,
		PlayerName:     client.Name,
		ReconnectToken: ps.ReconnectToken,
	}))

	log.Printf("✅ 玩家 %s (%s) 已连接", client.Name, client.ID)

	// 启动客户端读写协程，连接结束时释放信号量
	go func() {
		defer release()
		client.ReadPump()
	}()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.GetID()] = client
}

// unregisterClient 注销客户端，ID 已被其它连接占用时不动
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	id := client.GetID()
	if cur, ok := s.clients[id]; ok && cur == client {
		delete(s.clients, id)
		log.Printf("❌ 玩家 %s (%s) 已断开", client.GetName(), id)
	}
}

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Printf("📊 [监控] 在线: %d | 会话: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
			s.GetOnlineCount(),
			s.sessionManager.Count(),
			runtime.NumGoroutine(),
			len(s.semaphore),
			s.maxConnections,
			float64(m.Alloc)/1024/1024)
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接并通知在线玩家
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.clientsMu.RLock()
	for _, client := range s.clients {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeServerMaintenance))
	}
	s.clientsMu.RUnlock()

	log.Println("🔧 进入维护模式：停止接受新连接")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// Shutdown 进入维护模式，断开所有客户端并关闭 HTTP 服务和 Redis
func (s *Server) Shutdown(ctx context.Context) error {
	s.EnterMaintenanceMode()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// 关闭所有客户端连接
	s.clientsMu.RLock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.RUnlock()

	if s.stop != nil {
		s.stop()
	}
	if s.redis != nil {
		err = errors.Join(err, s.redis.Close())
	}

	log.Println("服务器已关闭")
	return err
}

// Interface implementations for types.ServerContext

func (s *Server) GetSessionManager() *session.Manager { return s.sessionManager }
func (s *Server) GetGameConfig() *config.GameConfig   { return &s.config.Game }

// GetLeaderboard 未启用 Redis 时返回 nil
func (s *Server) GetLeaderboard() types.LeaderboardInterface {
	if s.leaderboard == nil {
		return nil
	}
	return s.leaderboard
}

func (s *Server) RegisterClient(id string, client types.ClientInterface) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if c, ok := client.(*Client); ok {
		s.clients[id] = c
	}
}

func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, id)
}
