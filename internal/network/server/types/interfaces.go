package types

import (
	"context"

	"github.com/palemoky/klondike/internal/config"
	"github.com/palemoky/klondike/internal/network/server/session"
	"github.com/palemoky/klondike/internal/network/server/storage"
	"github.com/palemoky/klondike/internal/protocol"
)

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	// GetLeaderboard 未启用 Redis 时返回 nil
	GetLeaderboard() LeaderboardInterface
	GetSessionManager() *session.Manager
	GetGameConfig() *config.GameConfig
	IsMaintenanceMode() bool
	GetOnlineCount() int
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
}

// LeaderboardInterface 排行榜接口
type LeaderboardInterface interface {
	RecordGame(ctx context.Context, playerID, playerName string, result storage.GameResult) error
	GetPlayerStats(ctx context.Context, playerID string) (*storage.PlayerStats, error)
	GetPlayerRank(ctx context.Context, playerID string) (int64, error)
	GetTopPlayers(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
}

// ClientInterface 客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	// Rebind 重连成功后换成旧会话的身份
	Rebind(id, name string)
	SendMessage(msg *protocol.Message)
	Close()
}
