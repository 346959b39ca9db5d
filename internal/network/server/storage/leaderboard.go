package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey   = "player:stats:"
	leaderboardKey   = "leaderboard:score"
	dailyLeaderboard = "leaderboard:daily:"
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	// 总计
	TotalGames int `json:"total_games"` // 总局数
	Wins       int `json:"wins"`        // 获胜局数
	Losses     int `json:"losses"`      // 放弃或未完成的局数

	// 成绩
	TotalScore  int64 `json:"total_score"`  // 获胜局累计得分
	BestScore   int   `json:"best_score"`   // 单局最高得分
	FewestMoves int   `json:"fewest_moves"` // 获胜局最少步数
	FastestWin  int64 `json:"fastest_win"`  // 最快获胜用时（秒）

	// 连胜
	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	// 时间
	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// WinRate 胜率（百分比）
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames) * 100
}

// GameResult 一局的结果
type GameResult struct {
	Won      bool
	Score    int
	Moves    int
	Duration time.Duration
	Seed     uint64
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int64  `json:"score"`
	Wins       int    `json:"wins"`
	BestScore  int    `json:"best_score"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// GetPlayerStats 获取玩家统计，没有记录时返回 nil, nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stats of %s: %w", playerID, err)
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

// getOrCreateStats 获取或创建玩家统计
func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  time.Now().Unix(),
		}
	}
	return stats, nil
}

// applyResult 把一局结果计入统计
func applyResult(stats *PlayerStats, result GameResult) {
	stats.TotalGames++
	stats.BestScore = max(stats.BestScore, result.Score)

	if !result.Won {
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
		return
	}

	stats.Wins++
	stats.TotalScore += int64(result.Score)
	stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	stats.MaxWinStreak = max(stats.MaxWinStreak, stats.CurrentStreak)

	if stats.FewestMoves == 0 || result.Moves < stats.FewestMoves {
		stats.FewestMoves = result.Moves
	}
	secs := int64(result.Duration / time.Second)
	if stats.FastestWin == 0 || secs < stats.FastestWin {
		stats.FastestWin = secs
	}
}

// RecordGame 记录一局结果，获胜时更新排行榜
func (lm *LeaderboardManager) RecordGame(ctx context.Context, playerID, playerName string, result GameResult) error {
	stats, err := lm.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	stats.PlayerName = playerName
	stats.LastPlayedAt = time.Now().Unix()
	applyResult(stats, result)

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	if !result.Won {
		return nil
	}
	return lm.UpdateLeaderboard(ctx, stats, result.Score)
}

// UpdateLeaderboard 更新总榜和日榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats, gained int) error {
	if err := lm.redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(stats.TotalScore),
		Member: stats.PlayerID,
	}).Err(); err != nil {
		return err
	}

	// 日榜只累计当天获胜的得分
	dailyKey := dailyLeaderboard + time.Now().Format("2006-01-02")
	if err := lm.redis.ZIncrBy(ctx, dailyKey, float64(gained), stats.PlayerID).Err(); err != nil {
		return err
	}
	// 设置过期时间（2天）
	return lm.redis.Expire(ctx, dailyKey, 48*time.Hour).Err()
}

// GetTopPlayers 获取总榜前 limit 名
func (lm *LeaderboardManager) GetTopPlayers(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := lm.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}
		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int64(result.Score),
			Wins:       stats.Wins,
			BestScore:  stats.BestScore,
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
