package handlers

import (
	"context"

	"github.com/palemoky/klondike/internal/network/server/types"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

// --- 排行榜处理 ---

// handleGetStats 获取个人统计
func (h *Handler) handleGetStats(client types.ClientInterface) {
	lb := h.server.GetLeaderboard()
	if lb == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "Leaderboard is disabled"))
		return
	}

	ctx := context.Background()
	stats, err := lb.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "Failed to load stats"))
		return
	}

	if stats == nil {
		// 没有统计数据，返回空数据
		client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
		}))
		return
	}

	// 获取排名
	rank, _ := lb.GetPlayerRank(ctx, client.GetID())

	client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		PlayerID:      stats.PlayerID,
		PlayerName:    stats.PlayerName,
		GamesPlayed:   stats.TotalGames,
		GamesWon:      stats.Wins,
		WinRate:       stats.WinRate(),
		TotalScore:    stats.TotalScore,
		BestScore:     stats.BestScore,
		FewestMoves:   stats.FewestMoves,
		FastestWin:    stats.FastestWin,
		CurrentStreak: stats.CurrentStreak,
		BestStreak:    stats.MaxWinStreak,
		Rank:          int(rank),
	}))
}

// handleGetLeaderboard 获取排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	lb := h.server.GetLeaderboard()
	if lb == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "Leaderboard is disabled"))
		return
	}

	limit := defaultLeaderboardLimit
	if payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg); err == nil &&
		payload.Limit > 0 && payload.Limit <= maxLeaderboardLimit {
		limit = payload.Limit
	}

	entries, err := lb.GetTopPlayers(context.Background(), limit)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "Failed to load leaderboard"))
		return
	}

	// 转换为协议格式
	result := make([]protocol.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, protocol.LeaderboardEntry{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Wins:       e.Wins,
			BestScore:  e.BestScore,
		})
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Entries: result,
	}))
}
