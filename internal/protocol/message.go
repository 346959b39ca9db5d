package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 牌局操作
	MsgNewGame          MessageType = "new_game"           // 开新局
	MsgDraw             MessageType = "draw"               // 翻牌
	MsgMoveToFoundation MessageType = "move_to_foundation" // 移到收牌堆
	MsgMoveToTableau    MessageType = "move_to_tableau"    // 移到桌面列
	MsgFlip             MessageType = "flip"               // 翻开列顶牌
	MsgClick            MessageType = "click"              // 点击牌堆
	MsgUndo             MessageType = "undo"               // 撤销
	MsgAutoComplete     MessageType = "auto_complete"      // 自动收牌
	MsgHint             MessageType = "hint"               // 提示
	MsgGetState         MessageType = "get_state"          // 获取当前局面

	// 排行榜
	MsgGetStats       MessageType = "get_stats"       // 获取个人统计
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取排行榜
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"   // 连接成功
	MsgReconnected MessageType = "reconnected" // 重连成功
	MsgPong        MessageType = "pong"        // 心跳 pong

	// 牌局
	MsgState      MessageType = "state"       // 局面更新
	MsgHintResult MessageType = "hint_result" // 提示结果
	MsgGameWon    MessageType = "game_won"    // 获胜

	// 排行榜
	MsgStatsResult       MessageType = "stats_result"       // 个人统计结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
