package protocol

// 牌堆位置类型
const (
	LocationWaste      = "waste"
	LocationTableau    = "tableau"
	LocationFoundation = "foundation"
)

// LocationInfo 牌的来源位置。Column 只在 tableau 时有效（从 0 开始），
// Suit 只在 foundation 时有效。
type LocationInfo struct {
	Kind   string `json:"kind"`
	Column int    `json:"column,omitempty"`
	Suit   string `json:"suit,omitempty"`
}

// CardInfo 牌信息。背面朝上的牌不携带花色和点数。
type CardInfo struct {
	Suit   string `json:"suit,omitempty"` // hearts/diamonds/clubs/spades
	Rank   string `json:"rank,omitempty"` // A,2..10,J,Q,K
	FaceUp bool   `json:"face_up"`
}

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// NewGamePayload 开新局请求。Seed 为 0 时随机发牌。
type NewGamePayload struct {
	Seed      uint64 `json:"seed,omitempty,string"`
	DrawCount int    `json:"draw_count,omitempty"` // 1 或 3，为 0 时使用服务端配置
}

// MoveToFoundationPayload 移到收牌堆请求，Suit 为空时使用牌自身的花色
type MoveToFoundationPayload struct {
	From LocationInfo `json:"from"`
	Suit string       `json:"suit,omitempty"`
}

// MoveToTableauPayload 移到桌面列请求，Count 大于 1 时移动一串牌
type MoveToTableauPayload struct {
	From   LocationInfo `json:"from"`
	Column int          `json:"column"`
	Count  int          `json:"count,omitempty"`
}

// FlipPayload 翻牌请求
type FlipPayload struct {
	Column int `json:"column"`
}

// ClickPayload 点击请求
type ClickPayload struct {
	From LocationInfo `json:"from"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Limit int `json:"limit"` // 数量
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string            `json:"player_id"`
	PlayerName string            `json:"player_name"`
	Game       *GameStatePayload `json:"game,omitempty"` // 如果有进行中的牌局
}

// FoundationInfo 一个收牌堆
type FoundationInfo struct {
	Suit  string     `json:"suit"`
	Cards []CardInfo `json:"cards"`
}

// GameStatePayload 局面。牌库只下发张数，桌面背面朝上的牌不暴露身份。
type GameStatePayload struct {
	DeckCount      int              `json:"deck_count"`
	Waste          []CardInfo       `json:"waste"`
	Foundations    []FoundationInfo `json:"foundations"`
	Tableau        [][]CardInfo     `json:"tableau"`
	Score          int              `json:"score"`
	Moves          int              `json:"moves"`
	Won            bool             `json:"won"`
	Seed           uint64           `json:"seed,string"`
	DrawCount      int              `json:"draw_count"`
	CanUndo        bool             `json:"can_undo"`
	ElapsedSeconds int64            `json:"elapsed_seconds"`
}

// HintPayload 提示结果
type HintPayload struct {
	Kind    string        `json:"kind"` // tableau_to_foundation/waste_to_foundation/draw/none
	Message string        `json:"message"`
	Card    *CardInfo     `json:"card,omitempty"`
	From    *LocationInfo `json:"from,omitempty"`
}

// GameWonPayload 获胜通知
type GameWonPayload struct {
	Score          int    `json:"score"`
	Moves          int    `json:"moves"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Seed           uint64 `json:"seed,string"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
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

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	GamesPlayed   int     `json:"games_played"`
	GamesWon      int     `json:"games_won"`
	WinRate       float64 `json:"win_rate"`
	TotalScore    int64   `json:"total_score"`
	BestScore     int     `json:"best_score"`
	FewestMoves   int     `json:"fewest_moves"`
	FastestWin    int64   `json:"fastest_win_seconds"`
	CurrentStreak int     `json:"current_streak"`
	BestStreak    int     `json:"best_streak"`
	Rank          int     `json:"rank"`
}
