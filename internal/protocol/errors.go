package protocol

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeRateLimit         = 1002 // 速率限制
	ErrCodeInvalidMove       = 3001
	ErrCodeNoHistory         = 3002
	ErrCodeGameFinished      = 3003
	ErrCodeNoGame            = 3004
	ErrCodeSessionNotFound   = 4001 // 重连会话不存在或已过期
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "Unknown error",
	ErrCodeInvalidMsg:        "Invalid message format",
	ErrCodeRateLimit:         "Too many requests",
	ErrCodeInvalidMove:       "Invalid move",
	ErrCodeNoHistory:         "No moves to undo",
	ErrCodeGameFinished:      "The game is finished, start a new one",
	ErrCodeNoGame:            "No game in progress",
	ErrCodeSessionNotFound:   "Session expired",
	ErrCodeServerMaintenance: "Server under maintenance",
}
