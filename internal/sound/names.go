// Package sound plays short effects in the terminal client. Builds tagged
// ci get a silent implementation without audio dependencies.
package sound

// 音效名，对应音效目录下的文件名
const (
	Deal    = "deal"
	Move    = "move"
	Flip    = "flip"
	Undo    = "undo"
	Error   = "error"
	Win     = "win"
	Recycle = "recycle"
)

// DefaultDir 默认音效目录
const DefaultDir = "assets/sounds"
