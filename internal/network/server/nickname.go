package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	adjectives = []string{
		"耐心的", "专注的", "冷静的", "幸运的", "执着的",
		"细心的", "安静的", "敏捷的", "沉稳的", "悠闲的",
		"机智的", "从容的", "认真的", "果断的", "淡定的",
	}

	nouns = []string{
		"红桃", "黑桃", "方块", "梅花", "国王",
		"王后", "骑士", "纸牌", "牌手", "洗牌人",
		"收藏家", "旅人", "钟表匠", "灯塔", "夜猫子",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
