package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/klondike/internal/config"
	"github.com/palemoky/klondike/internal/logger"
	"github.com/palemoky/klondike/internal/sound"
	"github.com/palemoky/klondike/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	seed := flag.Uint64("seed", 0, "发牌种子，0 表示随机")
	drawCount := flag.Int("draw", 0, "每次翻牌张数（1 或 3），0 表示使用配置")
	soundDir := flag.String("sounds", sound.DefaultDir, "音效目录")
	flag.Parse()

	// 终端被界面占用，日志写入文件
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.LogInfo("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *drawCount != 0 {
		cfg.Game.DrawCount = *drawCount
	}

	model := ui.NewModel(ui.Options{
		DrawCount:    cfg.Game.DrawCount,
		HistoryLimit: cfg.Game.HistoryLimit,
		Seed:         *seed,
		Sound:        cfg.Client.Sound,
		SoundDir:     *soundDir,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("客户端异常退出: %v", err)
		logger.Close()
		fmt.Fprintf(os.Stderr, "启动客户端时出错: %v\n", err)
		os.Exit(1)
	}
}
