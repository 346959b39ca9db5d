package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palemoky/klondike/internal/bot"
	"github.com/palemoky/klondike/internal/config"
	"github.com/palemoky/klondike/internal/network/client"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	serverURL := flag.String("server", "", "服务器地址，为空时使用配置中的 client.server_addr")
	seed := flag.Uint64("seed", 0, "发牌种子，0 表示随机")
	drawCount := flag.Int("draw", 0, "每次翻牌张数（1 或 3），0 表示使用服务端配置")
	steps := flag.Int("steps", 500, "最多执行的指令数")
	delay := flag.Duration("delay", 150*time.Millisecond, "每步之间的停顿")
	binary := flag.Bool("binary", false, "使用 protobuf 二进制帧")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}
	url := *serverURL
	if url == "" {
		url = cfg.Client.ServerAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(url)
	if *binary {
		c.Format = codec.FormatBinary
	}
	if err := c.Connect(ctx); err != nil {
		log.Fatalf("连接服务器失败: %v", err)
	}
	defer c.Close()

	if _, err := c.Await(ctx, protocol.MsgConnected); err != nil {
		log.Fatalf("等待连接确认失败: %v", err)
	}
	log.Printf("✅ 已连接 %s，玩家 %s", url, c.PlayerName())

	res, err := bot.New(c, bot.Options{
		Seed:      *seed,
		DrawCount: *drawCount,
		MaxSteps:  *steps,
		Delay:     *delay,
	}).Play(ctx)
	if err != nil {
		log.Fatalf("对局中断: %v (%s)", err, res)
	}
	log.Println(res)

	// 排行榜未启用时服务端返回错误，忽略即可
	if err := c.GetStats(); err == nil {
		if msg, err := c.Await(ctx, protocol.MsgStatsResult); err == nil {
			if stats, err := codec.ParsePayload[protocol.StatsResultPayload](msg); err == nil {
				log.Printf("📊 %s: %d 局 %d 胜, 最高分 %d, 排名 %d",
					stats.PlayerName, stats.GamesPlayed, stats.GamesWon, stats.BestScore, stats.Rank)
			}
		}
	}
}
