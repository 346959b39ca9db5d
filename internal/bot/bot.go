// Package bot plays Klondike over the wire by following server hints. It is
// used by cmd/autoplay to exercise a running server end to end.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/palemoky/klondike/internal/network/client"
	"github.com/palemoky/klondike/internal/protocol"
	"github.com/palemoky/klondike/internal/protocol/codec"
)

// maxIdleDraws 连续翻牌而没有收牌的上限，超过即认为无解
const maxIdleDraws = 60

// 提示类型，与服务端 HintPayload.Kind 一致
const (
	hintTableauToFoundation = "tableau_to_foundation"
	hintWasteToFoundation   = "waste_to_foundation"
	hintDraw                = "draw"
	hintNone                = "none"
)

// Options 自动对局参数
type Options struct {
	Seed      uint64
	DrawCount int
	MaxSteps  int
	Delay     time.Duration // 每步之间的停顿
}

// Result 一局的结果
type Result struct {
	Seed  uint64
	Won   bool
	Score int
	Moves int
	Steps int
}

func (r Result) String() string {
	outcome := "未完成"
	if r.Won {
		outcome = "获胜"
	}
	return fmt.Sprintf("牌局 #%d %s: 得分 %d, 步数 %d (指令 %d 条)", r.Seed, outcome, r.Score, r.Moves, r.Steps)
}

// Bot 通过已连接的客户端下一局
type Bot struct {
	client *client.Client
	opts   Options
}

// New 创建机器人，c 必须已经收到 connected 消息
func New(c *client.Client, opts Options) *Bot {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 500
	}
	return &Bot{client: c, opts: opts}
}

// Play 开一局并按提示行动，直到获胜、无路可走或达到步数上限
func (b *Bot) Play(ctx context.Context) (Result, error) {
	if err := b.client.NewGame(b.opts.Seed, b.opts.DrawCount); err != nil {
		return Result{}, err
	}
	state, err := b.awaitState(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("new game: %w", err)
	}
	log.Printf("🃏 开始牌局 #%d (翻 %d 张)", state.Seed, state.DrawCount)

	res := Result{Seed: state.Seed}
	idleDraws := 0

	for res.Steps < b.opts.MaxSteps && !state.Won {
		if err := b.pause(ctx); err != nil {
			return res.with(state), err
		}

		hint, err := b.hint(ctx)
		if err != nil {
			return res.with(state), err
		}
		res.Steps++

		switch hint.Kind {
		case hintTableauToFoundation, hintWasteToFoundation:
			idleDraws = 0
			err = b.client.MoveToFoundation(*hint.From, "")
		case hintDraw:
			idleDraws++
			if idleDraws > maxIdleDraws {
				log.Printf("🔁 连续翻牌 %d 次没有进展，停止", idleDraws-1)
				return res.with(state), nil
			}
			err = b.client.Draw()
		default:
			// 没有单步提示时尝试自动收牌，仍然不行就结束
			err = b.client.AutoComplete()
		}
		if err != nil {
			return res.with(state), err
		}

		next, err := b.awaitState(ctx)
		var serverErr *client.ServerError
		if errors.As(err, &serverErr) && hint.Kind == hintNone {
			return res.with(state), nil
		}
		if err != nil {
			return res.with(state), err
		}
		state = next

		if hint.Kind == hintNone && !state.Won {
			return res.with(state), nil
		}
	}

	if state.Won {
		log.Printf("🏆 牌局 #%d 获胜", state.Seed)
	}
	return res.with(state), nil
}

func (r Result) with(s *protocol.GameStatePayload) Result {
	r.Won = s.Won
	r.Score = s.Score
	r.Moves = s.Moves
	return r
}

func (b *Bot) hint(ctx context.Context) (*protocol.HintPayload, error) {
	if err := b.client.Hint(); err != nil {
		return nil, err
	}
	msg, err := b.client.Await(ctx, protocol.MsgHintResult)
	if err != nil {
		return nil, fmt.Errorf("hint: %w", err)
	}
	return codec.ParsePayload[protocol.HintPayload](msg)
}

func (b *Bot) awaitState(ctx context.Context) (*protocol.GameStatePayload, error) {
	msg, err := b.client.Await(ctx, protocol.MsgState)
	if err != nil {
		return nil, err
	}
	return codec.ParsePayload[protocol.GameStatePayload](msg)
}

func (b *Bot) pause(ctx context.Context) error {
	if b.opts.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.opts.Delay):
		return nil
	}
}
