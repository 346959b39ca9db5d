// Package game implements the Klondike state machine.
//
// Every operation takes the current *State and returns a new one; the input
// is never modified. The previous state is pushed onto the new state's
// history (bounded), which is what Undo walks back through.
package game

import (
	"math/rand/v2"

	"github.com/palemoky/klondike/internal/game/card"
)

const (
	// DefaultDrawCount 每次从牌库翻出的张数
	DefaultDrawCount = 3
	// DefaultHistoryLimit 可撤销的最大步数
	DefaultHistoryLimit = 50
	// FoundationScore 每张牌进入收牌堆的得分
	FoundationScore = 10
)

// Options 引擎参数
type Options struct {
	DrawCount    int
	HistoryLimit int
}

// Engine applies moves to game states. It holds no game state itself, so one
// Engine can serve any number of games. The default seed source is safe for
// concurrent use; a source installed with WithRand is not.
type Engine struct {
	opts  Options
	seeds func() uint64
}

// Option 引擎配置项
type Option func(*Engine)

// WithDrawCount 设置每次翻牌张数（1 或 3）
func WithDrawCount(n int) Option {
	return func(e *Engine) {
		if n == 1 || n == 3 {
			e.opts.DrawCount = n
		}
	}
}

// WithHistoryLimit 设置历史记录上限
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.opts.HistoryLimit = n
		}
	}
}

// WithSeedSource 设置新牌局种子的来源
func WithSeedSource(next func() uint64) Option {
	return func(e *Engine) {
		if next != nil {
			e.seeds = next
		}
	}
}

// WithRand 使用给定的随机源生成牌局种子，便于测试复现
func WithRand(rng *rand.Rand) Option {
	return WithSeedSource(rng.Uint64)
}

// NewEngine 创建引擎
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		opts: Options{
			DrawCount:    DefaultDrawCount,
			HistoryLimit: DefaultHistoryLimit,
		},
		seeds: rand.Uint64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options 返回引擎参数
func (e *Engine) Options() Options {
	return e.opts
}

// NewGame 洗牌并发出一局新牌
func (e *Engine) NewGame() *State {
	return e.NewGameWithSeed(e.seeds())
}

// NewGameWithSeed 用指定种子发牌，相同种子得到相同牌局
func (e *Engine) NewGameWithSeed(seed uint64) *State {
	deck := card.Shuffle(card.NewDeck(), card.NewRand(seed))
	s := Deal(deck)
	s.Seed = seed
	return s
}

// Deal lays out deck in the Klondike triangle: column c receives c+1 cards,
// the last of which is face up. The remaining cards become the face-down
// stock. Deal expects 52 cards and does not shuffle.
func Deal(deck card.Deck) *State {
	s := &State{}
	i := 0
	for col := range NumColumns {
		s.Tableau[col] = make([]card.Card, 0, col+1+card.NumRanks)
		for row := 0; row <= col; row++ {
			s.Tableau[col] = append(s.Tableau[col], deck[i].Flipped(row == col))
			i++
		}
	}

	s.Deck = make(card.Deck, 0, len(deck)-i)
	for _, c := range deck[i:] {
		s.Deck = append(s.Deck, c.Flipped(false))
	}
	return s
}

// begin 创建工作副本并把 s 压入其历史
func (e *Engine) begin(s *State) *State {
	n := s.clone()
	n.History = appendHistory(s.History, s.snapshot(), e.opts.HistoryLimit)
	return n
}

// appendHistory 追加快照，超过上限时丢弃最旧的记录；总是返回新切片
func appendHistory(history []*State, snap *State, limit int) []*State {
	if limit < 1 {
		limit = 1
	}
	if over := len(history) + 1 - limit; over > 0 {
		history = history[over:]
	}
	out := make([]*State, 0, len(history)+1)
	out = append(out, history...)
	return append(out, snap)
}
