package session

import (
	"sync"
	"time"

	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/network/server/storage"
)

// Op 对当前局面执行一次操作
type Op func(e *game.Engine, s *game.State) (*game.State, error)

// GameSession 一个玩家正在进行的牌局
type GameSession struct {
	engine    *game.Engine
	state     *game.State
	startedAt time.Time
	wonAt     time.Time
	recorded  bool

	mu sync.Mutex
}

// NewGameSession 以 state 为初始局面创建牌局
func NewGameSession(engine *game.Engine, state *game.State) *GameSession {
	return &GameSession{
		engine:    engine,
		state:     state,
		startedAt: time.Now(),
	}
}

// State 当前局面
func (g *GameSession) State() *game.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// DrawCount 本局的翻牌张数
func (g *GameSession) DrawCount() int {
	return g.engine.Options().DrawCount
}

// Elapsed 已用时间，获胜后停止计时
func (g *GameSession) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elapsedLocked()
}

func (g *GameSession) elapsedLocked() time.Duration {
	if !g.wonAt.IsZero() {
		return g.wonAt.Sub(g.startedAt)
	}
	return time.Since(g.startedAt)
}

// Apply 执行操作并替换当前局面。
// justWon 仅在本次操作让牌局获胜时为 true。
func (g *GameSession) Apply(op Op) (next *game.State, justWon bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, err = op(g.engine, g.state)
	if err != nil {
		return g.state, false, err
	}

	justWon = next.Won && !g.state.Won
	if justWon {
		g.wonAt = time.Now()
	}
	g.state = next
	return next, justWon, nil
}

// Finished 是否已获胜
func (g *GameSession) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Won
}

// TakeResult 返回用于排行榜的结果。每局只返回一次，之后 ok 为 false。
func (g *GameSession) TakeResult() (result storage.GameResult, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.recorded {
		return storage.GameResult{}, false
	}
	g.recorded = true
	return storage.GameResult{
		Won:      g.state.Won,
		Score:    g.state.Score,
		Moves:    g.state.Moves,
		Duration: g.elapsedLocked(),
		Seed:     g.state.Seed,
	}, true
}

// Started 是否已经走过至少一步
func (g *GameSession) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Moves > 0
}
