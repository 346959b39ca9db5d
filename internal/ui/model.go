// Package ui is the terminal front-end: a bubbletea model that drives a local
// game engine with a keyboard cursor over the thirteen piles.
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/logger"
	"github.com/palemoky/klondike/internal/sound"
)

// statusDuration 提示信息的显示时长
const statusDuration = 3 * time.Second

// Options 终端客户端参数
type Options struct {
	DrawCount    int
	HistoryLimit int
	Seed         uint64 // 第一局的种子，0 表示随机
	Sound        bool
	SoundDir     string
}

// player 播放音效
type player interface {
	Init() error
	Play(name string)
	Close()
}

// selection 已选中、等待放置的牌
type selection struct {
	pile  Pile
	count int
}

// clearStatusMsg 清除提示，seq 不是最新时忽略
type clearStatusMsg struct {
	seq int
}

// Model 终端单人纸牌
type Model struct {
	engine *game.Engine
	state  *game.State

	cursor   Pile
	depth    int // 光标在列上时选中的张数
	selected *selection

	status    string
	statusSeq int

	keys      keyMap
	help      help.Model
	stopwatch stopwatch.Model
	sound     player
	soundOn   bool

	width int
}

// NewModel 创建模型并发第一局牌
func NewModel(opts Options) *Model {
	engine := game.NewEngine(
		game.WithDrawCount(opts.DrawCount),
		game.WithHistoryLimit(opts.HistoryLimit),
	)

	var state *game.State
	if opts.Seed != 0 {
		state = engine.NewGameWithSeed(opts.Seed)
	} else {
		state = engine.NewGame()
	}

	dir := opts.SoundDir
	if dir == "" {
		dir = sound.DefaultDir
	}

	logger.LogInfo("新牌局 #%d (翻 %d 张)", state.Seed, engine.Options().DrawCount)
	return &Model{
		engine:    engine,
		state:     state,
		cursor:    ColumnPile(0),
		depth:     1,
		keys:      defaultKeyMap(),
		help:      help.New(),
		stopwatch: stopwatch.NewWithInterval(time.Second),
		sound:     sound.NewSoundManager(dir),
		soundOn:   opts.Sound,
	}
}

// State 当前局面
func (m *Model) State() *game.State {
	return m.state
}

// Cursor 光标所在牌堆
func (m *Model) Cursor() Pile {
	return m.cursor
}

// Status 当前提示信息
func (m *Model) Status() string {
	return m.status
}

func (m *Model) Init() tea.Cmd {
	if m.soundOn {
		go func() {
			if err := m.sound.Init(); err != nil {
				logger.LogError("音效初始化失败: %v", err)
			}
		}()
	}
	return m.stopwatch.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.stopwatch, cmd = m.stopwatch.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.soundOn {
			m.sound.Close()
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.setDepth(m.depth + 1)
	case key.Matches(msg, m.keys.Down):
		m.setDepth(m.depth - 1)
	case key.Matches(msg, m.keys.Cancel):
		m.selected = nil
	case key.Matches(msg, m.keys.Select):
		return m.selectOrPlace()
	case key.Matches(msg, m.keys.Click):
		return m.click()
	case key.Matches(msg, m.keys.Draw):
		return m.draw()
	case key.Matches(msg, m.keys.AutoComplete):
		return m.apply(m.engine.AutoComplete, sound.Move)
	case key.Matches(msg, m.keys.Undo):
		return m.apply(m.engine.Undo, sound.Undo)
	case key.Matches(msg, m.keys.Hint):
		return m.notify("💡 " + game.GetHint(m.state).Message)
	case key.Matches(msg, m.keys.NewGame):
		return m.newGame()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor = m.cursor.move(delta)
	m.depth = 1
}

// setDepth 调整选中张数，不超过列上正面朝上的牌数
func (m *Model) setDepth(n int) {
	if !m.cursor.IsColumn() {
		m.depth = 1
		return
	}
	m.depth = max(1, min(n, faceUpCount(m.state.Column(m.cursor.Column()))))
}

// selectOrPlace 没有选中牌时选牌，否则把选中的牌放到光标处
func (m *Model) selectOrPlace() tea.Cmd {
	if m.selected == nil {
		return m.pick()
	}

	sel := *m.selected
	if sel.pile == m.cursor {
		m.selected = nil
		return nil
	}

	p, ok := m.pickOf(sel)
	if !ok {
		m.selected = nil
		return m.fail(apperrors.ErrInvalidMove)
	}

	switch {
	case m.cursor.IsFoundation():
		suit := m.cursor.Suit()
		return m.apply(func(s *game.State) (*game.State, error) {
			return m.engine.MoveToFoundation(s, p, suit)
		}, sound.Move)
	case m.cursor.IsColumn():
		col := m.cursor.Column()
		return m.apply(func(s *game.State) (*game.State, error) {
			return m.engine.MoveToTableau(s, p, col)
		}, sound.Move)
	default:
		m.selected = nil
		return m.fail(apperrors.ErrInvalidMove)
	}
}

// pick 选中光标处的牌。牌库直接翻牌，背面朝上的列顶牌直接翻开。
func (m *Model) pick() tea.Cmd {
	if m.cursor == PileDeck {
		return m.draw()
	}

	from, _ := m.cursor.Source()
	top, ok := m.state.Top(from)
	if !ok {
		return nil
	}
	if m.cursor.IsColumn() && !top.FaceUp {
		col := m.cursor.Column()
		return m.apply(func(s *game.State) (*game.State, error) {
			return m.engine.Flip(s, col)
		}, sound.Flip)
	}

	count := 1
	if m.cursor.IsColumn() {
		count = m.depth
	}
	m.selected = &selection{pile: m.cursor, count: count}
	return nil
}

func (m *Model) pickOf(sel selection) (game.Pick, bool) {
	if sel.pile.IsColumn() && sel.count > 1 {
		return m.state.PickRun(sel.pile.Column(), sel.count)
	}
	from, ok := sel.pile.Source()
	if !ok {
		return game.Pick{}, false
	}
	return m.state.Pick(from)
}

// click 把光标处的牌放到第一个合法位置
func (m *Model) click() tea.Cmd {
	if m.cursor == PileDeck {
		return m.draw()
	}
	from, _ := m.cursor.Source()
	return m.apply(func(s *game.State) (*game.State, error) {
		return m.engine.Click(s, from)
	}, sound.Move)
}

func (m *Model) draw() tea.Cmd {
	sfx := sound.Deal
	if len(m.state.Deck) == 0 {
		sfx = sound.Recycle
	}
	return m.apply(m.engine.Draw, sfx)
}

func (m *Model) newGame() tea.Cmd {
	m.state = m.engine.NewGame()
	m.selected = nil
	m.depth = 1
	m.play(sound.Deal)
	logger.LogInfo("新牌局 #%d", m.state.Seed)
	return tea.Batch(
		m.notify(fmt.Sprintf("🃏 新牌局 #%d", m.state.Seed)),
		m.stopwatch.Reset(),
		m.stopwatch.Start(),
	)
}

// apply 执行一次操作并替换局面，没有变化时给出提示
func (m *Model) apply(op func(*game.State) (*game.State, error), sfx string) tea.Cmd {
	m.selected = nil

	next, err := op(m.state)
	if err != nil {
		return m.fail(err)
	}
	if next == m.state {
		return m.notify("没有可以放置的位置")
	}

	won := next.Won && !m.state.Won
	m.state = next
	m.setDepth(m.depth)

	if won {
		return m.win()
	}
	m.play(sfx)
	return nil
}

func (m *Model) win() tea.Cmd {
	m.play(sound.Win)
	logger.LogInfo("牌局 #%d 获胜: %d 分, %d 步, 用时 %s",
		m.state.Seed, m.state.Score, m.state.Moves, m.stopwatch.Elapsed())
	return tea.Batch(
		m.notify("🎉 恭喜获胜！按 n 开始新局"),
		m.stopwatch.Stop(),
	)
}

func (m *Model) fail(err error) tea.Cmd {
	m.play(sound.Error)
	switch {
	case errors.Is(err, apperrors.ErrInvalidMove):
		return m.notify("❌ 不能这样移动")
	case errors.Is(err, apperrors.ErrNoHistory):
		return m.notify("↩️ 没有可以撤销的步骤")
	case errors.Is(err, apperrors.ErrGameFinished):
		return m.notify("牌局已结束，按 n 开始新局")
	default:
		logger.LogError("操作失败: %v", err)
		return m.notify("⚠️ " + err.Error())
	}
}

// notify 显示提示，statusDuration 后自动清除
func (m *Model) notify(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) play(name string) {
	if m.soundOn {
		m.sound.Play(name)
	}
}
