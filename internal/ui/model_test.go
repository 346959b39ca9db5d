package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/game/card"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(Options{DrawCount: 3, Seed: 42})
}

// withState 用构造好的局面替换当前局面
func withState(m *Model, s *game.State) *Model {
	m.state = s
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func repeat(k tea.KeyMsg, n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewModel(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	assert.Equal(t, uint64(42), m.State().Seed)
	assert.Len(t, m.State().Deck, 24)
	assert.Equal(t, ColumnPile(0), m.Cursor())
	assert.Empty(t, m.Status())
	assert.NotNil(t, m.Init())
}

func TestPile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pile       Pile
		foundation bool
		column     bool
		source     game.Source
		hasSource  bool
	}{
		{"deck", PileDeck, false, false, game.Source{}, false},
		{"waste", PileWaste, false, false, game.FromWaste(), true},
		{"hearts", FoundationPile(card.Hearts), true, false, game.FromFoundation(card.Hearts), true},
		{"spades", FoundationPile(card.Spades), true, false, game.FromFoundation(card.Spades), true},
		{"first column", ColumnPile(0), false, true, game.FromColumn(0), true},
		{"last column", ColumnPile(6), false, true, game.FromColumn(6), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.foundation, tt.pile.IsFoundation())
			assert.Equal(t, tt.column, tt.pile.IsColumn())
			src, ok := tt.pile.Source()
			assert.Equal(t, tt.hasSource, ok)
			assert.Equal(t, tt.source, src)
		})
	}
}

func TestModel_CursorWraps(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	press(m, left)
	assert.Equal(t, FoundationPile(card.Spades), m.Cursor())

	press(m, repeat(right, 2)...)
	assert.Equal(t, ColumnPile(1), m.Cursor())

	press(m, repeat(right, 5)...)
	assert.Equal(t, ColumnPile(6), m.Cursor())
	press(m, right)
	assert.Equal(t, PileDeck, m.Cursor())
	press(m, runes("h"))
	assert.Equal(t, ColumnPile(6), m.Cursor())
}

func TestModel_DrawAndUndo(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	press(m, runes("d"))
	assert.Len(t, m.State().Deck, 21)
	assert.Len(t, m.State().Waste, 3)
	assert.Equal(t, 1, m.State().Moves)

	press(m, runes("u"))
	assert.Len(t, m.State().Deck, 24)
	assert.Empty(t, m.State().Waste)

	press(m, runes("u"))
	assert.Contains(t, m.Status(), "撤销")
}

func TestModel_EnterOnDeckDraws(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	press(m, repeat(left, 6)...)
	require.Equal(t, PileDeck, m.Cursor())

	press(m, enter)
	assert.Len(t, m.State().Deck, 21)
}

func TestModel_SelectAndPlace(t *testing.T) {
	t.Parallel()

	m := withState(newTestModel(t), game.NearlyWon())

	press(m, enter)
	require.NotNil(t, m.selected)
	assert.Equal(t, ColumnPile(0), m.selected.pile)

	// 第 1 列 → 红心收牌堆
	press(m, repeat(left, 4)...)
	require.Equal(t, FoundationPile(card.Hearts), m.Cursor())
	press(m, enter)

	assert.Nil(t, m.selected)
	assert.Len(t, m.State().Foundation(card.Hearts), card.NumRanks)
	assert.Empty(t, m.State().Column(0))
	assert.Equal(t, 49*game.FoundationScore, m.State().Score)
}

func TestModel_InvalidPlace(t *testing.T) {
	t.Parallel()

	m := withState(newTestModel(t), game.NearlyWon())
	before := m.State()

	press(m, enter, left, enter)

	assert.Same(t, before, m.State())
	assert.Nil(t, m.selected)
	assert.Contains(t, m.Status(), "不能")
}

func TestModel_CancelSelection(t *testing.T) {
	t.Parallel()

	m := withState(newTestModel(t), game.NearlyWon())

	press(m, enter, enter)
	assert.Nil(t, m.selected, "enter on the same pile cancels")

	press(m, enter, esc)
	assert.Nil(t, m.selected)
}

func TestModel_MoveRun(t *testing.T) {
	t.Parallel()

	s := &game.State{Seed: 9}
	s.Tableau[0] = []card.Card{
		card.MustParse("K♠").Flipped(true),
		card.MustParse("Q♥").Flipped(true),
		card.MustParse("J♠").Flipped(true),
	}
	s.Tableau[1] = []card.Card{card.MustParse("5♦").Flipped(true)}
	s.Tableau[2] = nil
	m := withState(newTestModel(t), s)

	press(m, up, up, up)
	assert.Equal(t, 3, m.depth, "depth is capped by the face-up run")
	press(m, down)
	assert.Equal(t, 2, m.depth)
	press(m, up)

	press(m, enter, right, right, enter)

	assert.Empty(t, m.State().Column(0))
	require.Len(t, m.State().Column(2), 3)
	assert.Equal(t, card.King, m.State().Column(2)[0].Rank)
	assert.Equal(t, 1, m.depth, "depth resets when the cursor moves")
}

func TestModel_EnterFlipsFaceDownTop(t *testing.T) {
	t.Parallel()

	s := &game.State{Seed: 9}
	s.Tableau[0] = []card.Card{card.MustParse("7♣")}
	m := withState(newTestModel(t), s)

	press(m, enter)

	require.Len(t, m.State().Column(0), 1)
	assert.True(t, m.State().Column(0)[0].FaceUp)
	assert.Nil(t, m.selected)
}

func TestModel_Click(t *testing.T) {
	t.Parallel()

	m := withState(newTestModel(t), game.NearlyWon())
	press(m, space)

	assert.Len(t, m.State().Foundation(card.Hearts), card.NumRanks)
}

func TestModel_ClickNowhere(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	press(m, repeat(left, 5)...)
	require.Equal(t, PileWaste, m.Cursor())
	before := m.State()

	press(m, space)

	assert.Same(t, before, m.State())
	assert.NotEmpty(t, m.Status())
}

func TestModel_AutoCompleteWins(t *testing.T) {
	t.Parallel()

	m := withState(newTestModel(t), game.NearlyWon())
	cmd := press(m, runes("a"))

	assert.NotNil(t, cmd)
	assert.True(t, m.State().Won)
	assert.Equal(t, 52*game.FoundationScore, m.State().Score)
	assert.Contains(t, m.Status(), "恭喜")
	assert.Contains(t, m.View(), "恭喜通关")

	press(m, runes("d"))
	assert.Contains(t, m.Status(), "牌局已结束")
}

func TestModel_Hint(t *testing.T) {
	t.Parallel()

	m := withState(newTestModel(t), game.NearlyWon())
	press(m, runes("?"))

	assert.Contains(t, m.Status(), "Move K of hearts to foundation")
}

func TestModel_NewGame(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	press(m, runes("d"), runes("n"))

	assert.Equal(t, 0, m.State().Moves)
	assert.Len(t, m.State().Deck, 24)
	assert.Contains(t, m.Status(), "新牌局")
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	tests := []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}}
	for _, k := range tests {
		m := newTestModel(t)
		cmd := press(m, k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_StatusClears(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	cmd := press(m, runes("?"))
	require.NotNil(t, cmd)
	first := m.statusSeq

	press(m, runes("u"))
	m.Update(clearStatusMsg{seq: first})
	assert.NotEmpty(t, m.Status(), "a stale clear keeps the newer status")

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.Status())
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.help.Width)
}
