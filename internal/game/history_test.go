package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/game/card"
)

func TestUndo_RestoresPreviousState(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s0 := e.NewGame()

	s1, err := e.Draw(s0)
	require.NoError(t, err)
	s2, err := e.Draw(s1)
	require.NoError(t, err)
	require.Len(t, s2.History, 2)

	back, err := e.Undo(s2)
	require.NoError(t, err)
	assert.Equal(t, s1, back)

	back, err = e.Undo(back)
	require.NoError(t, err)
	assert.Equal(t, s0, back)
	assert.False(t, back.CanUndo())

	again, err := e.Undo(back)
	assert.ErrorIs(t, err, apperrors.ErrNoHistory)
	assert.Same(t, back, again)
}

func TestUndo_AfterFoundationMove(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("A♣")}}
	p, ok := s.Pick(FromWaste())
	require.True(t, ok)

	n, err := e.MoveToFoundation(s, p, card.Clubs)
	require.NoError(t, err)

	back, err := e.Undo(n)
	require.NoError(t, err)
	assert.Equal(t, s, back)
	assert.Zero(t, back.Score)
	assert.Zero(t, back.Moves)
}

func TestHistory_IsBounded(t *testing.T) {
	t.Parallel()

	e := newTestEngine(WithDrawCount(1))
	s := e.NewGame()

	var err error
	for range 60 {
		s, err = e.Draw(s)
		require.NoError(t, err)
	}
	assert.Equal(t, 60, s.Moves)
	assert.Len(t, s.History, DefaultHistoryLimit)

	for range DefaultHistoryLimit {
		s, err = e.Undo(s)
		require.NoError(t, err)
	}
	// 最早的 10 步已被丢弃
	assert.Equal(t, 10, s.Moves)
	_, err = e.Undo(s)
	assert.ErrorIs(t, err, apperrors.ErrNoHistory)
}

func TestHistory_CustomLimit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(WithHistoryLimit(3))
	s := e.NewGame()
	var err error
	for range 5 {
		s, err = e.Draw(s)
		require.NoError(t, err)
	}
	assert.Len(t, s.History, 3)
	for _, snap := range s.History {
		assert.Nil(t, snap.History, "snapshots never nest")
	}
}

func TestHistory_SharedPrefixUntouched(t *testing.T) {
	t.Parallel()

	// 从同一状态分叉出的两条历史互不影响
	e := newTestEngine()
	base, err := e.Draw(e.NewGame())
	require.NoError(t, err)

	a, err := e.Draw(base)
	require.NoError(t, err)
	b, err := newTestEngine(WithDrawCount(1)).Draw(base)
	require.NoError(t, err)

	require.Len(t, a.History, 2)
	require.Len(t, b.History, 2)
	assert.Same(t, a.History[0], b.History[0])
	assert.Equal(t, base.snapshot(), a.History[1])
	assert.Equal(t, base.snapshot(), b.History[1])
}

func TestAutoComplete_Wins(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := NearlyWon()

	n, err := e.AutoComplete(s)
	require.NoError(t, err)
	assert.True(t, n.Won)
	assert.True(t, CheckWin(n))
	assert.Equal(t, 520, n.Score)
	assert.Equal(t, 52, n.Moves)
	assert.Len(t, n.History, 1, "one history entry for the whole sequence")
	for _, col := range n.Tableau {
		assert.Empty(t, col)
	}
	assert.NoError(t, Validate(n))
	assert.False(t, s.Won, "input must not change")
}

func TestAutoComplete_NothingToMove(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("5♥")}}
	s.Tableau[0] = []card.Card{down("A♠")}

	n, err := e.AutoComplete(s)
	require.NoError(t, err)
	assert.Same(t, s, n)
}

func TestAutoComplete_ChainsWasteAndColumns(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("3♥")}}
	s.Foundations[card.Hearts] = FoundationUpTo(card.Hearts, card.Two)
	s.Tableau[0] = []card.Card{down("9♣"), up("4♥")}
	s.Tableau[6] = []card.Card{up("A♦")}

	n, err := e.AutoComplete(s)
	require.NoError(t, err)
	assert.Len(t, n.Foundations[card.Hearts], 4)
	assert.Len(t, n.Foundations[card.Diamonds], 1)
	assert.Equal(t, []card.Card{up("9♣")}, n.Tableau[0], "exposed card flips")
	assert.Empty(t, n.Waste)
	assert.Equal(t, 30, n.Score)
	assert.Equal(t, 3, n.Moves)
	assert.False(t, n.Won)

	back, err := e.Undo(n)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestWin_IsLatched(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	won, err := e.AutoComplete(NearlyWon())
	require.NoError(t, err)
	require.True(t, won.Won)

	ops := map[string]func(*State) (*State, error){
		"draw":          e.Draw,
		"undo":          e.Undo,
		"auto complete": e.AutoComplete,
		"flip":          func(s *State) (*State, error) { return e.Flip(s, 0) },
		"click":         func(s *State) (*State, error) { return e.Click(s, FromFoundation(card.Hearts)) },
		"to tableau": func(s *State) (*State, error) {
			p, _ := s.Pick(FromFoundation(card.Spades))
			return e.MoveToTableau(s, p, 0)
		},
		"to foundation": func(s *State) (*State, error) {
			p, _ := s.Pick(FromFoundation(card.Spades))
			return e.MoveToFoundation(s, p, card.Spades)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			n, err := op(won)
			assert.ErrorIs(t, err, apperrors.ErrGameFinished)
			assert.Same(t, won, n)
			assert.True(t, won.Won)
		})
	}
}

func TestGetHint(t *testing.T) {
	t.Parallel()

	tableauAce := &State{Waste: []card.Card{up("A♥")}, Deck: card.Deck{down("2♣")}}
	tableauAce.Tableau[2] = []card.Card{up("A♠")}

	wasteAce := &State{Waste: []card.Card{up("A♥")}, Deck: card.Deck{down("2♣")}}
	wasteAce.Tableau[0] = []card.Card{down("A♠")}

	stock := &State{Waste: []card.Card{up("9♥")}, Deck: card.Deck{down("2♣")}}

	tests := []struct {
		name    string
		state   *State
		kind    HintKind
		from    Source
		message string
	}{
		{"column before waste", tableauAce, HintTableauToFoundation, FromColumn(2), "Move A of spades to foundation"},
		{"waste card", wasteAce, HintWasteToFoundation, FromWaste(), "Move A of hearts from waste to foundation"},
		{"draw", stock, HintDraw, Source{}, "Draw cards from deck"},
		{"nothing", &State{}, HintNone, Source{}, "No obvious moves available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			before := tt.state.clone()
			h := GetHint(tt.state)
			assert.Equal(t, tt.kind, h.Kind)
			assert.Equal(t, tt.from, h.From)
			assert.Equal(t, tt.message, h.String())
			assert.Equal(t, before, tt.state.clone())
		})
	}
}

func TestGetHint_NextFoundationCard(t *testing.T) {
	t.Parallel()

	s := &State{}
	s.Foundations[card.Diamonds] = FoundationUpTo(card.Diamonds, card.Nine)
	s.Tableau[4] = []card.Card{up("10♦")}

	h := GetHint(s)
	assert.Equal(t, HintTableauToFoundation, h.Kind)
	assert.Equal(t, "Move 10 of diamonds to foundation", h.Message)
	assert.True(t, h.Card.Same(card.MustParse("10♦")))
}
