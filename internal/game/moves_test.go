package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/game/card"
)

// assertRejected checks that a rejected move hands back the very same state
// and left it untouched.
func assertRejected(t *testing.T, before, input, got *State, err error, target error) {
	t.Helper()
	require.ErrorIs(t, err, target)
	assert.Same(t, input, got)
	assert.Equal(t, before, input.clone())
}

func TestDraw_ThreeCards(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := e.NewGame()
	before := s.clone()
	top3 := s.Deck[len(s.Deck)-3:]

	n, err := e.Draw(s)
	require.NoError(t, err)

	assert.Len(t, n.Deck, 21)
	require.Len(t, n.Waste, 3)
	for i, c := range n.Waste {
		assert.True(t, c.FaceUp)
		assert.True(t, c.Same(top3[i]), "drawn batch keeps its order")
	}
	assert.Equal(t, 1, n.Moves)
	assert.Zero(t, n.Score)
	require.Len(t, n.History, 1)
	assert.Equal(t, before, s.clone(), "input state must not change")
	assert.NoError(t, Validate(n))
}

func TestDraw_DrawOne(t *testing.T) {
	t.Parallel()

	e := newTestEngine(WithDrawCount(1))
	s := e.NewGame()

	n, err := e.Draw(s)
	require.NoError(t, err)
	assert.Len(t, n.Deck, 23)
	assert.Len(t, n.Waste, 1)
}

func TestDraw_LastCard(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Deck: card.Deck{down("7♣")}, Waste: []card.Card{up("2♦")}, Moves: 4}

	n, err := e.Draw(s)
	require.NoError(t, err)
	assert.Empty(t, n.Deck)
	assert.Equal(t, []card.Card{up("2♦"), up("7♣")}, n.Waste)
	assert.Equal(t, 5, n.Moves)
}

func TestDraw_RecycleWaste(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	waste := []card.Card{up("A♠"), up("2♥"), up("3♣"), up("4♦"), up("5♠")}
	s := &State{Waste: waste}

	n, err := e.Draw(s)
	require.NoError(t, err)

	assert.Empty(t, n.Waste)
	require.Len(t, n.Deck, 5)
	for i, c := range n.Deck {
		assert.False(t, c.FaceUp)
		assert.True(t, c.Same(waste[len(waste)-1-i]), "deck is the waste reversed")
	}
	assert.Equal(t, 1, n.Moves)
	assert.True(t, s.Waste[0].FaceUp, "input waste must not be flipped")

	// 再翻一次，最早进入废牌堆的牌重新出现在最上面
	n, err = e.Draw(n)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{up("3♣"), up("2♥"), up("A♠")}, n.Waste)
}

func TestDraw_EmptyDeckAndWaste(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	n, err := e.Draw(s)
	require.NoError(t, err)
	assert.Empty(t, n.Deck)
	assert.Empty(t, n.Waste)
	assert.Equal(t, 1, n.Moves)
}

func TestMoveToFoundation_FromWaste(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("9♦"), up("A♠")}}

	p, ok := s.Pick(FromWaste())
	require.True(t, ok)

	n, err := e.MoveToFoundation(s, p, card.Spades)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{up("A♠")}, n.Foundations[card.Spades])
	assert.Equal(t, []card.Card{up("9♦")}, n.Waste)
	assert.Equal(t, 10, n.Score)
	assert.Equal(t, 1, n.Moves)
	assert.Len(t, n.History, 1)
}

func TestMoveToFoundation_FlipsExposedCard(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	s.Tableau[3] = []card.Card{down("8♣"), down("5♦"), up("A♣")}

	p, ok := s.Pick(FromColumn(3))
	require.True(t, ok)

	n, err := e.MoveToFoundation(s, p, card.Clubs)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{down("8♣"), up("5♦")}, n.Tableau[3])
	assert.False(t, s.Tableau[3][1].FaceUp, "input column must not be flipped")
}

func TestMoveToFoundation_Rejected(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("10♠")}}
	s.Tableau[0] = []card.Card{up("A♠")}
	s.Tableau[1] = []card.Card{up("2♠")}
	s.Foundations[card.Hearts] = FoundationUpTo(card.Hearts, card.Ace)

	tests := []struct {
		name string
		from Source
		suit card.Suit
	}{
		{"ten on empty foundation", FromWaste(), card.Spades},
		{"ace on the wrong suit", FromColumn(0), card.Clubs},
		{"two before ace", FromColumn(1), card.Spades},
		{"foundation to foundation", FromFoundation(card.Hearts), card.Hearts},
		{"invalid suit", FromColumn(0), card.Suit(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			before := s.clone()
			p, ok := s.Pick(tt.from)
			require.True(t, ok)
			n, err := e.MoveToFoundation(s, p, tt.suit)
			assertRejected(t, before, s, n, err, apperrors.ErrInvalidMove)
		})
	}
}

func TestMoveToFoundation_StalePick(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("A♥")}, Deck: card.Deck{down("K♣")}}

	p, ok := s.Pick(FromWaste())
	require.True(t, ok)

	drawn, err := e.Draw(s)
	require.NoError(t, err)

	before := drawn.clone()
	n, err := e.MoveToFoundation(drawn, p, card.Hearts)
	assertRejected(t, before, drawn, n, err, apperrors.ErrInvalidMove)

	_, err = e.MoveToFoundation(s, Pick{}, card.Hearts)
	assert.ErrorIs(t, err, apperrors.ErrInvalidMove)
}

func TestMoveToTableau(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("4♦"), up("4♣")}}
	s.Tableau[0] = []card.Card{down("2♣"), up("5♥")}

	p, ok := s.Pick(FromWaste())
	require.True(t, ok)

	n, err := e.MoveToTableau(s, p, 0)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{down("2♣"), up("5♥"), up("4♣")}, n.Tableau[0])
	assert.Equal(t, []card.Card{up("4♦")}, n.Waste)
	assert.Equal(t, 1, n.Moves)
	assert.Zero(t, n.Score)

	// 4♦ 与 5♥ 同为红色
	red := &State{Waste: []card.Card{up("4♦")}}
	red.Tableau[0] = []card.Card{up("5♥")}
	p, ok = red.Pick(FromWaste())
	require.True(t, ok)
	before := red.clone()
	rejected, err := e.MoveToTableau(red, p, 0)
	assertRejected(t, before, red, rejected, err, apperrors.ErrInvalidMove)
}

func TestMoveToTableau_EmptyColumnTakesOnlyKings(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	s.Tableau[0] = []card.Card{down("3♥"), up("K♠")}
	s.Tableau[1] = []card.Card{up("Q♦")}

	p, ok := s.Pick(FromColumn(1))
	require.True(t, ok)
	before := s.clone()
	n, err := e.MoveToTableau(s, p, 5)
	assertRejected(t, before, s, n, err, apperrors.ErrInvalidMove)

	p, ok = s.Pick(FromColumn(0))
	require.True(t, ok)
	n, err = e.MoveToTableau(s, p, 5)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{up("K♠")}, n.Tableau[5])
	assert.Equal(t, []card.Card{up("3♥")}, n.Tableau[0], "exposed card flips")
}

func TestMoveToTableau_Run(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	s.Tableau[0] = []card.Card{down("2♦"), up("9♠"), up("8♥"), up("7♣")}
	s.Tableau[1] = []card.Card{up("10♦")}

	p, ok := s.PickRun(0, 3)
	require.True(t, ok)

	n, err := e.MoveToTableau(s, p, 1)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{up("10♦"), up("9♠"), up("8♥"), up("7♣")}, n.Tableau[1])
	assert.Equal(t, []card.Card{up("2♦")}, n.Tableau[0])
	assert.Equal(t, 1, n.Moves)

	_, err = e.MoveToFoundation(s, p, card.Spades)
	assert.ErrorIs(t, err, apperrors.ErrInvalidMove, "runs never go to a foundation")
}

func TestMoveToTableau_FromFoundation(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	s.Foundations[card.Hearts] = FoundationUpTo(card.Hearts, card.Four)
	s.Tableau[2] = []card.Card{up("5♣")}
	s.Score = 40

	p, ok := s.Pick(FromFoundation(card.Hearts))
	require.True(t, ok)

	n, err := e.MoveToTableau(s, p, 2)
	require.NoError(t, err)
	assert.Len(t, n.Foundations[card.Hearts], 3)
	assert.Equal(t, []card.Card{up("5♣"), up("4♥")}, n.Tableau[2])
	assert.Equal(t, 40, n.Score)
}

func TestMoveToTableau_Rejected(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("6♠")}}
	s.Tableau[0] = []card.Card{up("7♥")}
	s.Tableau[1] = []card.Card{down("7♦")}

	tests := []struct {
		name   string
		from   Source
		column int
	}{
		{"onto own column", FromColumn(0), 0},
		{"column out of range", FromWaste(), 7},
		{"negative column", FromWaste(), -1},
		{"onto a face-down card", FromWaste(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			before := s.clone()
			p, ok := s.Pick(tt.from)
			require.True(t, ok)
			n, err := e.MoveToTableau(s, p, tt.column)
			assertRejected(t, before, s, n, err, apperrors.ErrInvalidMove)
		})
	}
}

func TestFlip(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	s.Tableau[4] = []card.Card{down("Q♣"), down("J♦")}
	s.Tableau[5] = []card.Card{up("3♠")}

	n, err := e.Flip(s, 4)
	require.NoError(t, err)
	assert.Equal(t, []card.Card{down("Q♣"), up("J♦")}, n.Tableau[4])
	assert.Equal(t, 1, n.Moves)
	assert.Len(t, n.History, 1)

	for _, col := range []int{5, 6, -1, 7} {
		before := s.clone()
		got, err := e.Flip(s, col)
		assertRejected(t, before, s, got, err, apperrors.ErrInvalidMove)
	}
}

func TestClick(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{Waste: []card.Card{up("A♦")}}
	s.Tableau[0] = []card.Card{down("6♣")}
	s.Tableau[1] = []card.Card{up("9♥")}
	s.Foundations[card.Spades] = FoundationUpTo(card.Spades, card.Two)

	t.Run("eligible card goes to its foundation", func(t *testing.T) {
		t.Parallel()
		n, err := e.Click(s, FromWaste())
		require.NoError(t, err)
		assert.Equal(t, []card.Card{up("A♦")}, n.Foundations[card.Diamonds])
		assert.Equal(t, 10, n.Score)
	})

	t.Run("face-down top is flipped", func(t *testing.T) {
		t.Parallel()
		n, err := e.Click(s, FromColumn(0))
		require.NoError(t, err)
		assert.Equal(t, []card.Card{up("6♣")}, n.Tableau[0])
		assert.Zero(t, n.Score)
	})

	t.Run("anything else is a no-op", func(t *testing.T) {
		t.Parallel()
		for _, from := range []Source{FromColumn(1), FromColumn(3), FromFoundation(card.Spades), Source{}} {
			n, err := e.Click(s, from)
			require.NoError(t, err)
			assert.Same(t, s, n, "click on %s", from)
		}
	})
}

func TestClick_FoundationBeforeFlip(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	s := &State{}
	s.Tableau[0] = []card.Card{down("5♠"), up("A♥")}

	n, err := e.Click(s, FromColumn(0))
	require.NoError(t, err)
	assert.Len(t, n.Foundations[card.Hearts], 1)
	assert.Equal(t, []card.Card{up("5♠")}, n.Tableau[0])
	assert.Equal(t, 1, n.Moves)
}
