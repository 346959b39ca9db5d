package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/klondike/internal/game/card"
)

// randomSource 随机选择一个来源，可能为空或背面朝上
func randomSource(rng *rand.Rand) Source {
	switch rng.IntN(3) {
	case 0:
		return FromWaste()
	case 1:
		return FromColumn(rng.IntN(NumColumns))
	default:
		return FromFoundation(card.AllSuits[rng.IntN(card.NumSuits)])
	}
}

// randomStep 对 s 执行一个随机操作，返回操作名称以及结果
func randomStep(e *Engine, s *State, rng *rand.Rand) (string, *State, error) {
	switch rng.IntN(8) {
	case 0, 1:
		n, err := e.Draw(s)
		return "draw", n, err
	case 2:
		p, ok := s.Pick(randomSource(rng))
		if !ok {
			return "pick", s, nil
		}
		n, err := e.MoveToFoundation(s, p, card.AllSuits[rng.IntN(card.NumSuits)])
		return "to foundation", n, err
	case 3:
		p, ok := s.Pick(randomSource(rng))
		if !ok {
			return "pick", s, nil
		}
		n, err := e.MoveToTableau(s, p, rng.IntN(NumColumns))
		return "to tableau", n, err
	case 4:
		col := rng.IntN(NumColumns)
		p, ok := s.PickRun(col, 1+rng.IntN(4))
		if !ok {
			return "pick run", s, nil
		}
		n, err := e.MoveToTableau(s, p, rng.IntN(NumColumns))
		return "run", n, err
	case 5:
		n, err := e.Click(s, randomSource(rng))
		return "click", n, err
	case 6:
		n, err := e.Undo(s)
		return "undo", n, err
	default:
		n, err := e.AutoComplete(s)
		return "auto complete", n, err
	}
}

func TestRandomPlay_KeepsInvariants(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 20; seed++ {
		rng := card.NewRand(seed * 7919)
		e := NewEngine(WithRand(rng), WithDrawCount(1+2*rng.IntN(2)))
		s := e.NewGame()
		require.NoError(t, Validate(s))

		for step := 0; step < 400 && !s.Won; step++ {
			before := s.clone()
			name, n, err := randomStep(e, s, rng)

			if err != nil {
				// 被拒绝的操作不改变任何东西
				require.Same(t, s, n, "seed %d step %d %s", seed, step, name)
				require.Equal(t, before, s.clone(), "seed %d step %d %s", seed, step, name)
				continue
			}

			require.NoError(t, Validate(n), "seed %d step %d %s", seed, step, name)
			require.Equal(t, before, s.clone(), "input mutated by %s", name)
			assert.LessOrEqual(t, len(n.History), DefaultHistoryLimit)
			switch {
			case n == s || name == "undo":
			case name == "auto complete":
				assert.Greater(t, n.Moves, s.Moves)
				assert.Greater(t, n.Score, s.Score)
			default:
				assert.Equal(t, s.Moves+1, n.Moves, "seed %d step %d %s", seed, step, name)
				assert.GreaterOrEqual(t, n.Score, s.Score)
			}
			s = n
		}
	}
}

func TestRandomPlay_UndoWalksBack(t *testing.T) {
	t.Parallel()

	rng := card.NewRand(2024)
	e := NewEngine(WithRand(rng))
	s := e.NewGame()

	var trail []*State
	for len(trail) < 30 {
		name, n, err := randomStep(e, s, rng)
		if err != nil || n == s || name == "undo" {
			continue
		}
		if n.Won {
			break
		}
		trail = append(trail, s)
		s = n
	}

	for i := len(trail) - 1; i >= 0; i-- {
		back, err := e.Undo(s)
		require.NoError(t, err)
		assert.Equal(t, trail[i], back, "undo #%d", len(trail)-i)
		s = back
	}
}
