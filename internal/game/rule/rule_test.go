package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/klondike/internal/game/card"
)

func ptr(c card.Card) *card.Card { return &c }

func TestCanPlaceOnTableau(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		card     string
		target   *card.Card
		expected bool
	}{
		{"black four on red five", "4♣", ptr(card.MustParse("5♥")), true},
		{"red four on red five", "4♦", ptr(card.MustParse("5♥")), false},
		{"black four on black five", "4♠", ptr(card.MustParse("5♣")), false},
		{"red queen on black king", "Q♥", ptr(card.MustParse("K♠")), true},
		{"rank gap of two", "3♣", ptr(card.MustParse("5♥")), false},
		{"ascending rank", "6♣", ptr(card.MustParse("5♥")), false},
		{"same rank", "5♣", ptr(card.MustParse("5♥")), false},
		{"king on empty column", "K♦", nil, true},
		{"queen on empty column", "Q♦", nil, false},
		{"ace on empty column", "A♠", nil, false},
		{"ace on red two", "A♠", ptr(card.MustParse("2♥")), true},
		{"king on ace is never legal", "K♠", ptr(card.MustParse("A♥")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CanPlaceOnTableau(card.MustParse(tt.card), tt.target))
		})
	}
}

func TestCanPlaceOnFoundation(t *testing.T) {
	t.Parallel()

	hearts := []card.Card{card.MustParse("A♥"), card.MustParse("2♥")}

	tests := []struct {
		name     string
		card     string
		pile     []card.Card
		expected bool
	}{
		{"ace on empty", "A♠", nil, true},
		{"ten on empty", "10♠", nil, false},
		{"two on empty", "2♥", []card.Card{}, false},
		{"next rank same suit", "3♥", hearts, true},
		{"next rank other suit", "3♦", hearts, false},
		{"skip a rank", "4♥", hearts, false},
		{"same rank again", "2♥", hearts, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CanPlaceOnFoundation(card.MustParse(tt.card), tt.pile))
		})
	}
}

func TestCanPlaceOnFoundation_DoesNotMutate(t *testing.T) {
	t.Parallel()

	pile := []card.Card{card.MustParse("A♣")}
	before := append([]card.Card(nil), pile...)

	CanPlaceOnFoundation(card.MustParse("2♣"), pile)
	assert.Equal(t, before, pile)
}

func TestIsSequence(t *testing.T) {
	t.Parallel()

	run, _ := card.ParseList("K♠ Q♥ J♣ 10♦")
	assert.True(t, IsSequence(run))
	assert.True(t, IsSequence(nil))
	assert.True(t, IsSequence(run[:1]))

	broken, _ := card.ParseList("K♠ Q♥ J♦")
	assert.False(t, IsSequence(broken))
}

func TestIsFoundationPile(t *testing.T) {
	t.Parallel()

	pile, _ := card.ParseList("A♠ 2♠ 3♠")
	assert.True(t, IsFoundationPile(pile, card.Spades))
	assert.False(t, IsFoundationPile(pile, card.Clubs))
	assert.True(t, IsFoundationPile(nil, card.Hearts))

	gap, _ := card.ParseList("A♠ 3♠")
	assert.False(t, IsFoundationPile(gap, card.Spades))
}
