package game

import (
	"errors"
	"fmt"

	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/game/rule"
)

// Validate checks the invariants every reachable state satisfies:
//   - the zones together hold exactly the 52 distinct cards
//   - the stock is face down and the waste face up
//   - each foundation is its suit from Ace upward
//   - in each column face-down cards lie below face-up ones, and the face-up
//     part is a descending alternating run
func Validate(s *State) error {
	var errs []error

	seen := make(map[card.Card]string, card.NumSuits*card.NumRanks)
	record := func(zone string, cards []card.Card) {
		for _, c := range cards {
			id := card.New(c.Suit, c.Rank)
			if !c.Suit.Valid() || !c.Rank.Valid() {
				errs = append(errs, fmt.Errorf("%s: invalid card %v", zone, c))
				continue
			}
			if prev, dup := seen[id]; dup {
				errs = append(errs, fmt.Errorf("%s: %s already in %s", zone, c, prev))
				continue
			}
			seen[id] = zone
		}
	}

	record("deck", s.Deck)
	record("waste", s.Waste)
	for _, suit := range card.AllSuits {
		record(suit.Name()+" foundation", s.Foundations[suit])
	}
	for i, col := range s.Tableau {
		record(fmt.Sprintf("column %d", i+1), col)
	}
	if len(seen) != card.NumSuits*card.NumRanks {
		errs = append(errs, fmt.Errorf("expected 52 distinct cards, found %d", len(seen)))
	}

	for _, c := range s.Deck {
		if c.FaceUp {
			errs = append(errs, fmt.Errorf("deck: %s is face up", c))
		}
	}
	for _, c := range s.Waste {
		if !c.FaceUp {
			errs = append(errs, fmt.Errorf("waste: %s is face down", c))
		}
	}
	for _, suit := range card.AllSuits {
		if !rule.IsFoundationPile(s.Foundations[suit], suit) {
			errs = append(errs, fmt.Errorf("%s foundation out of order", suit.Name()))
		}
	}
	for i, col := range s.Tableau {
		if err := validateColumn(col); err != nil {
			errs = append(errs, fmt.Errorf("column %d: %w", i+1, err))
		}
	}
	if s.Won != CheckWin(s) {
		errs = append(errs, fmt.Errorf("won flag is %v but foundations say %v", s.Won, CheckWin(s)))
	}

	return errors.Join(errs...)
}

func validateColumn(col []card.Card) error {
	firstUp := len(col)
	for i, c := range col {
		if c.FaceUp {
			firstUp = i
			break
		}
	}
	for _, c := range col[firstUp:] {
		if !c.FaceUp {
			return fmt.Errorf("face-down %s above face-up cards", c)
		}
	}
	if !rule.IsSequence(col[firstUp:]) {
		return errors.New("face-up cards are not a descending alternating run")
	}
	return nil
}
