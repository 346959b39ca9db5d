package convert

import (
	"time"

	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/protocol"
)

// StateToPayload 将局面转换为下发给客户端的 GameStatePayload。
// 牌库只给出张数，背面朝上的桌面牌被遮盖。
func StateToPayload(s *game.State, drawCount int, elapsed time.Duration) *protocol.GameStatePayload {
	p := &protocol.GameStatePayload{
		DeckCount:      len(s.Deck),
		Waste:          CardsToInfos(s.Waste),
		Foundations:    make([]protocol.FoundationInfo, 0, card.NumSuits),
		Tableau:        make([][]protocol.CardInfo, game.NumColumns),
		Score:          s.Score,
		Moves:          s.Moves,
		Won:            s.Won,
		Seed:           s.Seed,
		DrawCount:      drawCount,
		CanUndo:        s.CanUndo(),
		ElapsedSeconds: int64(elapsed / time.Second),
	}
	for _, suit := range card.AllSuits {
		p.Foundations = append(p.Foundations, protocol.FoundationInfo{
			Suit:  suit.Name(),
			Cards: CardsToInfos(s.Foundations[suit]),
		})
	}
	for i, col := range s.Tableau {
		p.Tableau[i] = CardsToInfos(col)
	}
	return p
}

// HintToPayload 将提示转换为 HintPayload
func HintToPayload(h game.Hint) protocol.HintPayload {
	p := protocol.HintPayload{
		Kind:    h.Kind.String(),
		Message: h.Message,
	}
	if h.Kind == game.HintTableauToFoundation || h.Kind == game.HintWasteToFoundation {
		info := CardToInfo(h.Card)
		loc := SourceToLocation(h.From)
		p.Card = &info
		p.From = &loc
	}
	return p
}

// GameWonPayload 生成获胜通知
func GameWonPayload(s *game.State, elapsed time.Duration) protocol.GameWonPayload {
	return protocol.GameWonPayload{
		Score:          s.Score,
		Moves:          s.Moves,
		ElapsedSeconds: int64(elapsed / time.Second),
		Seed:           s.Seed,
	}
}
