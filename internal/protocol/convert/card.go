package convert

import (
	"fmt"

	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/game/card"
	"github.com/palemoky/klondike/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo，背面朝上的牌被遮盖
func CardToInfo(c card.Card) protocol.CardInfo {
	if !c.FaceUp {
		return protocol.CardInfo{}
	}
	return protocol.CardInfo{
		Suit:   c.Suit.Name(),
		Rank:   c.Rank.String(),
		FaceUp: true,
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将正面朝上的 protocol.CardInfo 转换为 card.Card
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	if !info.FaceUp {
		return card.Card{}, fmt.Errorf("face-down card has no identity")
	}
	suit, err := card.ParseSuit(info.Suit)
	if err != nil {
		return card.Card{}, err
	}
	rank, err := card.ParseRank(info.Rank)
	if err != nil {
		return card.Card{}, err
	}
	return card.New(suit, rank).Flipped(true), nil
}

// LocationToSource 将 protocol.LocationInfo 转换为 game.Source
func LocationToSource(loc protocol.LocationInfo) (game.Source, error) {
	switch loc.Kind {
	case protocol.LocationWaste:
		return game.FromWaste(), nil
	case protocol.LocationTableau:
		if loc.Column < 0 || loc.Column >= game.NumColumns {
			return game.Source{}, fmt.Errorf("column %d out of range", loc.Column)
		}
		return game.FromColumn(loc.Column), nil
	case protocol.LocationFoundation:
		suit, err := card.ParseSuit(loc.Suit)
		if err != nil {
			return game.Source{}, err
		}
		return game.FromFoundation(suit), nil
	}
	return game.Source{}, fmt.Errorf("unknown location kind %q", loc.Kind)
}

// SourceToLocation 将 game.Source 转换为 protocol.LocationInfo
func SourceToLocation(src game.Source) protocol.LocationInfo {
	switch src.Kind() {
	case game.SourceWaste:
		return protocol.LocationInfo{Kind: protocol.LocationWaste}
	case game.SourceTableau:
		return protocol.LocationInfo{Kind: protocol.LocationTableau, Column: src.Column()}
	case game.SourceFoundation:
		return protocol.LocationInfo{Kind: protocol.LocationFoundation, Suit: src.Suit().Name()}
	}
	return protocol.LocationInfo{}
}
