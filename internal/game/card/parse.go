package card

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse 解析单张牌的文本表示。
// 支持 "A♥"、"10S"、"QD" 以及 ID 形式 "hearts-A"，解析结果为背面朝上。
func Parse(input string) (Card, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	if suitName, rankStr, ok := strings.Cut(s, "-"); ok {
		suit, err := ParseSuit(suitName)
		if err != nil {
			return Card{}, err
		}
		rank, err := ParseRank(rankStr)
		if err != nil {
			return Card{}, err
		}
		return New(suit, rank), nil
	}

	// 最后一个字符为花色（字母或符号）
	last, size := utf8.DecodeLastRuneInString(s)
	if size == 0 || len(s) == size {
		return Card{}, fmt.Errorf("invalid card: %q", input)
	}
	suit, err := ParseSuit(string(last))
	if err != nil {
		return Card{}, err
	}
	rank, err := ParseRank(s[:len(s)-size])
	if err != nil {
		return Card{}, err
	}
	return New(suit, rank), nil
}

// MustParse 与 Parse 相同，解析失败时 panic，仅用于测试和固定数据
func MustParse(input string) Card {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseList 解析以空格分隔的多张牌
func ParseList(input string) ([]Card, error) {
	fields := strings.Fields(input)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// IndexOf 返回 c 在 cards 中的位置（忽略朝向），不存在时返回 -1
func IndexOf(cards []Card, c Card) int {
	for i := range cards {
		if cards[i].Same(c) {
			return i
		}
	}
	return -1
}

// Top 返回牌堆顶的牌
func Top(cards []Card) (Card, bool) {
	if len(cards) == 0 {
		return Card{}, false
	}
	return cards[len(cards)-1], true
}
