package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/klondike/internal/game"
	"github.com/palemoky/klondike/internal/game/card"
)

// wasteFan 废牌堆最多展示的张数
const wasteFan = 3

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.header())
	sb.WriteString("\n\n")
	sb.WriteString(m.topRow())
	sb.WriteString("\n\n")
	sb.WriteString(m.tableau())

	if m.state.Won {
		sb.WriteString("\n\n")
		sb.WriteString(winStyle.Render(fmt.Sprintf("🎉 恭喜通关！ 得分 %d · 步数 %d · 用时 %s",
			m.state.Score, m.state.Moves, formatElapsed(m.stopwatch.Elapsed()))))
	}

	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return docStyle.Render(sb.String())
}

func (m *Model) header() string {
	s := m.state
	return fmt.Sprintf("%s   翻 %d 张   牌库 %d   得分 %d   步数 %d   ⏱ %s",
		titleStyle(fmt.Sprintf("🃏 Klondike #%d", s.Seed)),
		m.engine.Options().DrawCount,
		len(s.Deck), s.Score, s.Moves,
		formatElapsed(m.stopwatch.Elapsed()))
}

// topRow 牌库、废牌堆和 4 个收牌堆
func (m *Model) topRow() string {
	s := m.state
	cells := make([]string, 0, 3+card.NumSuits)

	if len(s.Deck) > 0 {
		cells = append(cells, m.decorate(PileDeck, cardBack, backStyle, true))
	} else {
		cells = append(cells, m.decorate(PileDeck, emptySlot, slotStyle, true))
	}
	cells = append(cells, m.wasteCell(), blankCell)

	for _, suit := range card.AllSuits {
		p := FoundationPile(suit)
		if top, ok := card.Top(s.Foundation(suit)); ok {
			cells = append(cells, m.decorate(p, cardText(top), cardStyle(top), true))
		} else {
			cells = append(cells, m.decorate(p, fmt.Sprintf("[%s]", suit), slotStyle, true))
		}
	}
	return strings.Join(cells, " ")
}

// wasteCell 废牌堆展示最上面几张，只有顶牌可以被选中
func (m *Model) wasteCell() string {
	waste := m.state.Waste
	if len(waste) == 0 {
		return m.decorate(PileWaste, emptySlot, slotStyle, true)
	}

	fan := waste[max(0, len(waste)-wasteFan):]
	var sb strings.Builder
	for _, c := range fan[:len(fan)-1] {
		sb.WriteString(dimStyle.Render(cardText(c)))
	}
	top := fan[len(fan)-1]
	sb.WriteString(m.decorate(PileWaste, cardText(top), cardStyle(top), true))
	return sb.String()
}

// tableau 7 列自上而下排列
func (m *Model) tableau() string {
	rows := 1
	for i := range game.NumColumns {
		rows = max(rows, len(m.state.Column(i)))
	}

	labels := make([]string, game.NumColumns)
	for i := range labels {
		labels[i] = dimStyle.Render(fmt.Sprintf("%3d", i+1))
	}

	lines := make([]string, 0, rows+1)
	lines = append(lines, strings.Join(labels, " "))
	for r := range rows {
		cells := make([]string, game.NumColumns)
		for i := range game.NumColumns {
			cells[i] = m.columnCell(i, r)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) columnCell(col, row int) string {
	cards := m.state.Column(col)
	p := ColumnPile(col)

	if len(cards) == 0 {
		if row == 0 {
			return m.decorate(p, emptySlot, slotStyle, true)
		}
		return blankCell
	}
	if row >= len(cards) {
		return blankCell
	}

	c := cards[row]
	if !c.FaceUp {
		return m.decorate(p, cardBack, backStyle, m.cursor == p && row == len(cards)-1)
	}

	// 光标或选中范围是列底部的若干张
	fromBottom := len(cards) - row
	depth := 0
	if m.cursor == p {
		depth = m.depth
	}
	if m.selected != nil && m.selected.pile == p {
		depth = max(depth, m.selected.count)
	}
	return m.decorate(p, cardText(c), cardStyle(c), fromBottom <= depth)
}

// decorate 给光标所在和已选中的牌加上高亮
func (m *Model) decorate(p Pile, text string, base lipgloss.Style, inRange bool) string {
	switch {
	case !inRange:
		return base.Render(text)
	case m.selected != nil && m.selected.pile == p:
		return selectedStyle.Render(text)
	case m.cursor == p:
		return base.Reverse(true).Render(text)
	default:
		return base.Render(text)
	}
}

func cardStyle(c card.Card) lipgloss.Style {
	if c.IsRed() {
		return redStyle
	}
	return blackStyle
}

// cardText 右对齐到 3 个字符宽
func cardText(c card.Card) string {
	return fmt.Sprintf("%3s", c.String())
}

// faceUpCount 列底部连续正面朝上的张数
func faceUpCount(cards []card.Card) int {
	n := 0
	for i := len(cards) - 1; i >= 0 && cards[i].FaceUp; i-- {
		n++
	}
	return n
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
