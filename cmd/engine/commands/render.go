package commands

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/rules"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	wallColor    = termbox.ColorWhite
	foodColor    = termbox.ColorRed

	// Each cell is two terminal columns wide so the board looks square.
	cellWidth = 2
	left      = 2
	top       = 2
)

// cellStyle returns how a board cell is drawn.
func cellStyle(c board.Cell, showGrid bool) termbox.Cell {
	switch c {
	case board.SnakeBody:
		return termbox.Cell{Ch: ' ', Fg: snakeColor, Bg: snakeColor}
	case board.Wall:
		return termbox.Cell{Ch: ' ', Fg: wallColor, Bg: wallColor}
	case board.Food:
		return termbox.Cell{Ch: '●', Fg: foodColor, Bg: bgColor}
	default:
		if showGrid {
			return termbox.Cell{Ch: '·', Fg: defaultColor, Bg: bgColor}
		}
		return termbox.Cell{Ch: ' ', Fg: defaultColor, Bg: bgColor}
	}
}

// statusLines are printed under the board.
func statusLines(st rules.Status) []string {
	var lines []string
	switch st.State {
	case rules.StateIdle:
		lines = append(lines, "Press Enter to start!")
	case rules.StateRunning:
		lines = append(lines, fmt.Sprintf("Score: %d", st.Score))
	case rules.StateEnded:
		lines = append(lines, fmt.Sprintf("Your Score: %d", st.Score))
		if st.Cause != rules.CollisionClear {
			lines = append(lines, fmt.Sprintf("Crashed into %s", causeText(st.Cause)))
		}
		lines = append(lines, "Press Enter to play again")
	case rules.StateWon:
		lines = append(lines, fmt.Sprintf("You won! Score: %d", st.Score))
		lines = append(lines, "Press Enter to play again")
	}
	return append(lines, fmt.Sprintf("Best Score: %d", st.BestScore))
}

func causeText(c rules.Collision) string {
	switch c {
	case rules.CollisionWall:
		return "a wall"
	case rules.CollisionBoundary:
		return "the edge"
	case rules.CollisionSelf:
		return "itself"
	}
	return string(c)
}

func renderGame(grid *board.Grid, showGrid bool, title string, lines []string) error {
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	bottom := top + grid.Rows() + 1
	tbprint(left, top-1, defaultColor, defaultColor, title)
	renderBoard(grid.Columns()*cellWidth, top, bottom, left)
	renderCells(grid, showGrid)
	for i, line := range lines {
		tbprint(left, bottom+1+i, defaultColor, defaultColor, line)
	}

	return termbox.Flush()
}

func renderCells(grid *board.Grid, showGrid bool) {
	for r, row := range grid.Matrix() {
		for c, cell := range row {
			style := cellStyle(cell, showGrid)
			termbox.SetCell(left+c*cellWidth, top+r+1, style.Ch, style.Fg, style.Bg)
			fill(left+c*cellWidth+1, top+r+1, cellWidth-1, 1, termbox.Cell{Fg: style.Fg, Bg: style.Bg, Ch: ' '})
		}
	}
}

func renderBoard(width, top, bottom, left int) {
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(left+width, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(left+width, top, '┐', defaultColor, bgColor)
	termbox.SetCell(left+width, bottom, '┘', defaultColor, bgColor)

	fill(left, top, width, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, width, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
