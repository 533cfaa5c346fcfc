package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type renderer struct {
	board  *tview.Table
	status *tview.TextView
}

func newRenderer() *renderer {
	board := tview.NewTable().SetSelectable(true, true)
	board.SetBorder(true).SetTitle(" mines ")
	return &renderer{
		board:  board,
		status: tview.NewTextView().SetDynamicColors(true),
	}
}

func cellColor(c mines.CellView) tcell.Color {
	switch {
	case c.Flagged:
		return tcell.ColorYellow
	case !c.Revealed:
		return tcell.ColorGray
	case c.Mine == mines.Mine:
		return tcell.ColorRed
	case c.AdjacentMines == 0:
		return tcell.ColorDarkGray
	default:
		return tcell.ColorWhite
	}
}

func (r *renderer) draw(s mines.Snapshot) {
	r.board.Clear()
	for y, row := range s.Cells {
		for x, c := range row {
			r.board.SetCell(y, x, tview.NewTableCell(" "+c.String()+" ").
				SetAlign(tview.AlignCenter).
				SetTextColor(cellColor(c)))
		}
	}

	switch s.Phase {
	case mines.Won:
		r.status.SetText("[green]You won![-] n: new game, q: quit")
	case mines.Lost:
		r.status.SetText("[red]You hit a mine.[-] n: new game, q: quit")
	default:
		r.status.SetText(fmt.Sprintf(
			"%dx%d  flags: %d  enter: reveal, f: flag, n: new game, q: quit",
			s.Width, s.Height, s.FlagCount,
		))
	}
}

func main() {
	var width, height int
	flag.IntVar(&width, "width", 16, "board width")
	flag.IntVar(&height, "height", 16, "board height")
	flag.Parse()

	// the terminal belongs to tview
	mines.Log.SetOutput(io.Discard)

	game, err := mines.New(width, height, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	r := newRenderer()
	game.Subscribe(func(mines.Event) {
		r.draw(game.Snapshot())
	})
	r.draw(game.Snapshot())

	app := tview.NewApplication()
	r.board.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		row, col := r.board.GetSelection()

		switch event.Key() {
		case tcell.KeyEnter:
			if err := game.Reveal(col, row); err != nil {
				r.status.SetText("[red]" + err.Error())
			}
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'f', 'F':
				if err := game.ToggleFlag(col, row); err != nil {
					r.status.SetText("[red]" + err.Error())
				}
				return nil
			case 'n', 'N', 'r', 'R':
				// dimensions were validated by New
				_ = game.Reset(width, height)
				r.board.Select(0, 0)
				return nil
			case 'q', 'Q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(r.board, 0, 1, true).
		AddItem(r.status, 1, 0, false)

	if err := app.SetRoot(layout, true).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%dx%d, %s\n%s", game.Width(), game.Height(), game.Phase(), game.Board())
}
