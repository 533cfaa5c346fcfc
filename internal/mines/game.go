package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Phase int8

const (
	InProgress Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

// [Phase] implements [encoding.TextMarshaler]
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*p = InProgress
	case "won":
		*p = Won
	case "lost":
		*p = Lost
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Game is the state machine of a single minesweeper game. It is not safe
// for concurrent use; callers serialise actions themselves.
type Game struct {
	board          *Board
	minesGenerated bool
	phase          Phase
	rnd            *rand.Rand
	observers      observers
}

// New creates a game on a width x height board. A nil rnd gets a freshly
// seeded source.
func New(width, height int, rnd *rand.Rand) (*Game, error) {
	board, err := newBoard(width, height)
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	return &Game{board: board, phase: InProgress, rnd: rnd}, nil
}

// Reset swaps in a fresh board. On error the current game is kept as is.
func (g *Game) Reset(width, height int) error {
	board, err := newBoard(width, height)
	if err != nil {
		return err
	}
	g.board = board
	g.minesGenerated = false
	g.phase = InProgress
	g.observers.notify(Event{Kind: EventReset, Phase: g.phase})
	return nil
}

func (g *Game) Width() int           { return g.board.Width }
func (g *Game) Height() int          { return g.board.Height }
func (g *Game) Phase() Phase         { return g.phase }
func (g *Game) MinesGenerated() bool { return g.minesGenerated }

// Cell returns a copy of the cell at (x, y).
func (g *Game) Cell(x, y int) (Cell, error) {
	if !g.board.InBounds(x, y) {
		return Cell{}, outOfBounds(x, y, g.board.Width, g.board.Height)
	}
	return *g.board.cell(Point{x, y}), nil
}

// Board returns a deep copy of the grid.
func (g *Game) Board() *Board {
	return g.board.clone()
}

// Reveal opens the cell at (x, y). The first reveal of a game places the
// mines around it.
func (g *Game) Reveal(x, y int) error {
	if !g.board.InBounds(x, y) {
		return outOfBounds(x, y, g.board.Width, g.board.Height)
	}
	if g.phase != InProgress {
		return nil
	}

	p := Point{x, y}
	if !g.minesGenerated {
		g.generateMines(p)
	}

	c := g.board.cell(p)
	if c.Revealed {
		return nil
	}
	c.Revealed = true

	if c.IsMine() {
		g.lose(p)
	} else {
		g.floodReveal(p)
		g.evaluate()
	}

	g.observers.notify(Event{Kind: EventReveal, Point: p, Phase: g.phase})
	return nil
}

// floodReveal opens the zero-count region connected to origin. Revealed
// doubles as the visited mark.
func (g *Game) floodReveal(origin Point) {
	stack := cellstack{origin}
	for len(stack) > 0 {
		p := stack.pop()
		if g.board.cell(p).AdjacentMines > 0 {
			continue
		}
		for _, n := range g.board.Neighbors(p.X, p.Y) {
			c := g.board.cell(n)
			if c.Revealed {
				continue
			}
			c.Revealed = true
			stack.push(n)
		}
	}
}

// ToggleFlag flips the flag on an unrevealed cell.
func (g *Game) ToggleFlag(x, y int) error {
	if !g.board.InBounds(x, y) {
		return outOfBounds(x, y, g.board.Width, g.board.Height)
	}
	if g.phase != InProgress {
		return nil
	}

	p := Point{x, y}
	c := g.board.cell(p)
	if c.Revealed {
		return nil
	}
	c.Flagged = !c.Flagged
	g.evaluate()

	g.observers.notify(Event{Kind: EventFlag, Point: p, Phase: g.phase})
	return nil
}

// evaluate settles the game once every cell is revealed or flagged.
func (g *Game) evaluate() {
	if !g.minesGenerated {
		return
	}
	var misflag *Cell
	for y := range g.board.Cells {
		for x := range g.board.Cells[y] {
			c := &g.board.Cells[y][x]
			if !c.Settled() {
				return
			}
			if misflag == nil && c.HasFlag() && !c.IsMine() {
				misflag = c
			}
		}
	}
	if misflag != nil {
		g.lose(Point{misflag.X, misflag.Y})
		return
	}
	g.phase = Won
	Log.WithField("size", fmt.Sprintf("%dx%d", g.board.Width, g.board.Height)).
		Debug("game won")
}

func (g *Game) lose(at Point) {
	g.phase = Lost
	g.RevealAllMines()
	Log.WithField("at", at).Debug("game lost")
}

// RevealAllMines opens every mine. Flags and safe cells are left alone.
func (g *Game) RevealAllMines() {
	g.board.each(func(c *Cell) {
		if c.IsMine() {
			c.Revealed = true
		}
	})
}

func (g *Game) String() string {
	return g.board.String()
}
