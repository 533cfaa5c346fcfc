package mines

import (
	"strconv"
	"strings"
)

// CellView is what a player may see of a cell. Mine is only disclosed once
// the cell is revealed or the game is over.
type CellView struct {
	X             int       `json:"x"`
	Y             int       `json:"y"`
	Revealed      bool      `json:"revealed"`
	Flagged       bool      `json:"flagged"`
	Mine          MineState `json:"mine"`
	AdjacentMines int       `json:"adjacent_mines"`
}

func (v CellView) String() string {
	switch {
	case v.Revealed && v.Mine == Mine:
		return "*"
	case v.Revealed:
		return strconv.Itoa(v.AdjacentMines)
	case v.Flagged:
		return "F"
	default:
		return "."
	}
}

// Snapshot is a detached copy of the observable game state.
type Snapshot struct {
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Phase          Phase        `json:"phase"`
	MinesGenerated bool         `json:"mines_generated"`
	FlagCount      int          `json:"flag_count"`
	Cells          [][]CellView `json:"cells"`
}

func (g *Game) Snapshot() Snapshot {
	over := g.phase.Terminal()
	s := Snapshot{
		Width:          g.board.Width,
		Height:         g.board.Height,
		Phase:          g.phase,
		MinesGenerated: g.minesGenerated,
		Cells:          make([][]CellView, g.board.Height),
	}
	for y, row := range g.board.Cells {
		s.Cells[y] = make([]CellView, len(row))
		for x, c := range row {
			v := CellView{X: c.X, Y: c.Y, Revealed: c.Revealed, Flagged: c.HasFlag()}
			if c.Revealed || over {
				v.Mine = c.Mine
			}
			if c.Revealed && !c.IsMine() {
				v.AdjacentMines = c.AdjacentMines
			}
			if v.Flagged {
				s.FlagCount++
			}
			s.Cells[y][x] = v
		}
	}
	return s
}

func (s Snapshot) Cell(x, y int) (CellView, bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return CellView{}, false
	}
	return s.Cells[y][x], true
}

// String draws the board as a player sees it.
func (s Snapshot) String() string {
	var sb strings.Builder
	for _, row := range s.Cells {
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(v.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
