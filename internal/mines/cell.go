package mines

import (
	"fmt"
	"strconv"
)

// MineState tells whether a cell holds a mine. Cells are Undetermined
// until the first reveal places the mines.
type MineState int8

const (
	Undetermined MineState = iota
	Safe
	Mine
)

func (m MineState) String() string {
	switch m {
	case Safe:
		return "safe"
	case Mine:
		return "mine"
	default:
		return "undetermined"
	}
}

// [MineState] implements [encoding.TextMarshaler]
func (m MineState) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MineState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "undetermined":
		*m = Undetermined
	case "safe":
		*m = Safe
	case "mine":
		*m = Mine
	default:
		return fmt.Errorf("unknown mine state %q", text)
	}
	return nil
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell struct {
	X, Y          int
	Mine          MineState
	AdjacentMines int
	Revealed      bool
	Flagged       bool
}

func (c Cell) IsMine() bool {
	return c.Mine == Mine
}

// HasFlag reports whether the flag on c still counts. A flag left on a
// cell that was opened by a cascade is ignored.
func (c Cell) HasFlag() bool {
	return c.Flagged && !c.Revealed
}

// Settled cells are either revealed or flagged.
func (c Cell) Settled() bool {
	return c.Revealed || c.Flagged
}

func (c Cell) String() string {
	switch {
	case c.Revealed && c.IsMine():
		return "*"
	case c.Revealed:
		return strconv.Itoa(c.AdjacentMines)
	case c.Flagged:
		return "F"
	default:
		return "."
	}
}
