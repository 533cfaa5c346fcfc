package mines

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHidesMines(t *testing.T) {
	g := layout(t, 4, 1, Point{3, 0})
	require.NoError(t, g.Reveal(0, 0))

	s := g.Snapshot()
	assert.Equal(t, InProgress, s.Phase)
	assert.True(t, s.MinesGenerated)

	c, ok := s.Cell(3, 0)
	require.True(t, ok)
	assert.Equal(t, CellView{X: 3, Y: 0, Mine: Undetermined}, c)

	c, _ = s.Cell(2, 0)
	assert.Equal(t, CellView{X: 2, Y: 0, Revealed: true, Mine: Safe, AdjacentMines: 1}, c)

	_, ok = s.Cell(4, 0)
	assert.False(t, ok)
	assert.Equal(t, "0 0 1 .\n", s.String())
}

func TestSnapshotDisclosesMinesWhenOver(t *testing.T) {
	g := layout(t, 3, 1, Point{0, 0}, Point{2, 0})
	require.NoError(t, g.Reveal(2, 0))

	s := g.Snapshot()
	assert.Equal(t, Lost, s.Phase)
	for x, want := range []MineState{Mine, Safe, Mine} {
		c, _ := s.Cell(x, 0)
		assert.Equal(t, want, c.Mine)
	}
	assert.Equal(t, "* . *\n", s.String())
}

func TestSnapshotFlagCount(t *testing.T) {
	g := layout(t, 4, 1, Point{3, 0})
	require.NoError(t, g.ToggleFlag(0, 0))
	require.NoError(t, g.ToggleFlag(2, 0))
	assert.Equal(t, 2, g.Snapshot().FlagCount)

	// the cascade opens both flagged cells
	require.NoError(t, g.Reveal(1, 0))
	s := g.Snapshot()
	assert.Equal(t, 0, s.FlagCount)
	assert.Equal(t, "0 0 1 .\n", s.String())
}

func TestSnapshotIsDetached(t *testing.T) {
	g, err := New(3, 3, nil)
	require.NoError(t, err)

	s := g.Snapshot()
	require.NoError(t, g.Reveal(1, 1))

	assert.Equal(t, InProgress, s.Phase)
	assert.False(t, s.Cells[1][1].Revealed)
}

func TestSnapshotJSON(t *testing.T) {
	g := layout(t, 2, 1, Point{1, 0})
	require.NoError(t, g.Reveal(1, 0))

	b, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)

	var decoded struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Phase  string `json:"phase"`
		Cells  [][]struct {
			Mine     string `json:"mine"`
			Revealed bool   `json:"revealed"`
		} `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, 2, decoded.Width)
	assert.Equal(t, 1, decoded.Height)
	assert.Equal(t, "lost", decoded.Phase)
	assert.Equal(t, "safe", decoded.Cells[0][0].Mine)
	assert.Equal(t, "mine", decoded.Cells[0][1].Mine)
	assert.True(t, decoded.Cells[0][1].Revealed)
}

func TestPhaseText(t *testing.T) {
	for _, p := range []Phase{InProgress, Won, Lost} {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var q Phase
		require.NoError(t, q.UnmarshalText(b))
		assert.Equal(t, p, q)
	}
	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("paused")))
}
