package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	b, err := newBoard(3, 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		at   Point
		want []Point
	}{
		{
			name: "top left corner",
			at:   Point{0, 0},
			want: []Point{{1, 1}, {1, 0}, {0, 1}},
		},
		{
			name: "bottom right corner",
			at:   Point{2, 2},
			want: []Point{{2, 1}, {1, 1}, {1, 2}},
		},
		{
			name: "top edge",
			at:   Point{1, 0},
			want: []Point{{2, 1}, {2, 0}, {0, 0}, {0, 1}, {1, 1}},
		},
		{
			name: "centre",
			at:   Point{1, 1},
			want: []Point{
				{2, 2}, {2, 1}, {2, 0}, {1, 0},
				{0, 0}, {0, 1}, {0, 2}, {1, 2},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, b.Neighbors(test.at.X, test.at.Y))
		})
	}
}

func TestNeighborsSingleCell(t *testing.T) {
	b, err := newBoard(1, 1)
	require.NoError(t, err)
	assert.Empty(t, b.Neighbors(0, 0))
}

func TestBoardCloneIsDetached(t *testing.T) {
	b, err := newBoard(2, 2)
	require.NoError(t, err)

	c := b.clone()
	c.Cells[1][1].Revealed = true

	assert.False(t, b.Cells[1][1].Revealed)
}

func TestBoardString(t *testing.T) {
	b, err := newBoard(3, 2)
	require.NoError(t, err)
	b.Cells[0][0] = Cell{Revealed: true, AdjacentMines: 2}
	b.Cells[0][1] = Cell{Flagged: true}
	b.Cells[1][2] = Cell{Revealed: true, Mine: Mine}

	assert.Equal(t, "2 F .\n. . *\n", b.String())
}
