package mines

import (
	"github.com/sirupsen/logrus"
)

// MineProbability is the chance that a cell outside the opening block
// becomes a mine.
const MineProbability = 0.2

func inOpening(anchor Point, c *Cell) bool {
	dx, dy := c.X-anchor.X, c.Y-anchor.Y
	return -1 <= dx && dx <= 1 && -1 <= dy && dy <= 1
}

// generateMines lays mines out once per game. The 3x3 block centred on
// anchor stays clear so the first reveal is always safe.
func (g *Game) generateMines(anchor Point) {
	count := 0
	g.board.each(func(c *Cell) {
		if inOpening(anchor, c) || g.rnd.Float64() >= MineProbability {
			c.Mine = Safe
			return
		}
		c.Mine = Mine
		count++
	})
	g.updateNumbers()
	g.minesGenerated = true

	Log.WithFields(logrus.Fields{
		"width":  g.board.Width,
		"height": g.board.Height,
		"anchor": anchor,
		"mines":  count,
	}).Debug("mines generated")
}

func (g *Game) updateNumbers() {
	g.board.each(func(c *Cell) {
		if c.IsMine() {
			c.AdjacentMines = 0
			return
		}
		c.AdjacentMines = g.board.countAdjacent(Point{c.X, c.Y})
	})
}
