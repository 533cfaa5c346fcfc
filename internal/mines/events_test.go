package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesEvents(t *testing.T) {
	g := layout(t, 3, 1, Point{2, 0})

	var events []Event
	g.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, g.ToggleFlag(2, 0))
	require.NoError(t, g.Reveal(0, 0))
	require.NoError(t, g.Reset(2, 2))

	assert.Equal(t, []Event{
		{Kind: EventFlag, Point: Point{2, 0}, Phase: InProgress},
		{Kind: EventReveal, Point: Point{0, 0}, Phase: Won},
		{Kind: EventReset, Phase: InProgress},
	}, events)
}

func TestNoopActionsAreNotReported(t *testing.T) {
	g := layout(t, 3, 1, Point{2, 0})
	require.NoError(t, g.Reveal(0, 0))

	calls := 0
	g.Subscribe(func(Event) { calls++ })

	require.NoError(t, g.Reveal(0, 0))     // already revealed
	require.NoError(t, g.ToggleFlag(1, 0)) // revealed
	assert.Error(t, g.Reveal(5, 0))
	assert.Equal(t, 0, calls)

	require.NoError(t, g.Reveal(2, 0))
	require.NoError(t, g.Reveal(1, 0)) // game over
	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	g, err := New(4, 4, nil)
	require.NoError(t, err)

	var a, b int
	unsubscribeA := g.Subscribe(func(Event) { a++ })
	g.Subscribe(func(Event) { b++ })

	require.NoError(t, g.ToggleFlag(0, 0))
	unsubscribeA()
	require.NoError(t, g.ToggleFlag(0, 0))

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestObserverSeesCompletedState(t *testing.T) {
	g, err := New(3, 3, nil)
	require.NoError(t, err)

	var seen Snapshot
	g.Subscribe(func(Event) { seen = g.Snapshot() })

	require.NoError(t, g.Reveal(1, 1))

	assert.Equal(t, Won, seen.Phase)
	assert.Equal(t, "0 0 0\n0 0 0\n0 0 0\n", seen.String())
}
