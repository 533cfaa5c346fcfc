package session

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func setupRegistry(ttl time.Duration) (*Registry, *clock) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(log, ttl)
	r.now = c.now
	r.newRand = func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }
	return r, c
}

func TestCreateAndGet(t *testing.T) {
	r, _ := setupRegistry(time.Hour)

	s, err := r.Create(9, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvalidDimensions(t *testing.T) {
	r, _ := setupRegistry(time.Hour)

	_, err := r.Create(0, 9)
	assert.ErrorIs(t, err, mines.ErrInvalidDimensions)
	assert.Equal(t, 0, r.Len())
}

func TestDelete(t *testing.T) {
	r, _ := setupRegistry(time.Hour)
	s, err := r.Create(2, 2)
	require.NoError(t, err)

	assert.True(t, r.Delete(s.ID))
	assert.False(t, r.Delete(s.ID))
	assert.Equal(t, 0, r.Len())
}

func TestFinishRecordedOnce(t *testing.T) {
	r, c := setupRegistry(time.Hour)

	var results []Result
	r.OnFinish(func(res Result) { results = append(results, res) })

	s, err := r.Create(3, 3)
	require.NoError(t, err)

	c.advance(90 * time.Second)
	info, err := s.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, mines.Won, info.State.Phase)
	require.NotNil(t, info.EndedAt)

	_, err = s.Reveal(0, 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, s.ID, results[0].SessionID)
	assert.Equal(t, mines.Won, results[0].Phase)
	assert.Equal(t, 3, results[0].Width)
	assert.Equal(t, 90*time.Second, results[0].Playtime())
}

func TestEachGameGetsItsOwnResult(t *testing.T) {
	r, c := setupRegistry(time.Hour)

	var results []Result
	r.OnFinish(func(res Result) { results = append(results, res) })

	s, err := r.Create(3, 3)
	require.NoError(t, err)
	first := s.Info().GameID

	_, err = s.Reveal(1, 1)
	require.NoError(t, err)

	c.advance(time.Minute)
	info, err := s.Reset(3, 3)
	require.NoError(t, err)
	second := info.GameID
	assert.NotEqual(t, first, second)

	_, err = s.Reset(0, 3)
	require.Error(t, err)
	assert.Equal(t, second, s.Info().GameID)

	_, err = s.Reveal(1, 1)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, s.ID, results[0].SessionID)
	assert.Equal(t, s.ID, results[1].SessionID)
	assert.Equal(t, first, results[0].GameID)
	assert.Equal(t, second, results[1].GameID)
}

func TestResetRestartsClock(t *testing.T) {
	r, c := setupRegistry(time.Hour)
	s, err := r.Create(1, 1)
	require.NoError(t, err)

	_, err = s.Reveal(0, 0)
	require.NoError(t, err)
	require.NotNil(t, s.Info().EndedAt)

	c.advance(time.Minute)
	info, err := s.Reset(4, 4)
	require.NoError(t, err)
	assert.Nil(t, info.EndedAt)
	assert.Equal(t, c.now(), info.StartedAt)
	assert.Equal(t, mines.InProgress, info.State.Phase)
	assert.Equal(t, 4, info.State.Width)

	_, err = s.Reset(-1, 4)
	assert.ErrorIs(t, err, mines.ErrInvalidDimensions)
	assert.Equal(t, 4, s.Info().State.Width)
}

func TestActionErrorsPassThrough(t *testing.T) {
	r, _ := setupRegistry(time.Hour)
	s, err := r.Create(3, 3)
	require.NoError(t, err)

	_, err = s.Reveal(3, 0)
	assert.ErrorIs(t, err, mines.ErrOutOfBounds)
	_, err = s.ToggleFlag(0, -1)
	assert.ErrorIs(t, err, mines.ErrOutOfBounds)
}

func TestSubscribe(t *testing.T) {
	r, _ := setupRegistry(time.Hour)
	s, err := r.Create(3, 3)
	require.NoError(t, err)

	var got []Info
	unsubscribe := s.Subscribe(func(e mines.Event, info Info) {
		got = append(got, info)
	})

	_, err = s.ToggleFlag(0, 0)
	require.NoError(t, err)
	unsubscribe()
	_, err = s.ToggleFlag(0, 0)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].State.FlagCount)
}

func TestSubscribeSeesEnd(t *testing.T) {
	r, c := setupRegistry(time.Hour)
	s, err := r.Create(3, 3)
	require.NoError(t, err)
	c.advance(time.Minute)

	var ended []*time.Time
	s.Subscribe(func(e mines.Event, info Info) {
		ended = append(ended, info.EndedAt)
	})

	_, err = s.Reveal(1, 1)
	require.NoError(t, err)
	_, err = s.Reset(2, 2)
	require.NoError(t, err)

	require.Len(t, ended, 2)
	require.NotNil(t, ended[0])
	assert.Equal(t, c.now(), *ended[0])
	assert.Nil(t, ended[1])
}

func TestSweep(t *testing.T) {
	r, c := setupRegistry(time.Minute)

	idle, err := r.Create(2, 2)
	require.NoError(t, err)
	c.advance(45 * time.Second)
	active, err := r.Create(2, 2)
	require.NoError(t, err)

	c.advance(30 * time.Second)
	assert.Equal(t, 1, r.Sweep())

	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(active.ID)
	assert.NoError(t, err)
}

func TestSweepKeepsTouchedSession(t *testing.T) {
	r, c := setupRegistry(time.Minute)
	s, err := r.Create(2, 2)
	require.NoError(t, err)

	c.advance(2 * time.Minute)
	s.Touch()
	assert.Equal(t, 0, r.Sweep())

	c.advance(2 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
}

func TestSweepKeepsWatchedSession(t *testing.T) {
	r, c := setupRegistry(time.Minute)
	s, err := r.Create(2, 2)
	require.NoError(t, err)

	unsubscribe := s.Subscribe(func(mines.Event, Info) {})
	c.advance(time.Hour)
	assert.Equal(t, 0, r.Sweep())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, r.Sweep())

	c.advance(2 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
}

func TestSweepWithoutTTL(t *testing.T) {
	r, c := setupRegistry(0)
	_, err := r.Create(2, 2)
	require.NoError(t, err)

	c.advance(24 * time.Hour)
	assert.Equal(t, 0, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestRunStopsWithContext(t *testing.T) {
	r, _ := setupRegistry(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- r.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestConcurrentActions(t *testing.T) {
	r, _ := setupRegistry(time.Hour)
	s, err := r.Create(30, 16)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				x, y := (i*7+j)%30, (i*3+j)%16
				if j%4 == 0 {
					_, _ = s.ToggleFlag(x, y)
				} else {
					_, _ = s.Reveal(x, y)
				}
			}
		}()
	}
	wg.Wait()

	state := s.Info().State
	assert.True(t, state.MinesGenerated)
}
