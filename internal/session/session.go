package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Result is what a finished game leaves behind. GameID changes with every
// reset, SessionID does not.
type Result struct {
	GameID    uuid.UUID
	SessionID uuid.UUID
	Width     int
	Height    int
	Phase     mines.Phase
	StartedAt time.Time
	EndedAt   time.Time
}

func (r Result) Playtime() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Info is a consistent view of a session taken under its lock.
type Info struct {
	ID        uuid.UUID
	GameID    uuid.UUID
	StartedAt time.Time
	EndedAt   *time.Time
	State     mines.Snapshot
}

// Session serialises every action on its game behind one mutex.
type Session struct {
	ID uuid.UUID

	registry *Registry

	mu         sync.Mutex
	game       *mines.Game
	gameID     uuid.UUID
	watchers   int
	startedAt  time.Time
	endedAt    *time.Time
	lastActive time.Time
}

func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info()
}

func (s *Session) info() Info {
	var endedAt *time.Time
	if s.endedAt != nil {
		e := *s.endedAt
		endedAt = &e
	}
	return Info{
		ID:        s.ID,
		GameID:    s.gameID,
		StartedAt: s.startedAt,
		EndedAt:   endedAt,
		State:     s.game.Snapshot(),
	}
}

func (s *Session) Reveal(x, y int) (Info, error) {
	return s.do(func(g *mines.Game) error { return g.Reveal(x, y) })
}

func (s *Session) ToggleFlag(x, y int) (Info, error) {
	return s.do(func(g *mines.Game) error { return g.ToggleFlag(x, y) })
}

// Reset starts a new game in the same session.
func (s *Session) Reset(width, height int) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// the reset event has to carry the new clock
	gameID, startedAt, endedAt := s.gameID, s.startedAt, s.endedAt
	now := s.registry.now()
	s.gameID = uuid.New()
	s.startedAt = now
	s.endedAt = nil
	if err := s.game.Reset(width, height); err != nil {
		s.gameID, s.startedAt, s.endedAt = gameID, startedAt, endedAt
		return Info{}, err
	}
	s.lastActive = now
	return s.info(), nil
}

// Subscribe forwards game events together with the state they produced.
// fn runs while the session is locked and must not call back into it.
// A session with subscribers is never swept.
func (s *Session) Subscribe(fn func(mines.Event, Info)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.watchers++
	cancel := s.game.Subscribe(func(e mines.Event) {
		s.stamp()
		fn(e, s.info())
	})
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.watchers--
			s.lastActive = s.registry.now()
			cancel()
		})
	}
}

// Touch marks the session as in use without changing the game.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.registry.now()
}

// stamp records the end of the game the first time it is seen over.
func (s *Session) stamp() {
	if s.endedAt == nil && s.game.Phase().Terminal() {
		now := s.registry.now()
		s.endedAt = &now
	}
}

func (s *Session) do(action func(g *mines.Game) error) (Info, error) {
	s.mu.Lock()

	over := s.endedAt != nil
	if err := action(s.game); err != nil {
		s.mu.Unlock()
		return Info{}, err
	}
	s.lastActive = s.registry.now()
	s.stamp()

	var finished *Result
	if !over && s.endedAt != nil {
		finished = &Result{
			GameID:    s.gameID,
			SessionID: s.ID,
			Width:     s.game.Width(),
			Height:    s.game.Height(),
			Phase:     s.game.Phase(),
			StartedAt: s.startedAt,
			EndedAt:   *s.endedAt,
		}
	}
	info := s.info()
	s.mu.Unlock()

	if finished != nil {
		s.registry.finish(*finished)
	}
	return info, nil
}

func (s *Session) idle(deadline time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchers == 0 && s.lastActive.Before(deadline)
}
