package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Registry keeps the live sessions of a server.
type Registry struct {
	log logrus.FieldLogger
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	// now and newRand are swapped out in tests.
	now     func() time.Time
	newRand func() *rand.Rand

	onFinish []func(Result)
}

// NewRegistry creates a registry whose sessions expire after ttl without
// activity. A zero ttl keeps sessions forever.
func NewRegistry(log logrus.FieldLogger, ttl time.Duration) *Registry {
	return &Registry{
		log:      log,
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*Session),
		now:      func() time.Time { return time.Now().UTC() },
		newRand:  mines.NewRand,
	}
}

// OnFinish registers fn to be called once per game when it is won or lost.
func (r *Registry) OnFinish(fn func(Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFinish = append(r.onFinish, fn)
}

func (r *Registry) finish(result Result) {
	r.mu.RLock()
	hooks := slices.Clone(r.onFinish)
	r.mu.RUnlock()

	r.log.WithFields(logrus.Fields{
		"session":  result.SessionID,
		"game":     result.GameID,
		"phase":    result.Phase,
		"playtime": result.Playtime().String(),
	}).Info("game finished")

	for _, fn := range hooks {
		fn(result)
	}
}

func (r *Registry) Create(width, height int) (*Session, error) {
	game, err := mines.New(width, height, r.newRand())
	if err != nil {
		return nil, err
	}
	now := r.now()
	s := &Session{
		ID:         uuid.New(),
		registry:   r,
		game:       game,
		gameID:     uuid.New(),
		startedAt:  now,
		lastActive: now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"session": s.ID,
		"width":   width,
		"height":  height,
	}).Debug("session created")
	return s, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops unwatched sessions idle for longer than the ttl and reports
// how many were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.ttl)

	// idleness is checked under the write lock so that no session can
	// become active between the check and the delete
	r.mu.Lock()
	swept := 0
	for id, s := range r.sessions {
		if s.idle(deadline) {
			delete(r.sessions, id)
			swept++
		}
	}
	r.mu.Unlock()

	if swept > 0 {
		r.log.WithField("count", swept).Debug("swept idle sessions")
	}
	return swept
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
