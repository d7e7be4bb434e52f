package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lysyi3m/microbrands/app/gallery"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrLimitReached  = errors.New("session limit reached")
	ErrRateLimited   = errors.New("session creation rate exceeded")
	errInvalidConfig = errors.New("invalid session store configuration")
)

// Session is one client's filter engine. All access goes through the session
// lock, since gallery.Engine is not safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	engine   *gallery.Engine
	lastSeen time.Time
}

// Apply runs fn against the session's engine and returns the resulting view.
func (s *Session) Apply(fn func(e *gallery.Engine)) gallery.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.engine)
	return s.engine.Summary()
}

func (s *Session) Summary() gallery.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Summary()
}

type Options struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxSessions   int
	// CreateRate caps new sessions per second. Zero disables the cap.
	CreateRate int
}

// Store keeps filter sessions in memory. Sessions idle for longer than the
// TTL are removed by a background sweeper between Start and Stop.
type Store struct {
	gallery       *gallery.Gallery
	ttl           time.Duration
	sweepInterval time.Duration
	maxSessions   int
	limiter       *rate.Limiter
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStore(g *gallery.Gallery, opts Options) (*Store, error) {
	if opts.TTL <= 0 || opts.SweepInterval <= 0 || opts.MaxSessions <= 0 || opts.CreateRate < 0 {
		return nil, errInvalidConfig
	}

	var limiter *rate.Limiter
	if opts.CreateRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.CreateRate), opts.CreateRate)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Store{
		gallery:       g,
		ttl:           opts.TTL,
		sweepInterval: opts.SweepInterval,
		maxSessions:   opts.MaxSessions,
		limiter:       limiter,
		now:           time.Now,
		sessions:      make(map[string]*Session),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (st *Store) Start() {
	st.wg.Add(1)
	go func() {
		defer st.wg.Done()

		ticker := time.NewTicker(st.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-st.ctx.Done():
				return
			case <-ticker.C:
				st.sweep()
			}
		}
	}()
}

func (st *Store) Stop() {
	st.cancel()
	st.wg.Wait()
}

func (st *Store) Create() (*Session, error) {
	if st.limiter != nil && !st.limiter.Allow() {
		return nil, ErrRateLimited
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.maxSessions {
		return nil, ErrLimitReached
	}

	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		engine:    gallery.NewEngine(st.gallery),
		lastSeen:  now,
	}
	st.sessions[s.ID] = s

	slog.Debug("Session created", "session", s.ID, "active", len(st.sessions))
	return s, nil
}

// Get returns the session and marks it as recently used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.lastSeen = st.now()
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)

	slog.Debug("Session deleted", "session", id, "active", len(st.sessions))
	return nil
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		slog.Info("Expired sessions removed", "removed", removed, "active", len(st.sessions))
	}
	return removed
}
