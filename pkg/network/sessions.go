package network

import (
	"errors"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/google/uuid"
)

// ErrTooManySessions is returned when the session limit is reached
var ErrTooManySessions = errors.New("too many sessions")

// Session is one player's game, bound to one connection
type Session struct {
	ID        string
	CreatedAt time.Time
	Manager   *game.GameManager
	updates   chan types.Snapshot
}

type NewSessionOptions struct {
	// HighScore seeds the session's engine with the server-wide best score
	HighScore         int
	SaveHighScoreChan chan<- workers.SaveHighScoreRequest
	// NewTicker overrides the game manager's tick timer
	NewTicker func(time.Duration) game.Ticker
}

// NewSession creates a session with its own engine and game manager.
// The game manager is not started.
func NewSession(opts NewSessionOptions) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		updates:   make(chan types.Snapshot, 1),
	}
	s.Manager = game.NewGameManager(game.NewGameManagerOptions{
		Engine: game.NewEngine(game.NewEngineOptions{
			HighScore: opts.HighScore,
		}),
		SaveHighScoreChan: opts.SaveHighScoreChan,
		OnStateChange:     s.pushState,
		NewTicker:         opts.NewTicker,
	})
	return s
}

// Updates delivers the newest snapshot. Older snapshots not yet read are dropped.
func (s *Session) Updates() <-chan types.Snapshot {
	return s.updates
}

// pushState keeps only the latest snapshot so a slow connection never blocks the game loop
func (s *Session) pushState(snapshot types.Snapshot) {
	select {
	case s.updates <- snapshot:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snapshot:
	default:
	}
}

// SessionManager tracks live sessions
type SessionManager struct {
	sessions     map[string]*Session
	sessionsLock sync.RWMutex
	maxSessions  int
}

// NewSessionManager creates a SessionManager. A maxSessions of zero means no limit.
func NewSessionManager(maxSessions int) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

func (sm *SessionManager) Add(s *Session) error {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		return ErrTooManySessions
	}
	sm.sessions[s.ID] = s
	return nil
}

func (sm *SessionManager) Remove(id string) {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()
	delete(sm.sessions, id)
}

func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

func (sm *SessionManager) Count() int {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return len(sm.sessions)
}

// Full reports whether another session would exceed the limit.
func (sm *SessionManager) Full() bool {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions
}
