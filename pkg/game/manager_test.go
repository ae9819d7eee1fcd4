package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	lock     sync.Mutex
	c        chan time.Time
	interval time.Duration
	resets   []time.Duration
	stopped  bool
}

func (f *fakeTicker) C() <-chan time.Time {
	return f.c
}

func (f *fakeTicker) Reset(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.interval = d
	f.resets = append(f.resets, d)
}

func (f *fakeTicker) Stop() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.stopped
}

func (f *fakeTicker) getResets() []time.Duration {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]time.Duration(nil), f.resets...)
}

// managerHarness runs a GameManager with fake tickers and records every published snapshot.
type managerHarness struct {
	gm       *GameManager
	states   chan types.Snapshot
	tickers  chan *fakeTicker
	saves    chan workers.SaveHighScoreRequest
	cancel   context.CancelFunc
	startErr chan error
}

func newManagerHarness(t *testing.T, engine *Engine) *managerHarness {
	h := &managerHarness{
		states:   make(chan types.Snapshot, 256),
		tickers:  make(chan *fakeTicker, 16),
		saves:    make(chan workers.SaveHighScoreRequest, 16),
		startErr: make(chan error, 1),
	}
	h.gm = NewGameManager(NewGameManagerOptions{
		Engine:            engine,
		SaveHighScoreChan: h.saves,
		StateManager:      state.NewInMemoryStateManager(),
		OnStateChange: func(s types.Snapshot) {
			h.states <- s
		},
		NewTicker: func(d time.Duration) Ticker {
			ft := &fakeTicker{c: make(chan time.Time), interval: d}
			h.tickers <- ft
			return ft
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.startErr <- h.gm.Start(ctx)
	}()
	t.Cleanup(h.stop)

	initial := h.nextState(t)
	require.Equal(t, types.StatusIdle, initial.Status)
	return h
}

func (h *managerHarness) stop() {
	h.cancel()
	<-h.gm.Done()
}

func (h *managerHarness) nextState(t *testing.T) types.Snapshot {
	t.Helper()
	select {
	case s := <-h.states:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a state change")
	}
	return types.Snapshot{}
}

func (h *managerHarness) nextTicker(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case ft := <-h.tickers:
		return ft
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a ticker")
	}
	return nil
}

func (h *managerHarness) tick(t *testing.T, ft *fakeTicker) {
	t.Helper()
	select {
	case ft.c <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("timed out delivering a tick")
	}
}

func (h *managerHarness) assertNoTicker(t *testing.T) {
	t.Helper()
	select {
	case <-h.tickers:
		t.Fatal("unexpected ticker created")
	default:
	}
}

func TestGameManager_startAndTick(t *testing.T) {
	h := newManagerHarness(t, NewEngine(NewEngineOptions{Rand: &sequenceRand{}}))
	h.assertNoTicker(t)

	require.NoError(t, h.gm.StartGame())
	s := h.nextState(t)
	assert.Equal(t, types.StatusPlaying, s.Status)

	ft := h.nextTicker(t)
	assert.Equal(t, time.Duration(constants.InitialSpeed)*time.Millisecond, ft.interval)

	h.tick(t, ft)
	s = h.nextState(t)
	assert.Equal(t, []types.Coordinate{{X: 10, Y: 9}, {X: 10, Y: 10}, {X: 10, Y: 11}}, s.Snake)
	assert.True(t, s.Equal(h.gm.Snapshot()), "the state manager holds the published snapshot")

	require.NoError(t, h.gm.StartGame(), "start while playing is accepted but ignored")
	require.NoError(t, h.gm.RequestDirection(types.DirectionLeft))
	s = h.nextState(t)
	assert.Equal(t, types.DirectionLeft, s.Direction, "ignored commands publish nothing")
}

func TestGameManager_pauseStopsTicker(t *testing.T) {
	h := newManagerHarness(t, NewEngine(NewEngineOptions{Rand: &sequenceRand{}}))

	require.NoError(t, h.gm.StartGame())
	h.nextState(t)
	first := h.nextTicker(t)

	require.NoError(t, h.gm.TogglePause())
	s := h.nextState(t)
	assert.Equal(t, types.StatusPaused, s.Status)
	assert.True(t, first.isStopped())
	h.assertNoTicker(t)

	require.NoError(t, h.gm.TogglePause())
	s = h.nextState(t)
	assert.Equal(t, types.StatusPlaying, s.Status)
	second := h.nextTicker(t)
	assert.Equal(t, time.Duration(constants.InitialSpeed)*time.Millisecond, second.interval)

	h.tick(t, second)
	s = h.nextState(t)
	head, _ := s.Head()
	assert.Equal(t, types.Coordinate{X: 10, Y: 9}, head)
}

func TestGameManager_rejectedDirectionPublishesNothing(t *testing.T) {
	h := newManagerHarness(t, NewEngine(NewEngineOptions{Rand: &sequenceRand{}}))
	require.NoError(t, h.gm.StartGame())
	h.nextState(t)
	h.nextTicker(t)

	require.NoError(t, h.gm.RequestDirection(types.DirectionDown))
	require.NoError(t, h.gm.RequestDirection(types.DirectionRight))

	s := h.nextState(t)
	assert.Equal(t, types.DirectionRight, s.Direction)
}

func TestGameManager_eatingResetsTickerAndSavesHighScore(t *testing.T) {
	h := newManagerHarness(t, NewEngine(NewEngineOptions{Rand: &sequenceRand{values: []int{10, 9, 10, 9}}}))
	require.NoError(t, h.gm.StartGame())
	h.nextState(t)
	ft := h.nextTicker(t)

	h.tick(t, ft)
	s := h.nextState(t)
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 148, s.Speed)
	assert.Equal(t, []time.Duration{148 * time.Millisecond}, ft.getResets())

	select {
	case req := <-h.saves:
		assert.Equal(t, 10, req.HighScore)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a save request")
	}
}

func TestGameManager_gameOverStopsTicker(t *testing.T) {
	// food at (0,0) is off the snake's path up column 10
	h := newManagerHarness(t, NewEngine(NewEngineOptions{Rand: &sequenceRand{}}))
	require.NoError(t, h.gm.StartGame())
	h.nextState(t)
	ft := h.nextTicker(t)

	for i := 0; i < 10; i++ {
		h.tick(t, ft)
		h.nextState(t)
	}
	h.tick(t, ft)
	s := h.nextState(t)
	assert.Equal(t, types.StatusGameOver, s.Status)
	head, _ := s.Head()
	assert.Equal(t, types.Coordinate{X: 10, Y: 0}, head)
	assert.True(t, ft.isStopped())

	require.NoError(t, h.gm.StartGame())
	s = h.nextState(t)
	assert.Equal(t, types.StatusPlaying, s.Status)
	assert.Equal(t, constants.InitialSnake(), s.Snake)
	h.nextTicker(t)
}

func TestGameManager_stopped(t *testing.T) {
	gm := NewGameManager(NewGameManagerOptions{})
	assert.Equal(t, types.StatusIdle, gm.Snapshot().Status, "the initial snapshot is available before start")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- gm.Start(ctx)
	}()

	cancel()
	select {
	case <-gm.Done():
	case <-time.After(time.Second):
		t.Fatal("game manager did not stop")
	}
	assert.NoError(t, <-errCh)

	assert.ErrorIs(t, gm.StartGame(), ErrManagerStopped)
	assert.Error(t, gm.Start(context.Background()), "a game manager runs once")
}
