package network

import (
	"testing"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager(2)
	first := NewSession(NewSessionOptions{})
	second := NewSession(NewSessionOptions{})
	third := NewSession(NewSessionOptions{})

	require.NoError(t, sm.Add(first))
	require.NoError(t, sm.Add(second))
	assert.True(t, sm.Full())
	assert.ErrorIs(t, sm.Add(third), ErrTooManySessions)
	assert.Equal(t, 2, sm.Count())

	got, ok := sm.Get(first.ID)
	require.True(t, ok)
	assert.Same(t, first, got)

	sm.Remove(first.ID)
	_, ok = sm.Get(first.ID)
	assert.False(t, ok)
	assert.False(t, sm.Full())
	assert.NoError(t, sm.Add(third))
}

func TestSessionManager_unlimited(t *testing.T) {
	sm := NewSessionManager(0)
	for i := 0; i < 10; i++ {
		require.NoError(t, sm.Add(NewSession(NewSessionOptions{})))
	}
	assert.False(t, sm.Full())
	assert.Equal(t, 10, sm.Count())
}

func TestNewSession(t *testing.T) {
	s := NewSession(NewSessionOptions{HighScore: 90})

	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, 90, s.Manager.Snapshot().HighScore)
	assert.Equal(t, types.StatusIdle, s.Manager.Snapshot().Status)
}

func TestSession_pushStateKeepsLatest(t *testing.T) {
	s := NewSession(NewSessionOptions{})

	s.pushState(types.Snapshot{Score: 10})
	s.pushState(types.Snapshot{Score: 20})
	s.pushState(types.Snapshot{Score: 30})

	select {
	case snapshot := <-s.Updates():
		assert.Equal(t, 30, snapshot.Score)
	default:
		t.Fatal("expected a pending update")
	}
	select {
	case snapshot := <-s.Updates():
		t.Fatalf("unexpected update %+v", snapshot)
	default:
	}
}
