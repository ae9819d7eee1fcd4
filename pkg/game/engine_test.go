package game

import (
	"math/rand"
	"testing"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRand returns the queued values in order, then zeros.
type sequenceRand struct {
	values []int
}

func (r *sequenceRand) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

// newPlayingEngine returns a started engine with food at (0,0), away from the initial snake.
func newPlayingEngine(t *testing.T) *Engine {
	e := NewEngine(NewEngineOptions{Rand: &sequenceRand{}})
	require.True(t, e.Start())
	require.Equal(t, types.Coordinate{X: 0, Y: 0}, e.food)
	return e
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name          string
		highScore     int
		wantHighScore int
	}{
		{name: "no high score", highScore: 0, wantHighScore: 0},
		{name: "loaded high score", highScore: 120, wantHighScore: 120},
		{name: "negative high score", highScore: -5, wantHighScore: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(NewEngineOptions{HighScore: tt.highScore})
			s := e.Snapshot()

			assert.Equal(t, types.StatusIdle, s.Status)
			assert.Equal(t, constants.InitialSnake(), s.Snake)
			assert.Equal(t, types.DirectionUp, s.Direction)
			assert.Equal(t, 0, s.Score)
			assert.Equal(t, constants.InitialSpeed, s.Speed)
			assert.Equal(t, tt.wantHighScore, s.HighScore)
			assert.False(t, s.Occupies(s.Food))
			assert.True(t, s.Food.InBounds(constants.GridSize))
		})
	}
}

func TestEngine_Start(t *testing.T) {
	e := NewEngine(NewEngineOptions{})

	assert.True(t, e.Start())
	assert.Equal(t, types.StatusPlaying, e.Status())
	assert.False(t, e.Start(), "start is ignored while playing")

	assert.True(t, e.TogglePause())
	assert.False(t, e.Start(), "start is ignored while paused")
	assert.Equal(t, types.StatusPaused, e.Status())
}

func TestEngine_StartAfterGameOverResetsRun(t *testing.T) {
	e := NewEngine(NewEngineOptions{Rand: &sequenceRand{values: []int{10, 9, 10, 9}}})
	require.True(t, e.Start())
	e.Tick()
	require.Equal(t, 10, e.Score())

	e.status = types.StatusGameOver
	require.True(t, e.Start())

	s := e.Snapshot()
	assert.Equal(t, types.StatusPlaying, s.Status)
	assert.Equal(t, constants.InitialSnake(), s.Snake)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, constants.InitialSpeed, s.Speed)
	assert.Equal(t, 10, s.HighScore, "high score survives a restart")
	assert.False(t, s.Occupies(s.Food))
}

func TestEngine_TickEatsFood(t *testing.T) {
	// food lands at (10,9) both at construction and at start, then at (0,0)
	e := NewEngine(NewEngineOptions{Rand: &sequenceRand{values: []int{10, 9, 10, 9}}})
	require.True(t, e.Start())
	require.Equal(t, types.Coordinate{X: 10, Y: 9}, e.food)

	result := e.Tick()

	assert.Equal(t, TickResult{
		Moved:            true,
		Ate:              true,
		SpeedChanged:     true,
		HighScoreChanged: true,
	}, result)
	s := e.Snapshot()
	assert.Equal(t, []types.Coordinate{{X: 10, Y: 9}, {X: 10, Y: 10}, {X: 10, Y: 11}, {X: 10, Y: 12}}, s.Snake)
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 10, s.HighScore)
	assert.Equal(t, 148, s.Speed)
	assert.Equal(t, types.Coordinate{X: 0, Y: 0}, s.Food)
	assert.Equal(t, types.StatusPlaying, s.Status)
}

func TestEngine_TickMoves(t *testing.T) {
	e := newPlayingEngine(t)

	result := e.Tick()

	assert.Equal(t, TickResult{Moved: true}, result)
	s := e.Snapshot()
	assert.Equal(t, []types.Coordinate{{X: 10, Y: 9}, {X: 10, Y: 10}, {X: 10, Y: 11}}, s.Snake)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, constants.InitialSpeed, s.Speed)
}

func TestEngine_TickWallCollision(t *testing.T) {
	e := newPlayingEngine(t)
	e.snake = []types.Coordinate{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}
	e.direction = types.DirectionLeft
	e.pendingDirection = types.DirectionLeft
	before := e.Snapshot()

	result := e.Tick()

	assert.Equal(t, TickResult{Collision: CollisionWall}, result)
	after := e.Snapshot()
	assert.Equal(t, types.StatusGameOver, after.Status)
	assert.Equal(t, before.Snake, after.Snake, "the snake does not move on a fatal tick")
	assert.Equal(t, before.Score, after.Score)

	assert.Equal(t, TickResult{}, e.Tick(), "ticks after game over are no-ops")
}

func TestEngine_TickSelfCollision(t *testing.T) {
	e := newPlayingEngine(t)
	e.snake = []types.Coordinate{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 4, Y: 4}}
	e.direction = types.DirectionUp
	e.pendingDirection = types.DirectionLeft

	result := e.Tick()

	assert.Equal(t, TickResult{Collision: CollisionSelf}, result)
	assert.Equal(t, types.StatusGameOver, e.Status())
	assert.Len(t, e.snake, 5)
}

func TestEngine_TickIntoVacatingTail(t *testing.T) {
	e := newPlayingEngine(t)
	e.snake = []types.Coordinate{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}}
	e.direction = types.DirectionUp
	e.pendingDirection = types.DirectionLeft

	result := e.Tick()

	assert.Equal(t, TickResult{Moved: true}, result)
	assert.Equal(t, types.StatusPlaying, e.Status())
	assert.Equal(t, []types.Coordinate{{X: 4, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}}, e.snake)
	assert.Equal(t, types.DirectionLeft, e.direction)
}

func TestEngine_TogglePause(t *testing.T) {
	e := NewEngine(NewEngineOptions{})
	assert.False(t, e.TogglePause(), "pause is ignored while idle")

	require.True(t, e.Start())
	before := e.Snapshot()

	assert.True(t, e.TogglePause())
	assert.Equal(t, types.StatusPaused, e.Status())
	assert.Equal(t, TickResult{}, e.Tick(), "ticks are ignored while paused")
	paused := before.Copy()
	paused.Status = types.StatusPaused
	assert.True(t, e.Snapshot().Equal(paused))

	assert.True(t, e.TogglePause())
	assert.True(t, e.Snapshot().Equal(before), "pausing twice restores the state")

	e.status = types.StatusGameOver
	assert.False(t, e.TogglePause(), "pause is ignored after game over")
}

func TestEngine_RequestDirection(t *testing.T) {
	tests := []struct {
		name        string
		requests    []types.Direction
		wantChanged []bool
		wantPending types.Direction
	}{
		{
			name:        "reverse is rejected",
			requests:    []types.Direction{types.DirectionDown},
			wantChanged: []bool{false},
			wantPending: types.DirectionUp,
		},
		{
			name:        "same direction is not a change",
			requests:    []types.Direction{types.DirectionUp},
			wantChanged: []bool{false},
			wantPending: types.DirectionUp,
		},
		{
			name:        "perpendicular is accepted",
			requests:    []types.Direction{types.DirectionLeft},
			wantChanged: []bool{true},
			wantPending: types.DirectionLeft,
		},
		{
			name:        "reverse of the pending direction is rejected",
			requests:    []types.Direction{types.DirectionLeft, types.DirectionRight},
			wantChanged: []bool{true, false},
			wantPending: types.DirectionLeft,
		},
		{
			name:        "invalid direction is rejected",
			requests:    []types.Direction{types.Direction(9)},
			wantChanged: []bool{false},
			wantPending: types.DirectionUp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newPlayingEngine(t)
			for i, d := range tt.requests {
				assert.Equal(t, tt.wantChanged[i], e.RequestDirection(d), "request %d (%s)", i, d)
			}
			assert.Equal(t, tt.wantPending, e.PendingDirection())
			assert.Equal(t, tt.wantPending, e.Snapshot().Direction)
		})
	}
}

func TestEngine_RapidTurnsFollowPendingDirection(t *testing.T) {
	e := newPlayingEngine(t)

	// LEFT then DOWN within one interval turns the head back onto its neck
	require.True(t, e.RequestDirection(types.DirectionLeft))
	require.True(t, e.RequestDirection(types.DirectionDown))

	assert.Equal(t, TickResult{Collision: CollisionSelf}, e.Tick())
	assert.Equal(t, types.StatusGameOver, e.Status())
}

func TestEngine_SpeedFloor(t *testing.T) {
	e := newPlayingEngine(t)
	e.speed = constants.MinSpeed + 1

	e.food = e.snake[0].Step(e.pendingDirection)
	result := e.Tick()
	assert.True(t, result.Ate)
	assert.True(t, result.SpeedChanged)
	assert.Equal(t, constants.MinSpeed, e.Speed())

	e.food = e.snake[0].Step(e.pendingDirection)
	result = e.Tick()
	assert.True(t, result.Ate)
	assert.False(t, result.SpeedChanged)
	assert.Equal(t, constants.MinSpeed, e.Speed())
}

func TestEngine_HighScoreOnlyChangesWhenPassed(t *testing.T) {
	e := NewEngine(NewEngineOptions{HighScore: 10, Rand: &sequenceRand{}})
	require.True(t, e.Start())

	e.food = e.snake[0].Step(e.pendingDirection)
	result := e.Tick()
	assert.False(t, result.HighScoreChanged, "tying the high score does not change it")
	assert.Equal(t, 10, e.HighScore())

	e.food = e.snake[0].Step(e.pendingDirection)
	result = e.Tick()
	assert.True(t, result.HighScoreChanged)
	assert.Equal(t, 20, e.HighScore())
}

func TestEngine_RandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewEngine(NewEngineOptions{Rand: rand.New(rand.NewSource(11))})
	require.True(t, e.Start())

	directions := []types.Direction{types.DirectionUp, types.DirectionDown, types.DirectionLeft, types.DirectionRight}
	lastHighScore := 0
	for step := 0; step < 5000; step++ {
		if e.Status() == types.StatusGameOver {
			require.True(t, e.Start())
		}
		if rng.Intn(3) == 0 {
			e.RequestDirection(directions[rng.Intn(len(directions))])
		}
		e.Tick()

		s := e.Snapshot()
		seen := make(map[types.Coordinate]bool, len(s.Snake))
		for i, segment := range s.Snake {
			require.True(t, segment.InBounds(constants.GridSize), "step %d: segment %s out of bounds", step, segment)
			require.False(t, seen[segment], "step %d: segment %s repeated", step, segment)
			seen[segment] = true
			if i > 0 {
				prev := s.Snake[i-1]
				dist := abs(prev.X-segment.X) + abs(prev.Y-segment.Y)
				require.Equal(t, 1, dist, "step %d: segments %d and %d are not adjacent", step, i-1, i)
			}
		}
		require.False(t, s.Occupies(s.Food), "step %d: food %s under the snake", step, s.Food)
		require.Equal(t, (len(s.Snake)-3)*constants.FoodReward, s.Score)
		eaten := s.Score / constants.FoodReward
		require.Equal(t, max(constants.MinSpeed, constants.InitialSpeed-eaten*constants.SpeedDecrement), s.Speed)
		require.GreaterOrEqual(t, s.HighScore, s.Score)
		require.GreaterOrEqual(t, s.HighScore, lastHighScore, "high score never decreases")
		lastHighScore = s.HighScore
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
