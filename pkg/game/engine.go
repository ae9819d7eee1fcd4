package game

import (
	"math/rand"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
)

// Collision identifies what ended a run.
type Collision uint8

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	}
	return "unknown"
}

// TickResult describes what a single tick did.
type TickResult struct {
	// Moved is true when the snake advanced one cell
	Moved bool
	// Ate is true when the new head landed on the food
	Ate bool
	// Collision is set when the tick ended the run
	Collision Collision
	// SpeedChanged is true when the tick interval was shortened
	SpeedChanged bool
	// HighScoreChanged is true when the score passed the previous high score
	HighScoreChanged bool
}

// Engine owns the state of one game and the transitions between states.
// It is not safe for concurrent use; GameManager serializes access to it.
type Engine struct {
	snake            []types.Coordinate
	food             types.Coordinate
	direction        types.Direction
	pendingDirection types.Direction
	status           types.Status
	score            int
	highScore        int
	speed            int
	rng              RandSource
}

// NewEngineOptions contains options for creating a new Engine.
type NewEngineOptions struct {
	// HighScore is the best score loaded from the persistence slot
	HighScore int
	// Rand is the source used for food placement. Defaults to a time seeded source.
	Rand RandSource
}

// NewEngine creates an idle engine with the initial snake on the board and food placed off it.
func NewEngine(opts NewEngineOptions) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	highScore := opts.HighScore
	if highScore < 0 {
		highScore = 0
	}

	e := &Engine{
		snake:            constants.InitialSnake(),
		direction:        constants.InitialDirection,
		pendingDirection: constants.InitialDirection,
		status:           types.StatusIdle,
		highScore:        highScore,
		speed:            constants.InitialSpeed,
		rng:              rng,
	}
	e.food = e.mustPlaceFood(e.snake)
	return e
}

// Start resets the board and begins a run. It only acts from IDLE or GAME_OVER
// and reports whether it did.
func (e *Engine) Start() bool {
	if e.status != types.StatusIdle && e.status != types.StatusGameOver {
		return false
	}

	e.snake = constants.InitialSnake()
	e.direction = constants.InitialDirection
	e.pendingDirection = constants.InitialDirection
	e.score = 0
	e.speed = constants.InitialSpeed
	e.food = e.mustPlaceFood(e.snake)
	e.status = types.StatusPlaying
	return true
}

// TogglePause switches between PLAYING and PAUSED and reports whether it did.
func (e *Engine) TogglePause() bool {
	switch e.status {
	case types.StatusPlaying:
		e.status = types.StatusPaused
	case types.StatusPaused:
		e.status = types.StatusPlaying
	default:
		return false
	}
	return true
}

// RequestDirection buffers a direction for the next tick. The direct reverse of the
// pending direction is rejected. Accepted directions are also committed for display.
func (e *Engine) RequestDirection(d types.Direction) bool {
	if !d.Valid() {
		return false
	}
	if d == e.pendingDirection.Opposite() {
		return false
	}
	changed := d != e.pendingDirection || d != e.direction
	e.pendingDirection = d
	e.direction = d
	return changed
}

// Tick advances the simulation by one step. It does nothing unless PLAYING.
func (e *Engine) Tick() TickResult {
	if e.status != types.StatusPlaying {
		return TickResult{}
	}

	newHead := e.snake[0].Step(e.pendingDirection)

	if !newHead.InBounds(constants.GridSize) {
		e.status = types.StatusGameOver
		return TickResult{Collision: CollisionWall}
	}

	// the tail is excluded because it vacates its cell this tick, judged on the pre-move snake
	for _, segment := range e.snake[:len(e.snake)-1] {
		if segment == newHead {
			e.status = types.StatusGameOver
			return TickResult{Collision: CollisionSelf}
		}
	}

	result := TickResult{Moved: true}
	result.Ate = newHead == e.food

	size := len(e.snake)
	if result.Ate {
		size++
	}
	next := make([]types.Coordinate, 0, size)
	next = append(next, newHead)
	if result.Ate {
		next = append(next, e.snake...)
	} else {
		next = append(next, e.snake[:len(e.snake)-1]...)
	}
	e.snake = next

	if result.Ate {
		e.score += constants.FoodReward
		if speed := max(constants.MinSpeed, e.speed-constants.SpeedDecrement); speed != e.speed {
			e.speed = speed
			result.SpeedChanged = true
		}
		if e.score > e.highScore {
			e.highScore = e.score
			result.HighScoreChanged = true
		}
		food, err := PlaceFood(e.snake, constants.GridSize, e.rng)
		if err != nil {
			log.Warn("Failed to place food: %v", err)
		} else {
			e.food = food
		}
	}

	e.direction = e.pendingDirection
	return result
}

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() types.Snapshot {
	snake := make([]types.Coordinate, len(e.snake))
	copy(snake, e.snake)
	return types.Snapshot{
		Snake:     snake,
		Food:      e.food,
		Direction: e.direction,
		Status:    e.status,
		Score:     e.score,
		HighScore: e.highScore,
		Speed:     e.speed,
	}
}

func (e *Engine) Status() types.Status {
	return e.status
}

// Speed returns the current tick interval in milliseconds.
func (e *Engine) Speed() int {
	return e.speed
}

// Interval returns the current tick interval.
func (e *Engine) Interval() time.Duration {
	return time.Duration(e.speed) * time.Millisecond
}

func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) HighScore() int {
	return e.highScore
}

// PendingDirection returns the direction the next tick will move in.
func (e *Engine) PendingDirection() types.Direction {
	return e.pendingDirection
}

// mustPlaceFood places food next to a snake that cannot fill the board.
func (e *Engine) mustPlaceFood(snake []types.Coordinate) types.Coordinate {
	food, err := PlaceFood(snake, constants.GridSize, e.rng)
	if err != nil {
		panic(err)
	}
	return food
}
