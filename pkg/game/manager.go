package game

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/workers"
)

// DefaultCommandQueueSize is the number of commands that can wait for the game loop
const DefaultCommandQueueSize = 64

// ErrManagerStopped is returned when a command is submitted after the game loop exited.
var ErrManagerStopped = errors.New("game manager stopped")

type CommandType uint8

const (
	CommandStart CommandType = iota
	CommandTogglePause
	CommandDirection
)

func (t CommandType) String() string {
	switch t {
	case CommandStart:
		return "start"
	case CommandTogglePause:
		return "toggle-pause"
	case CommandDirection:
		return "direction"
	}
	return "unknown"
}

// Command is a player intent delivered to the game loop.
type Command struct {
	Type CommandType
	// Direction is only read for CommandDirection
	Direction types.Direction
}

// GameManager owns an Engine and is the only goroutine that mutates it.
// Commands and ticks are applied in the order they reach the loop.
type GameManager struct {
	engine            *Engine
	commandQueue      queue.Queue
	wake              chan struct{}
	saveHighScoreChan chan<- workers.SaveHighScoreRequest
	stateManager      state.StateManager
	onStateChange     func(types.Snapshot)
	newTicker         func(time.Duration) Ticker
	ticker            Ticker
	started           atomic.Bool
	done              chan struct{}
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Engine *Engine
	// CommandQueue buffers submitted commands. Defaults to an in-memory queue.
	CommandQueue queue.Queue
	// SaveHighScoreChan receives every high score increase. Optional.
	SaveHighScoreChan chan<- workers.SaveHighScoreRequest
	// StateManager holds the latest snapshot. Defaults to an in-memory state manager.
	StateManager state.StateManager
	// OnStateChange is called on the game goroutine after every change. It must not block.
	OnStateChange func(types.Snapshot)
	// NewTicker creates the tick timer. Defaults to NewTimeTicker.
	NewTicker func(time.Duration) Ticker
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	engine := opts.Engine
	if engine == nil {
		engine = NewEngine(NewEngineOptions{})
	}
	commandQueue := opts.CommandQueue
	if commandQueue == nil {
		commandQueue = queue.NewInMemoryQueue(DefaultCommandQueueSize)
	}
	stateManager := opts.StateManager
	if stateManager == nil {
		stateManager = state.NewInMemoryStateManager()
	}
	newTicker := opts.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}

	gm := &GameManager{
		engine:            engine,
		commandQueue:      commandQueue,
		wake:              make(chan struct{}, 1),
		saveHighScoreChan: opts.SaveHighScoreChan,
		stateManager:      stateManager,
		onStateChange:     opts.OnStateChange,
		newTicker:         newTicker,
		done:              make(chan struct{}),
	}
	if err := gm.stateManager.Set(context.Background(), engine.Snapshot()); err != nil {
		log.Error("Failed to set initial snapshot: %v", err)
	}
	return gm
}

// Start runs the game loop until ctx is done.
func (gm *GameManager) Start(ctx context.Context) error {
	if !gm.started.CompareAndSwap(false, true) {
		return fmt.Errorf("game manager already started")
	}
	defer close(gm.done)
	defer gm.stopTicker()

	gm.publish(ctx)

	for {
		var tickC <-chan time.Time
		if gm.ticker != nil {
			tickC = gm.ticker.C()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-gm.wake:
			gm.processCommands(ctx)
		case <-tickC:
			// commands that arrived before the tick apply first
			gm.processCommands(ctx)
			gm.gameTick(ctx)
		}
	}
}

// Done is closed once the game loop has exited.
func (gm *GameManager) Done() <-chan struct{} {
	return gm.done
}

// Submit hands a command to the game loop without waiting for it to be applied.
func (gm *GameManager) Submit(cmd Command) error {
	select {
	case <-gm.done:
		return ErrManagerStopped
	default:
	}

	if err := gm.commandQueue.Enqueue(cmd); err != nil {
		return fmt.Errorf("failed to enqueue %s command: %v", cmd.Type, err)
	}
	select {
	case gm.wake <- struct{}{}:
	default:
	}
	return nil
}

func (gm *GameManager) StartGame() error {
	return gm.Submit(Command{Type: CommandStart})
}

func (gm *GameManager) TogglePause() error {
	return gm.Submit(Command{Type: CommandTogglePause})
}

func (gm *GameManager) RequestDirection(d types.Direction) error {
	return gm.Submit(Command{Type: CommandDirection, Direction: d})
}

// Snapshot returns the latest published snapshot.
func (gm *GameManager) Snapshot() types.Snapshot {
	snapshot, err := gm.stateManager.Get(context.Background())
	if err != nil {
		log.Error("Failed to get current snapshot: %v", err)
		return types.Snapshot{}
	}
	return snapshot
}

// processCommands applies all pending commands in the queue.
func (gm *GameManager) processCommands(ctx context.Context) {
	pendingCommands, err := gm.commandQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return
	}
	for _, item := range pendingCommands {
		cmd, ok := item.(Command)
		if !ok {
			log.Error("Failed to cast command: %T", item)
			continue
		}
		if gm.applyCommand(cmd) {
			gm.syncTicker()
			gm.publish(ctx)
		}
	}
}

func (gm *GameManager) applyCommand(cmd Command) bool {
	switch cmd.Type {
	case CommandStart:
		if gm.engine.Start() {
			log.Debug("Game started")
			return true
		}
	case CommandTogglePause:
		if gm.engine.TogglePause() {
			log.Debug("Game %s", gm.engine.Status())
			return true
		}
	case CommandDirection:
		return gm.engine.RequestDirection(cmd.Direction)
	default:
		log.Error("Unknown command type: %v", cmd.Type)
	}
	return false
}

// gameTick runs one step of the engine and reacts to what it did.
func (gm *GameManager) gameTick(ctx context.Context) {
	result := gm.engine.Tick()
	if !result.Moved && result.Collision == CollisionNone {
		return
	}

	if result.Collision != CollisionNone {
		log.Info("Game over: %s collision with score %d", result.Collision, gm.engine.Score())
		gm.syncTicker()
	}
	if result.SpeedChanged && gm.ticker != nil {
		gm.ticker.Reset(gm.engine.Interval())
	}
	if result.HighScoreChanged {
		gm.requestSave()
	}
	gm.publish(ctx)
}

// syncTicker arms the ticker while PLAYING and stops it otherwise.
func (gm *GameManager) syncTicker() {
	playing := gm.engine.Status() == types.StatusPlaying
	switch {
	case playing && gm.ticker == nil:
		gm.ticker = gm.newTicker(gm.engine.Interval())
	case !playing:
		gm.stopTicker()
	}
}

func (gm *GameManager) stopTicker() {
	if gm.ticker != nil {
		gm.ticker.Stop()
		gm.ticker = nil
	}
}

func (gm *GameManager) requestSave() {
	if gm.saveHighScoreChan == nil {
		return
	}
	saveRequest := workers.SaveHighScoreRequest{
		Timestamp: time.Now().UnixMilli(),
		HighScore: gm.engine.HighScore(),
	}
	select {
	case gm.saveHighScoreChan <- saveRequest:
	default:
		log.Warn("Dropped save of high score %d: save worker is behind", saveRequest.HighScore)
	}
}

func (gm *GameManager) publish(ctx context.Context) {
	snapshot := gm.engine.Snapshot()
	if err := gm.stateManager.Set(ctx, snapshot); err != nil {
		log.Error("Failed to set snapshot: %v", err)
	}
	if gm.onStateChange != nil {
		gm.onStateChange(snapshot)
	}
}
