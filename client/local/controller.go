package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/workers"
)

// saveHighScoreBufferSize is how many unsaved high score increases may wait for the save worker
const saveHighScoreBufferSize = 16

// Controller plays a game in-process and persists high scores to a repository.
type Controller struct {
	gameManager *game.GameManager
	repository  repositories.Repository
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once
	closeErr    error
}

type NewControllerOptions struct {
	// Repository stores the high score. Defaults to an in-memory repository.
	Repository repositories.Repository
	// Rand overrides the engine's food placement source
	Rand game.RandSource
	// NewTicker overrides the game manager's tick timer
	NewTicker func(time.Duration) game.Ticker
}

// NewController loads the stored high score and starts the game loop and the save worker.
func NewController(ctx context.Context, opts NewControllerOptions) *Controller {
	repository := opts.Repository
	if repository == nil {
		repository = repositories.NewMemoryRepository()
	}

	engine := game.NewEngine(game.NewEngineOptions{
		HighScore: game.LoadHighScore(ctx, repository),
		Rand:      opts.Rand,
	})

	saveHighScoreChan := make(chan workers.SaveHighScoreRequest, saveHighScoreBufferSize)
	saveHighScoreWorker := workers.NewSaveHighScoreWorker(workers.NewSaveHighScoreWorkerOptions{
		Repository:        repository,
		SaveHighScoreChan: saveHighScoreChan,
	})
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Engine:            engine,
		SaveHighScoreChan: saveHighScoreChan,
		NewTicker:         opts.NewTicker,
	})

	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		gameManager: gameManager,
		repository:  repository,
		cancel:      cancel,
	}

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		saveHighScoreWorker.Start(ctx)
	}()
	go func() {
		defer c.wg.Done()
		if err := gameManager.Start(ctx); err != nil {
			log.Error("Game manager failed: %v", err)
		}
	}()

	return c
}

func (c *Controller) StartGame() error {
	return c.gameManager.StartGame()
}

func (c *Controller) TogglePause() error {
	return c.gameManager.TogglePause()
}

func (c *Controller) RequestDirection(d types.Direction) error {
	return c.gameManager.RequestDirection(d)
}

func (c *Controller) Snapshot() types.Snapshot {
	return c.gameManager.Snapshot()
}

// Err reports ErrManagerStopped once the game loop has exited.
func (c *Controller) Err() error {
	select {
	case <-c.gameManager.Done():
		return game.ErrManagerStopped
	default:
		return nil
	}
}

// Close stops the game loop, lets the save worker flush and closes the repository.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
		if err := c.repository.Close(context.Background()); err != nil {
			c.closeErr = fmt.Errorf("failed to close repository: %v", err)
		}
	})
	return c.closeErr
}
