package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
)

// shutdownSaveTimeout bounds the final save made after the worker is cancelled
const shutdownSaveTimeout = 2 * time.Second

type SaveHighScoreWorker struct {
	repository        repositories.Repository
	saveHighScoreChan <-chan SaveHighScoreRequest
}

type NewSaveHighScoreWorkerOptions struct {
	Repository        repositories.Repository
	SaveHighScoreChan <-chan SaveHighScoreRequest
}

type SaveHighScoreRequest struct {
	Timestamp int64
	HighScore int
}

// NewSaveHighScoreWorker creates a new SaveHighScoreWorker.
// The worker writes high score increases reported by the game loop
// to the repository, off the game goroutine.
func NewSaveHighScoreWorker(opts NewSaveHighScoreWorkerOptions) *SaveHighScoreWorker {
	return &SaveHighScoreWorker{
		repository:        opts.Repository,
		saveHighScoreChan: opts.SaveHighScoreChan,
	}
}

func (w *SaveHighScoreWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.flush()
			return
		case saveRequest := <-w.saveHighScoreChan:
			w.saveHighScore(ctx, saveRequest)
		}
	}
}

// flush saves the best of any requests still buffered when the worker stops.
func (w *SaveHighScoreWorker) flush() {
	best := -1
	for {
		select {
		case saveRequest := <-w.saveHighScoreChan:
			best = max(best, saveRequest.HighScore)
			continue
		default:
		}
		break
	}
	if best < 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownSaveTimeout)
	defer cancel()
	w.saveHighScore(ctx, SaveHighScoreRequest{
		Timestamp: time.Now().UnixMilli(),
		HighScore: best,
	})
}

func (w *SaveHighScoreWorker) saveHighScore(ctx context.Context, saveRequest SaveHighScoreRequest) {
	err := w.repository.SaveHighScore(ctx, saveRequest.HighScore)
	if err != nil {
		log.Error("Failed to save high score %d: %v", saveRequest.HighScore, err)
		return
	}
	log.Debug("Saved high score %d", saveRequest.HighScore)
}
