package workers

import (
	"context"
	"fmt"
	"testing"
	"time"

	mocks "github.com/cbodonnell/snake/mocks/github.com/cbodonnell/snake/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSaveHighScoreWorker_Start(t *testing.T) {
	mockRepository := mocks.NewMockRepository(t)
	saveHighScoreChan := make(chan SaveHighScoreRequest, 4)

	saved := make(chan int, 4)
	mockRepository.EXPECT().SaveHighScore(mock.Anything, 10).Run(func(_ context.Context, score int) {
		saved <- score
	}).Return(nil).Once()
	mockRepository.EXPECT().SaveHighScore(mock.Anything, 20).Run(func(_ context.Context, score int) {
		saved <- score
	}).Return(fmt.Errorf("disk full")).Once()

	worker := NewSaveHighScoreWorker(NewSaveHighScoreWorkerOptions{
		Repository:        mockRepository,
		SaveHighScoreChan: saveHighScoreChan,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	saveHighScoreChan <- SaveHighScoreRequest{Timestamp: 1, HighScore: 10}
	saveHighScoreChan <- SaveHighScoreRequest{Timestamp: 2, HighScore: 20}

	for _, want := range []int{10, 20} {
		select {
		case got := <-saved:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for save of %d", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestSaveHighScoreWorker_flushesPendingOnStop(t *testing.T) {
	mockRepository := mocks.NewMockRepository(t)
	saveHighScoreChan := make(chan SaveHighScoreRequest, 4)
	saveHighScoreChan <- SaveHighScoreRequest{Timestamp: 1, HighScore: 30}
	saveHighScoreChan <- SaveHighScoreRequest{Timestamp: 2, HighScore: 50}
	saveHighScoreChan <- SaveHighScoreRequest{Timestamp: 3, HighScore: 40}

	mockRepository.EXPECT().SaveHighScore(mock.Anything, 50).Return(nil).Once()

	worker := NewSaveHighScoreWorker(NewSaveHighScoreWorkerOptions{
		Repository:        mockRepository,
		SaveHighScoreChan: saveHighScoreChan,
	})
	worker.flush()

	assert.Empty(t, saveHighScoreChan)
}

func TestSaveHighScoreWorker_flushWithNothingPending(t *testing.T) {
	mockRepository := mocks.NewMockRepository(t)
	worker := NewSaveHighScoreWorker(NewSaveHighScoreWorkerOptions{
		Repository:        mockRepository,
		SaveHighScoreChan: make(chan SaveHighScoreRequest, 1),
	})
	worker.flush()

	mockRepository.AssertNotCalled(t, "SaveHighScore", mock.Anything, mock.Anything)
}
