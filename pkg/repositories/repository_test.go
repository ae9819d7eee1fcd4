package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/cbodonnell/snake/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepository runs the behaviour every backend must share.
func testRepository(t *testing.T, repository Repository) {
	ctx := context.Background()

	_, err := repository.LoadHighScore(ctx)
	assert.True(t, IsNotFound(err), "expected not found before the first save, got %v", err)

	require.NoError(t, repository.SaveHighScore(ctx, 30))
	score, err := repository.LoadHighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, score)

	require.NoError(t, repository.SaveHighScore(ctx, 20), "lower scores are accepted but ignored")
	score, err = repository.LoadHighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, score)

	require.NoError(t, repository.SaveHighScore(ctx, 50))
	score, err = repository.LoadHighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, score)

	assert.Error(t, repository.SaveHighScore(ctx, -10))
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewMemoryRepository())
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repository, err := NewSQLiteRepository(ctx, ":memory:")
	require.NoError(t, err)
	defer repository.Close(ctx)

	testRepository(t, repository)
}

func TestSQLiteRepository_persistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/snake.db"

	repository, err := NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repository.SaveHighScore(ctx, 120))
	require.NoError(t, repository.Close(ctx))

	reopened, err := NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	score, err := reopened.LoadHighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, score)
}

func TestPostgresRepository(t *testing.T) {
	connStr := os.Getenv("SNAKE_TEST_POSTGRES_URL")
	if connStr == "" {
		t.Skip("SNAKE_TEST_POSTGRES_URL is not set")
	}
	ctx := context.Background()
	repository, err := NewPostgresRepository(ctx, connStr)
	require.NoError(t, err)
	defer repository.Close(ctx)

	_, err = repository.(*PostgresRepository).pool.Exec(ctx, "DELETE FROM high_scores")
	require.NoError(t, err)

	testRepository(t, repository)
}

// newHighScoreServer serves the high score API backed by a memory repository.
func newHighScoreServer(t *testing.T) *httptest.Server {
	var lock sync.Mutex
	backend := NewMemoryRepository()

	mux := http.NewServeMux()
	mux.HandleFunc(HighScorePath, func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		defer lock.Unlock()
		switch r.Method {
		case http.MethodGet:
			score, err := backend.LoadHighScore(r.Context())
			if IsNotFound(err) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(&models.HighScore{HighScore: score})
		case http.MethodPut:
			body := &models.HighScore{}
			if err := json.NewDecoder(r.Body).Decode(body); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			if err := backend.SaveHighScore(r.Context(), body.HighScore); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPRepository(t *testing.T) {
	server := newHighScoreServer(t)
	testRepository(t, NewHTTPRepository(server.URL+"/"))
}

func TestHTTPRepository_serverError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	repository := NewHTTPRepository(server.URL)
	_, err := repository.LoadHighScore(context.Background())
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Error(t, repository.SaveHighScore(context.Background(), 10))
}

func TestNewRepository(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		connStr  string
		wantType interface{}
		wantErr  bool
	}{
		{name: "memory", connStr: "memory://", wantType: &MemoryRepository{}},
		{name: "sqlite", connStr: "sqlite://:memory:", wantType: &SQLiteRepository{}},
		{name: "http", connStr: "http://localhost:8080", wantType: &HTTPRepository{}},
		{name: "sqlite without path", connStr: "sqlite://", wantErr: true},
		{name: "missing scheme", connStr: "snake.db", wantErr: true},
		{name: "unknown scheme", connStr: "redis://localhost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, err := NewRepository(ctx, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer repository.Close(ctx)
			assert.IsType(t, tt.wantType, repository)
		})
	}
}
