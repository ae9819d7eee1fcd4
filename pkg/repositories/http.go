package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/snake/pkg/repositories/models"
)

const (
	// HighScorePath is the API path serving the high score
	HighScorePath = "/api/highscore"
	// DefaultHTTPTimeout bounds every request made by the HTTP repository
	DefaultHTTPTimeout = 5 * time.Second
)

// HTTPRepository stores the high score through the server API. It lets a
// client running in the browser share the server's persistence slot.
type HTTPRepository struct {
	url    string
	client *http.Client
}

func NewHTTPRepository(baseURL string) Repository {
	return &HTTPRepository{
		url: strings.TrimSuffix(baseURL, "/") + HighScorePath,
		client: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
}

func (r *HTTPRepository) Close(ctx context.Context) error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *HTTPRepository) LoadHighScore(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create high score request: %v", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send high score request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, &ErrNotFound{}
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("failed to load high score: status: %s, body: %s", resp.Status, string(b))
	}

	body := &models.HighScore{}
	if err := json.NewDecoder(resp.Body).Decode(body); err != nil {
		return 0, fmt.Errorf("failed to decode high score response: %v", err)
	}

	return body.HighScore, nil
}

func (r *HTTPRepository) SaveHighScore(ctx context.Context, score int) error {
	if err := validateScore(score); err != nil {
		return err
	}

	payload, err := json.Marshal(&models.HighScore{HighScore: score})
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create high score request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send high score request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to save high score: status: %s, body: %s", resp.Status, string(b))
	}

	return nil
}
