package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/repositories/models"
	"github.com/cbodonnell/snake/pkg/version"
)

// SessionCounter reports how many game sessions are live
type SessionCounter interface {
	Count() int
}

type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
}

func HandleGetHighScore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		highScore, err := repository.LoadHighScore(r.Context())
		if err != nil {
			if !repositories.IsNotFound(err) {
				log.Error("failed to load high score: %v", err)
				http.Error(w, "Failed to load high score", http.StatusInternalServerError)
				return
			}
			highScore = 0
		}

		writeJSON(w, &models.HighScore{HighScore: highScore})
	}
}

// HandlePutHighScore offers a score to the persistence slot and responds with the stored best.
func HandlePutHighScore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := &models.HighScore{}
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(body); err != nil {
			http.Error(w, "Invalid high score body", http.StatusBadRequest)
			return
		}
		if body.HighScore < 0 {
			http.Error(w, "High score must not be negative", http.StatusBadRequest)
			return
		}

		if err := repository.SaveHighScore(r.Context(), body.HighScore); err != nil {
			log.Error("failed to save high score: %v", err)
			http.Error(w, "Failed to save high score", http.StatusInternalServerError)
			return
		}

		highScore, err := repository.LoadHighScore(r.Context())
		if err != nil {
			log.Error("failed to load high score: %v", err)
			http.Error(w, "Failed to load high score", http.StatusInternalServerError)
			return
		}

		writeJSON(w, &models.HighScore{HighScore: highScore})
	}
}

func HandleHealthz(sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := &Health{
			Status:  "ok",
			Version: version.Get(),
		}
		if sessions != nil {
			health.Sessions = sessions.Count()
		}
		writeJSON(w, health)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
