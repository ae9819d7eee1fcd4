package models

// HighScore is the body exchanged by the high score API.
type HighScore struct {
	HighScore int `json:"highScore"`
}
