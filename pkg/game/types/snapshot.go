package types

// Snapshot is the observable state of a game. It owns its Snake slice.
type Snapshot struct {
	// Snake holds the occupied cells, head first
	Snake []Coordinate `json:"snake"`
	// Food is the cell holding the food
	Food Coordinate `json:"food"`
	// Direction is the committed direction shown to the player
	Direction Direction `json:"direction"`
	// Status is the state machine position
	Status Status `json:"status"`
	// Score is the score of the current run
	Score int `json:"score"`
	// HighScore is the best score seen, including earlier runs
	HighScore int `json:"highScore"`
	// Speed is the current tick interval in milliseconds
	Speed int `json:"speed"`
}

// Head returns the first snake cell, or false for an empty snapshot.
func (s Snapshot) Head() (Coordinate, bool) {
	if len(s.Snake) == 0 {
		return Coordinate{}, false
	}
	return s.Snake[0], true
}

// Occupies reports whether any snake segment sits on c.
func (s Snapshot) Occupies(c Coordinate) bool {
	for _, segment := range s.Snake {
		if segment == c {
			return true
		}
	}
	return false
}

// Copy returns a snapshot that shares no memory with s.
func (s Snapshot) Copy() Snapshot {
	snake := make([]Coordinate, len(s.Snake))
	copy(snake, s.Snake)
	s.Snake = snake
	return s
}

// Equal compares two snapshots cell by cell.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Snake) != len(other.Snake) {
		return false
	}
	for i := range s.Snake {
		if s.Snake[i] != other.Snake[i] {
			return false
		}
	}
	return s.Food == other.Food &&
		s.Direction == other.Direction &&
		s.Status == other.Status &&
		s.Score == other.Score &&
		s.HighScore == other.HighScore &&
		s.Speed == other.Speed
}
