package constants

import "github.com/cbodonnell/snake/pkg/game/types"

const (
	// GridSize is the number of cells along each side of the square board
	GridSize int = 20

	// InitialSpeed is the tick interval at the start of a run
	InitialSpeed int = 150 // milliseconds
	// MinSpeed is the fastest tick interval the game can reach
	MinSpeed int = 60 // milliseconds
	// SpeedDecrement is how much faster the game ticks per food eaten
	SpeedDecrement int = 2 // milliseconds

	// FoodReward is the score awarded per food eaten
	FoodReward int = 10

	// InitialDirection is the direction of the snake at the start of a run
	InitialDirection = types.DirectionUp
)

// InitialSnake returns a fresh copy of the three vertically stacked starting cells, head first.
func InitialSnake() []types.Coordinate {
	return []types.Coordinate{
		{X: 10, Y: 10},
		{X: 10, Y: 11},
		{X: 10, Y: 12},
	}
}
