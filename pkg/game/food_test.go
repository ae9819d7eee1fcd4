package game

import (
	"math/rand"
	"testing"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceFood(t *testing.T) {
	tests := []struct {
		name    string
		snake   []types.Coordinate
		size    int
		want    *types.Coordinate
		wantErr error
	}{
		{
			name:    "full board",
			snake:   []types.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
			size:    2,
			wantErr: ErrBoardFull,
		},
		{
			name:  "single free cell",
			snake: []types.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			size:  2,
			want:  &types.Coordinate{X: 0, Y: 1},
		},
		{
			name:  "out of bounds segments do not count",
			snake: []types.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
			size:  2,
			want:  &types.Coordinate{X: 0, Y: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlaceFood(tt.snake, tt.size, rand.New(rand.NewSource(1)))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestPlaceFood_neverOnSnake(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	snake := constants.InitialSnake()
	for i := 0; i < 1000; i++ {
		food, err := PlaceFood(snake, constants.GridSize, rng)
		require.NoError(t, err)
		assert.True(t, food.InBounds(constants.GridSize))
		for _, segment := range snake {
			require.NotEqual(t, segment, food)
		}
	}
}

func TestPlaceFood_resamplesOccupiedCells(t *testing.T) {
	// the first two draws hit the head, the next two are free
	rng := &sequenceRand{values: []int{10, 10, 3, 4}}
	food, err := PlaceFood(constants.InitialSnake(), constants.GridSize, rng)
	require.NoError(t, err)
	assert.Equal(t, types.Coordinate{X: 3, Y: 4}, food)
}
