package objects

import (
	"image/color"
	"math"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BoardObject draws the grid, the snake and the food.
type BoardObject struct {
	snapshot types.Snapshot
	// grid is the checkerboard, drawn once and reused every frame
	grid *ebiten.Image
	// frames counts updates to animate the food
	frames int
}

func NewBoardObject() *BoardObject {
	grid := ebiten.NewImage(BoardSize, BoardSize)
	grid.Fill(ColorBoard)
	for y := 0; y < constants.GridSize; y++ {
		for x := 0; x < constants.GridSize; x++ {
			clr := ColorCellOdd
			if (x+y)%2 == 0 {
				clr = ColorCellEven
			}
			vector.DrawFilledRect(grid, float32(x*CellSize), float32(y*CellSize), CellSize-1, CellSize-1, clr, false)
		}
	}
	return &BoardObject{grid: grid}
}

func (o *BoardObject) SetSnapshot(snapshot types.Snapshot) {
	o.snapshot = snapshot
}

func (o *BoardObject) Update() error {
	o.frames++
	return nil
}

func (o *BoardObject) Draw(screen *ebiten.Image) {
	bounds := BoardBounds()
	vector.StrokeRect(screen,
		float32(bounds.Min.X)-BorderWidth/2, float32(bounds.Min.Y)-BorderWidth/2,
		float32(BoardSize+BorderWidth), float32(BoardSize+BorderWidth),
		BorderWidth, ColorBorder, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	screen.DrawImage(o.grid, op)

	o.drawFood(screen)

	// body first so the head stays on top when drawn larger
	for i := len(o.snapshot.Snake) - 1; i > 0; i-- {
		o.drawCell(screen, o.snapshot.Snake[i], 1, ColorBody)
	}
	if head, ok := o.snapshot.Head(); ok {
		o.drawCell(screen, head, -1, ColorHead)
	}
}

// drawCell fills a cell shrunk by inset pixels on every side. A negative inset grows it.
func (o *BoardObject) drawCell(screen *ebiten.Image, c types.Coordinate, inset float32, clr color.Color) {
	x, y := cellOrigin(c)
	vector.DrawFilledRect(screen, x+inset, y+inset, CellSize-2*inset, CellSize-2*inset, clr, true)
}

func (o *BoardObject) drawFood(screen *ebiten.Image) {
	if len(o.snapshot.Snake) == 0 {
		return
	}
	x, y := cellOrigin(o.snapshot.Food)
	pulse := float32(math.Sin(float64(o.frames)/8)) * 1.5
	radius := CellSize*0.375 + pulse
	vector.DrawFilledCircle(screen, x+CellSize/2, y+CellSize/2, radius, ColorFood, true)
}

func cellOrigin(c types.Coordinate) (float32, float32) {
	bounds := BoardBounds()
	return float32(bounds.Min.X + c.X*CellSize), float32(bounds.Min.Y + c.Y*CellSize)
}
