package objects

import (
	"image"
	"image/color"

	"github.com/cbodonnell/snake/pkg/game/constants"
)

const (
	// CellSize is the side of one grid cell in pixels
	CellSize = 20
	// BorderWidth is the frame drawn around the board
	BorderWidth = 4

	HUDHeight      = 64
	ControlsHeight = 220
	Margin         = 20

	BoardSize    = constants.GridSize * CellSize
	ScreenWidth  = BoardSize + 2*Margin
	ScreenHeight = HUDHeight + BoardSize + 2*BorderWidth + ControlsHeight
)

// BoardBounds is the screen area covered by the grid cells.
func BoardBounds() image.Rectangle {
	origin := image.Pt(Margin, HUDHeight+BorderWidth)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(BoardSize, BoardSize))}
}

// ControlsBounds is the screen area below the board holding the touch controls.
func ControlsBounds() image.Rectangle {
	return image.Rect(0, HUDHeight+BoardSize+2*BorderWidth, ScreenWidth, ScreenHeight)
}

var (
	ColorBackground = color.RGBA{R: 0x03, G: 0x07, B: 0x12, A: 0xff}
	ColorBoard      = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	ColorBorder     = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	ColorCellEven   = color.RGBA{R: 0x1a, G: 0x21, B: 0x2f, A: 0xff}
	ColorCellOdd    = color.RGBA{R: 0x16, G: 0x1d, B: 0x2b, A: 0xff}
	ColorHead       = color.RGBA{R: 0x34, G: 0xd3, B: 0x99, A: 0xff}
	ColorBody       = color.RGBA{R: 0x05, G: 0x96, B: 0x69, A: 0xcc}
	ColorFood       = color.RGBA{R: 0xf4, G: 0x3f, B: 0x5e, A: 0xff}
	ColorScore      = color.RGBA{R: 0x34, G: 0xd3, B: 0x99, A: 0xff}
	ColorBest       = color.RGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff}
	ColorLabel      = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	ColorOverlay    = color.RGBA{A: 0x99}
	ColorButton     = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xcc}
	ColorButtonDown = color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	ColorPauseDown  = color.NRGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff}
)
