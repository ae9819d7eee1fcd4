package objects

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// HUDObject draws the title, the score and the best score above the board.
type HUDObject struct {
	snapshot types.Snapshot
}

func NewHUDObject() *HUDObject {
	return &HUDObject{}
}

func (o *HUDObject) SetSnapshot(snapshot types.Snapshot) {
	o.snapshot = snapshot
}

func (o *HUDObject) Update() error {
	return nil
}

func (o *HUDObject) Draw(screen *ebiten.Image) {
	text.Draw(screen, "SNAKE", fonts.MPlusNormalFont, Margin, 36, ColorScore)
	text.Draw(screen, fmt.Sprintf("%d ms", o.snapshot.Speed), fonts.TTFSmallFont, Margin, 54, ColorLabel)

	right := ScreenWidth - Margin
	right = drawStat(screen, "SCORE", o.snapshot.Score, ColorScore, right)
	drawStat(screen, "BEST", o.snapshot.HighScore, ColorBest, right-24)
}

// drawStat draws a right aligned label over a value ending at x and returns its left edge.
func drawStat(screen *ebiten.Image, label string, value int, clr color.Color, x int) int {
	v := fmt.Sprintf("%d", value)
	valueWidth := font.MeasureString(fonts.TTFNormalFont, v).Ceil()
	labelWidth := font.MeasureString(fonts.TTFSmallFont, label).Ceil()
	width := max(valueWidth, labelWidth)

	text.Draw(screen, label, fonts.TTFSmallFont, x-labelWidth, 24, ColorLabel)
	text.Draw(screen, v, fonts.TTFNormalFont, x-valueWidth, 48, clr)
	return x - width
}
