package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// TextOverlayObject dims the board and centers a title with an optional subtitle over it.
type TextOverlayObject struct {
	title    string
	subtitle string
	frames   int
}

func NewTextOverlayObject(title, subtitle string) *TextOverlayObject {
	return &TextOverlayObject{
		title:    title,
		subtitle: subtitle,
	}
}

func (o *TextOverlayObject) SetText(title, subtitle string) {
	o.title = title
	o.subtitle = subtitle
}

func (o *TextOverlayObject) Update() error {
	o.frames++
	return nil
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	bounds := BoardBounds()
	vector.DrawFilledRect(screen, float32(bounds.Min.X), float32(bounds.Min.Y), float32(bounds.Dx()), float32(bounds.Dy()), ColorOverlay, false)

	centerX := bounds.Min.X + bounds.Dx()/2
	centerY := bounds.Min.Y + bounds.Dy()/2

	drawCentered(screen, strings.ToUpper(o.title), fonts.MPlusLargeFont, centerX, centerY, color.White)
	if o.subtitle == "" {
		return
	}
	// blink the prompt roughly once a second
	if (o.frames/30)%2 == 1 {
		return
	}
	drawCentered(screen, strings.ToUpper(o.subtitle), fonts.TTFNormalFont, centerX, centerY+40, ColorScore)
}

// drawCentered draws t with its baseline at y, horizontally centered on x.
func drawCentered(screen *ebiten.Image, t string, f font.Face, x, y int, clr color.Color) {
	bounds, _ := font.BoundString(f, t)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	text.Draw(screen, t, f, x-width/2, y, clr)
}
