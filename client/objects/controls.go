package objects

import (
	"image/color"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

const controlButtonSize = 60

// ControlsObject is the on-screen D-pad and pause button for touch play.
type ControlsObject struct {
	ui *ebitenui.UI
}

type NewControlsObjectOptions struct {
	// OnDirection is called when a D-pad button is clicked.
	OnDirection func(d types.Direction)
	// OnPause is called when the center button is clicked.
	OnPause func()
}

func NewControlsObject(opts NewControlsObjectOptions) *ControlsObject {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.Insets{
				Top: ControlsBounds().Min.Y + 12,
			}),
		)),
	)

	pad := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Spacing(8, 8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	direction := func(label string, d types.Direction) widget.PreferredSizeLocateableWidget {
		return newControlButton(label, ColorButtonDown, func() {
			if opts.OnDirection != nil {
				opts.OnDirection(d)
			}
		})
	}
	pause := newControlButton("II", ColorPauseDown, func() {
		if opts.OnPause != nil {
			opts.OnPause()
		}
	})

	for _, w := range []widget.PreferredSizeLocateableWidget{
		newSpacer(), direction("↑", types.DirectionUp), newSpacer(),
		direction("←", types.DirectionLeft), pause, direction("→", types.DirectionRight),
		newSpacer(), direction("↓", types.DirectionDown), newSpacer(),
	} {
		pad.AddChild(w)
	}
	rootContainer.AddChild(pad)

	return &ControlsObject{
		ui: &ebitenui.UI{
			Container: rootContainer,
		},
	}
}

func newControlButton(label string, pressed color.Color, onClick func()) *widget.Button {
	button := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(controlButtonSize, controlButtonSize),
		),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(ColorButton),
			Hover:   image.NewNineSliceColor(ColorButton),
			Pressed: image.NewNineSliceColor(pressed),
		}),
		widget.ButtonOpts.Text(label, fonts.MPlusNormalFont, &widget.ButtonTextColor{
			Idle:     color.NRGBA{254, 255, 255, 255},
			Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
	)
	button.ClickedEvent.AddHandler(func(args interface{}) {
		onClick()
	})
	return button
}

func newSpacer() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(controlButtonSize, controlButtonSize),
		),
	)
}

func (o *ControlsObject) Update() error {
	o.ui.Update()
	return nil
}

func (o *ControlsObject) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}
