package input

import (
	"image"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle mouse, touch and gamepad inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}
	return isGamepadPositiveJustPressed()
}

// IsPositiveJustPressedWithin is IsPositiveJustPressed limited to clicks and touches inside bounds.
// Gamepad presses have no position and always count.
func IsPositiveJustPressedWithin(bounds image.Rectangle) bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if image.Pt(ebiten.CursorPosition()).In(bounds) {
			return true
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if image.Pt(ebiten.TouchPosition(id)).In(bounds) {
			return true
		}
	}
	return isGamepadPositiveJustPressed()
}

func isGamepadPositiveJustPressed() bool {
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightRight) {
				return true
			}
		} else {
			// The button 0/1 might not be A/B buttons.
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
				return true
			}
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton1) {
				return true
			}
		}
	}
	return false
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, g := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(g) &&
			inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

// IsStartJustPressed reports the keyboard start/pause key.
func IsStartJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

var directionKeys = []struct {
	keys      []ebiten.Key
	button    ebiten.StandardGamepadButton
	direction types.Direction
}{
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, button: ebiten.StandardGamepadButtonLeftTop, direction: types.DirectionUp},
	{keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, button: ebiten.StandardGamepadButtonLeftBottom, direction: types.DirectionDown},
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, button: ebiten.StandardGamepadButtonLeftLeft, direction: types.DirectionLeft},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, button: ebiten.StandardGamepadButtonLeftRight, direction: types.DirectionRight},
}

// DirectionsJustPressed returns the directions pressed this frame, in key order.
func DirectionsJustPressed() []types.Direction {
	var directions []types.Direction
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, dk := range directionKeys {
		pressed := false
		for _, k := range dk.keys {
			if inpututil.IsKeyJustPressed(k) {
				pressed = true
			}
		}
		for _, g := range gamepadIDs {
			if ebiten.IsStandardGamepadLayoutAvailable(g) && inpututil.IsStandardGamepadButtonJustPressed(g, dk.button) {
				pressed = true
			}
		}
		if pressed {
			directions = append(directions, dk.direction)
		}
	}
	return directions
}
