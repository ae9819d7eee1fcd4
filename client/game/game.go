package game

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/snake/client/input"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/client/ui"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Controller is the game session the client renders and sends input to.
type Controller interface {
	StartGame() error
	TogglePause() error
	RequestDirection(d types.Direction) error
	// Snapshot returns the newest known snapshot
	Snapshot() types.Snapshot
	// Err returns a non-nil error once the session can no longer be played
	Err() error
	Close() error
}

// PingReporter is implemented by controllers that talk to a server.
type PingReporter interface {
	Ping() float64
}

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// controller is the current game session.
	controller Controller
	// reconnect creates a replacement controller after a session error.
	reconnect func() (Controller, error)
	// sessionErr is the error that ended the current session, if any.
	sessionErr error

	snapshot types.Snapshot
	board    *objects.BoardObject
	hud      *objects.HUDObject
	controls *objects.ControlsObject
	overlay  *objects.TextOverlayObject
}

type NewGameOptions struct {
	Debug      bool
	Controller Controller
	// Reconnect is optional. Without it a session error is final.
	Reconnect func() (Controller, error)
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}

	g := &Game{
		debug:      opts.Debug,
		controller: opts.Controller,
		reconnect:  opts.Reconnect,
		board:      objects.NewBoardObject(),
		hud:        objects.NewHUDObject(),
		overlay:    objects.NewTextOverlayObject("", ""),
	}
	g.controls = objects.NewControlsObject(objects.NewControlsObjectOptions{
		OnDirection: func(d types.Direction) {
			g.submit(g.controller.RequestDirection(d))
		},
		OnPause: func() {
			g.submit(g.controller.TogglePause())
		},
	})
	return g, nil
}

func (g *Game) Update() error {
	if g.sessionErr == nil {
		if err := g.controller.Err(); err != nil {
			log.Error("Game session error: %v", err)
			g.sessionErr = err
		}
	}

	g.snapshot = g.controller.Snapshot()
	g.board.SetSnapshot(g.snapshot)
	g.hud.SetSnapshot(g.snapshot)

	if err := g.handleInput(); err != nil {
		return fmt.Errorf("failed to handle input: %v", err)
	}

	for _, o := range g.activeObjects() {
		if err := o.Update(); err != nil {
			return fmt.Errorf("failed to update object: %v", err)
		}
	}

	return nil
}

func (g *Game) handleInput() error {
	if g.sessionErr != nil {
		if g.reconnect != nil && (input.IsPositiveJustPressed() || input.IsStartJustPressed()) {
			return g.reconnectController()
		}
		return nil
	}

	for _, d := range input.DirectionsJustPressed() {
		g.submit(g.controller.RequestDirection(d))
	}

	if input.IsStartJustPressed() {
		g.startOrTogglePause()
	}

	if input.IsNegativeJustPressed() {
		switch g.snapshot.Status {
		case types.StatusPlaying, types.StatusPaused:
			g.submit(g.controller.TogglePause())
		}
	}

	// clicks on the touch controls belong to the controls
	if input.IsPositiveJustPressedWithin(objects.BoardBounds()) {
		switch g.snapshot.Status {
		case types.StatusIdle, types.StatusGameOver:
			g.submit(g.controller.StartGame())
		}
	}

	return nil
}

func (g *Game) startOrTogglePause() {
	switch g.snapshot.Status {
	case types.StatusIdle, types.StatusGameOver:
		g.submit(g.controller.StartGame())
	default:
		g.submit(g.controller.TogglePause())
	}
}

func (g *Game) submit(err error) {
	if err != nil {
		log.Warn("Failed to submit input: %v", err)
	}
}

func (g *Game) reconnectController() error {
	controller, err := g.reconnect()
	if err != nil {
		log.Error("Failed to reconnect: %v", err)
		g.sessionErr = err
		return nil
	}
	if err := g.controller.Close(); err != nil {
		log.Warn("Failed to close previous controller: %v", err)
	}
	g.controller = controller
	g.sessionErr = nil
	return nil
}

// activeObjects returns the objects to update and draw this frame, bottom first.
func (g *Game) activeObjects() []objects.GameObject {
	active := []objects.GameObject{g.hud, g.board, g.controls}

	title, subtitle := g.overlayText()
	if title != "" {
		g.overlay.SetText(title, subtitle)
		active = append(active, g.overlay)
	}
	return active
}

func (g *Game) overlayText() (title, subtitle string) {
	if g.sessionErr != nil {
		message := "Connection lost"
		var actionableErr *ui.ActionableError
		if errors.As(g.sessionErr, &actionableErr) {
			message = actionableErr.Message
		}
		if g.reconnect == nil {
			return message, ""
		}
		return message, "Press to retry"
	}

	switch g.snapshot.Status {
	case types.StatusIdle:
		return "Snake", "Press to play"
	case types.StatusPaused:
		return "Paused", ""
	case types.StatusGameOver:
		return "Game over", "Press to restart"
	}
	return "", ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(objects.ColorBackground)
	for _, o := range g.activeObjects() {
		o.Draw(screen)
	}
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	lines := fmt.Sprintf("FPS: %0.1f\nTPS: %0.1f\nStatus: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), g.snapshot.Status)
	if pinger, ok := g.controller.(PingReporter); ok {
		lines += fmt.Sprintf("\nPing: %0.1f", pinger.Ping())
	}
	ebitenutil.DebugPrintAt(screen, lines, objects.Margin, objects.ControlsBounds().Max.Y-80)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return objects.ScreenWidth, objects.ScreenHeight
}

// Close ends the current session.
func (g *Game) Close() error {
	return g.controller.Close()
}

var _ ebiten.Game = (*Game)(nil)
