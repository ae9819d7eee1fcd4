package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/snake/client/game"
	"github.com/cbodonnell/snake/client/local"
	"github.com/cbodonnell/snake/client/network"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	debug := flag.Bool("debug", false, "show the debug overlay")
	serverURL := flag.String("server", defaultServerURL(), "ws:// or wss:// URL of a game server; plays locally when empty")
	highScoreURL := flag.String("highscore-url", "memory://", "where local play keeps the high score: memory://, sqlite://<path> or http(s)://<server>")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())
	ctx := context.Background()

	var connect func() (game.Controller, error)
	if *serverURL != "" {
		connect = func() (game.Controller, error) {
			return network.NewController(ctx, network.NewControllerOptions{
				ServerURL: *serverURL,
			})
		}
	} else {
		connect = func() (game.Controller, error) {
			repository, err := repositories.NewRepository(ctx, *highScoreURL)
			if err != nil {
				return nil, fmt.Errorf("failed to create repository: %v", err)
			}
			return local.NewController(ctx, local.NewControllerOptions{
				Repository: repository,
			}), nil
		}
	}

	controller, err := connect()
	if err != nil {
		panic(fmt.Sprintf("Failed to create game controller: %v", err))
	}

	g, err := game.NewGame(game.NewGameOptions{
		Debug:      *debug,
		Controller: controller,
		Reconnect:  connect,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}
	defer g.Close()

	ebiten.SetWindowSize(objects.ScreenWidth, objects.ScreenHeight)
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
