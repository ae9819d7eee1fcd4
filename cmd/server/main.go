package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cbodonnell/snake/pkg/api"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/network"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/cbodonnell/snake/pkg/workers"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	allowOrigin := flag.String("allow-origin", "*", "comma-separated list of allowed origins")
	staticDir := flag.String("static-dir", "./web", "directory of the web client, empty to disable")
	maxSessions := flag.Int("max-sessions", 100, "maximum concurrent game sessions, 0 for no limit")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connStr := os.Getenv("SNAKE_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://snake.db"
	}
	repository, err := repositories.NewRepository(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	saveHighScoreChannelSize := 100
	saveHighScoreChan := make(chan workers.SaveHighScoreRequest, saveHighScoreChannelSize)
	saveHighScoreWorker := workers.NewSaveHighScoreWorker(workers.NewSaveHighScoreWorkerOptions{
		Repository:        repository,
		SaveHighScoreChan: saveHighScoreChan,
	})
	workerWaitGroup := &sync.WaitGroup{}
	workerWaitGroup.Add(1)
	go func() {
		defer workerWaitGroup.Done()
		saveHighScoreWorker.Start(ctx)
	}()

	sessionManager := network.NewSessionManager(*maxSessions)
	wsServer := network.NewWSServer(network.NewWSServerOptions{
		SessionManager:    sessionManager,
		HighScoreLoader:   repository,
		SaveHighScoreChan: saveHighScoreChan,
		OriginPatterns:    strings.Split(*allowOrigin, ","),
	})

	apiServerOpts := api.NewAPIServerOptions{
		Port:        *port,
		AllowOrigin: *allowOrigin,
		Repository:  repository,
		WSHandler:   wsServer.Handler(),
		Sessions:    sessionManager,
		StaticDir:   *staticDir,
		BaseContext: ctx,
	}
	tlsCertFile := os.Getenv("SNAKE_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("SNAKE_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	log.Info("Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}

	// ends open sessions; the worker flushes pending saves before the repository closes
	cancel()
	workerWaitGroup.Wait()
}
