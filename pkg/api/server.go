package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/cbodonnell/snake/pkg/api/handlers"
	"github.com/cbodonnell/snake/pkg/api/middleware"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port        int
	TLS         *TLSConfig
	AllowOrigin string
	Repository  repositories.Repository
	// WSHandler serves game sessions on /ws when set
	WSHandler http.Handler
	// Sessions reports the live session count on /healthz when set
	Sessions handlers.SessionCounter
	// StaticDir is served on / when set
	StaticDir string
	// BaseContext is the parent of every request context. Cancelling it ends open game sessions.
	BaseContext context.Context
}

// NewAPIServer creates a new http.Server for the high score API, game sessions and the web client
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	if opts.BaseContext != nil {
		server.BaseContext = func(net.Listener) context.Context {
			return opts.BaseContext
		}
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter registers every route of the server
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/highscore", handlers.HandleGetHighScore(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/highscore", handlers.HandlePutHighScore(opts.Repository)).Methods(http.MethodPut)
	api.Use(mux.CORSMethodMiddleware(api))
	api.Use(middleware.NewCORSMiddleware(opts.AllowOrigin))

	r.HandleFunc("/healthz", handlers.HandleHealthz(opts.Sessions)).Methods(http.MethodGet)

	if opts.WSHandler != nil {
		r.Handle("/ws", opts.WSHandler)
	}
	if opts.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
