package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/messages"
	"github.com/cbodonnell/snake/pkg/workers"
	"nhooyr.io/websocket"
)

// WriteTimeout bounds a single message write to a session connection
const WriteTimeout = 5 * time.Second

// WSServer serves one game session per WebSocket connection.
type WSServer struct {
	sessionManager    *SessionManager
	highScoreLoader   game.HighScoreLoader
	saveHighScoreChan chan<- workers.SaveHighScoreRequest
	originPatterns    []string
	newTicker         func(time.Duration) game.Ticker
}

type NewWSServerOptions struct {
	SessionManager *SessionManager
	// HighScoreLoader is read when a session starts so it begins with the server-wide best
	HighScoreLoader   game.HighScoreLoader
	SaveHighScoreChan chan<- workers.SaveHighScoreRequest
	// OriginPatterns lists the allowed browser origins. "*" allows any.
	OriginPatterns []string
	NewTicker      func(time.Duration) game.Ticker
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	sessionManager := opts.SessionManager
	if sessionManager == nil {
		sessionManager = NewSessionManager(0)
	}
	return &WSServer{
		sessionManager:    sessionManager,
		highScoreLoader:   opts.HighScoreLoader,
		saveHighScoreChan: opts.SaveHighScoreChan,
		originPatterns:    opts.OriginPatterns,
		newTicker:         opts.NewTicker,
	}
}

func (s *WSServer) SessionManager() *SessionManager {
	return s.sessionManager
}

// Handler returns the HTTP handler that upgrades requests to game sessions.
func (s *WSServer) Handler() http.Handler {
	return http.HandlerFunc(s.handleWS)
}

func (s *WSServer) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{}
	for _, pattern := range s.originPatterns {
		if pattern == "*" {
			opts.InsecureSkipVerify = true
			return opts
		}
	}
	opts.OriginPatterns = s.originPatterns
	return opts
}

func (s *WSServer) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.sessionManager.Full() {
		http.Error(w, ErrTooManySessions.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := websocket.Accept(w, r, s.acceptOptions())
	if err != nil {
		log.Error("Failed to accept WebSocket connection from %s: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(messages.MessageBufferSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	session := NewSession(NewSessionOptions{
		HighScore:         game.LoadHighScore(ctx, s.highScoreLoader),
		SaveHighScoreChan: s.saveHighScoreChan,
		NewTicker:         s.newTicker,
	})
	if err := s.sessionManager.Add(session); err != nil {
		log.Warn("Rejected connection from %s: %v", r.RemoteAddr, err)
		conn.Close(websocket.StatusTryAgainLater, err.Error())
		return
	}
	log.Info("Session %s started for %s", session.ID, r.RemoteAddr)

	defer func() {
		cancel()
		<-session.Manager.Done()
		s.sessionManager.Remove(session.ID)
		conn.Close(websocket.StatusNormalClosure, "")
		log.Info("Session %s ended", session.ID)
	}()

	// the initial snapshot waits in the session's update slot until the writer starts
	go func() {
		if err := session.Manager.Start(ctx); err != nil {
			log.Error("Game manager for session %s failed: %v", session.ID, err)
		}
	}()

	if err := s.sendWelcome(ctx, conn, session); err != nil {
		log.Error("Failed to send welcome to session %s: %v", session.ID, err)
		return
	}

	go s.writeStates(ctx, cancel, conn, session)
	s.readMessages(ctx, conn, session)
}

func (s *WSServer) sendWelcome(ctx context.Context, conn *websocket.Conn, session *Session) error {
	payload, err := json.Marshal(&messages.ServerWelcome{
		SessionID: session.ID,
		GridSize:  constants.GridSize,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal welcome: %v", err)
	}
	return WriteMessageToWS(ctx, conn, &messages.Message{
		Type:      messages.MessageTypeServerWelcome,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	})
}

// writeStates sends each snapshot the session publishes until ctx is done.
func (s *WSServer) writeStates(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, session *Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-session.Updates():
			payload, err := messages.SerializeSnapshot(snapshot)
			if err != nil {
				log.Error("Failed to serialize snapshot for session %s: %v", session.ID, err)
				continue
			}
			msg := &messages.Message{
				Type:      messages.MessageTypeServerState,
				Timestamp: time.Now().UnixMilli(),
				Payload:   payload,
			}
			if err := WriteMessageToWS(ctx, conn, msg); err != nil {
				if ctx.Err() == nil {
					log.Error("Failed to write state to session %s: %v", session.ID, err)
				}
				cancel()
				return
			}
		}
	}
}

// readMessages applies client messages to the session until the connection closes.
func (s *WSServer) readMessages(ctx context.Context, conn *websocket.Conn, session *Session) {
	for {
		typ, b, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Trace("Connection closed for session %s", session.ID)
			default:
				if ctx.Err() == nil {
					log.Debug("Error reading from session %s: %v", session.ID, err)
				}
			}
			return
		}
		if typ != websocket.MessageBinary {
			log.Warn("Ignoring non-binary message from session %s", session.ID)
			continue
		}

		message, err := messages.DeserializeMessage(b)
		if err != nil {
			log.Warn("Ignoring malformed message from session %s: %v", session.ID, err)
			continue
		}
		if err := s.handleClientMessage(ctx, conn, session, message); err != nil {
			if errors.Is(err, game.ErrManagerStopped) {
				return
			}
			log.Warn("Failed to handle %s message from session %s: %v", message.Type, session.ID, err)
		}
	}
}

func (s *WSServer) handleClientMessage(ctx context.Context, conn *websocket.Conn, session *Session, message *messages.Message) error {
	log.Trace("Received %s message from session %s", message.Type, session.ID)

	switch message.Type {
	case messages.MessageTypeClientStart:
		return session.Manager.StartGame()
	case messages.MessageTypeClientTogglePause:
		return session.Manager.TogglePause()
	case messages.MessageTypeClientDirection:
		d, err := messages.ParseClientDirectionPayload(message.Payload)
		if err != nil {
			return err
		}
		return session.Manager.RequestDirection(d)
	case messages.MessageTypeClientPing:
		return WriteMessageToWS(ctx, conn, &messages.Message{
			Type:      messages.MessageTypeServerPong,
			Timestamp: message.Timestamp,
		})
	default:
		return fmt.Errorf("unexpected message type %s", message.Type)
	}
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	_, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := messages.DeserializeMessage(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}
