package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cbodonnell/snake/client/ui"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/messages"
	"github.com/cbodonnell/snake/pkg/queue"
	"nhooyr.io/websocket"
)

const (
	DefaultPingInterval = 2 * time.Second
	// DefaultStateQueueSize is how many state messages may arrive between two frames
	DefaultStateQueueSize = 64

	dialTimeout    = 10 * time.Second
	welcomeTimeout = 5 * time.Second
	writeTimeout   = 5 * time.Second
	// recentRTTCount is how many round trips the ping average covers
	recentRTTCount = 10
)

// Controller plays a game hosted by a server over a WebSocket connection.
type Controller struct {
	conn       *websocket.Conn
	sessionID  string
	stateQueue queue.Queue
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     chan struct{}
	closeOnce  sync.Once

	snapshotMutex sync.Mutex
	snapshot      types.Snapshot

	errMutex sync.Mutex
	err      error

	pingMutex  sync.Mutex
	ping       float64
	recentRTTs []int64
}

type NewControllerOptions struct {
	// ServerURL is the ws:// or wss:// URL of the game endpoint
	ServerURL string
	// PingInterval defaults to DefaultPingInterval
	PingInterval time.Duration
	// StateQueue buffers state messages until the next frame. Defaults to an in-memory queue.
	StateQueue queue.Queue
}

// NewController connects to the server and waits for the session welcome.
func NewController(ctx context.Context, opts NewControllerOptions) (*Controller, error) {
	log.Info("Connecting to game server at %s", opts.ServerURL)
	dialCtx, cancelDial := context.WithTimeout(ctx, dialTimeout)
	defer cancelDial()
	conn, resp, err := websocket.Dial(dialCtx, opts.ServerURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusServiceUnavailable {
			return nil, &ui.ActionableError{Message: "Server is full", Err: err}
		}
		return nil, &ui.ActionableError{Message: "Server unavailable", Err: err}
	}
	conn.SetReadLimit(messages.MessageBufferSize)

	welcome, err := readWelcome(ctx, conn)
	if err != nil {
		conn.Close(websocket.StatusProtocolError, "")
		return nil, fmt.Errorf("failed to read welcome: %v", err)
	}
	if welcome.GridSize != constants.GridSize {
		conn.Close(websocket.StatusPolicyViolation, "")
		return nil, fmt.Errorf("%w: server %d, client %d", ErrGridSizeMismatch, welcome.GridSize, constants.GridSize)
	}
	log.Info("Joined session %s", welcome.SessionID)

	stateQueue := opts.StateQueue
	if stateQueue == nil {
		stateQueue = queue.NewInMemoryQueue(DefaultStateQueueSize)
	}
	pingInterval := opts.PingInterval
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		conn:       conn,
		sessionID:  welcome.SessionID,
		stateQueue: stateQueue,
		cancel:     cancel,
		closed:     make(chan struct{}),
	}

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.handleMessages(ctx)
	}()
	go func() {
		defer c.wg.Done()
		c.pingLoop(ctx, pingInterval)
	}()

	return c, nil
}

func readWelcome(ctx context.Context, conn *websocket.Conn) (*messages.ServerWelcome, error) {
	ctx, cancel := context.WithTimeout(ctx, welcomeTimeout)
	defer cancel()
	msg, err := readMessage(ctx, conn)
	if err != nil {
		return nil, err
	}
	if msg.Type != messages.MessageTypeServerWelcome {
		return nil, fmt.Errorf("expected %s message, got %s", messages.MessageTypeServerWelcome, msg.Type)
	}
	welcome := &messages.ServerWelcome{}
	if err := json.Unmarshal(msg.Payload, welcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal welcome: %v", err)
	}
	return welcome, nil
}

// SessionID is the server's identifier for this game.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// handleMessages reads from the server until the connection ends.
func (c *Controller) handleMessages(ctx context.Context) {
	for {
		typ, b, err := c.conn.Read(ctx)
		if err != nil {
			if c.isClosed() {
				return
			}
			c.setErr(connectionError(err))
			return
		}
		if typ != websocket.MessageBinary {
			log.Warn("Ignoring non-binary message from game server")
			continue
		}
		msg, err := messages.DeserializeMessage(b)
		if err != nil {
			log.Warn("Ignoring malformed message from game server: %v", err)
			continue
		}
		if err := c.handleMessage(msg); err != nil {
			log.Warn("Failed to handle %s message: %v", msg.Type, err)
		}
	}
}

func (c *Controller) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func connectionError(err error) error {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return &ui.ActionableError{Message: "Session ended", Err: &ErrConnectionClosedByServer{}}
	case websocket.StatusTryAgainLater:
		return &ui.ActionableError{Message: "Server is full", Err: err}
	}
	return &ui.ActionableError{Message: "Connection lost", Err: err}
}

func (c *Controller) handleMessage(msg *messages.Message) error {
	log.Trace("Received message from game server of type %s", msg.Type)

	switch msg.Type {
	case messages.MessageTypeServerState:
		if err := c.stateQueue.Enqueue(msg); err != nil {
			if !errors.Is(err, queue.ErrQueueFull) {
				return fmt.Errorf("failed to enqueue state: %v", err)
			}
			// only the newest state matters
			if err := c.stateQueue.ClearQueue(); err != nil {
				return fmt.Errorf("failed to clear state queue: %v", err)
			}
			if err := c.stateQueue.Enqueue(msg); err != nil {
				return fmt.Errorf("failed to enqueue state: %v", err)
			}
		}
	case messages.MessageTypeServerPong:
		c.recordRTT(time.Now().UnixMilli() - msg.Timestamp)
	default:
		return fmt.Errorf("received unexpected message type from game server: %s", msg.Type)
	}

	return nil
}

func (c *Controller) pingLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		c.sendPing(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (c *Controller) sendPing(ctx context.Context) {
	msg := &messages.Message{
		Type:      messages.MessageTypeClientPing,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := c.write(ctx, msg); err != nil && ctx.Err() == nil {
		log.Debug("Failed to send ping: %v", err)
	}
}

// recordRTT keeps the last round trips and averages them without outliers.
func (c *Controller) recordRTT(rtt int64) {
	c.pingMutex.Lock()
	defer c.pingMutex.Unlock()

	c.recentRTTs = append(c.recentRTTs, rtt)
	for len(c.recentRTTs) > recentRTTCount {
		c.recentRTTs = c.recentRTTs[1:]
	}

	sampleRTTs := removeOutlierRTTs(c.recentRTTs)
	ping := 0.0
	for _, p := range sampleRTTs {
		ping += float64(p)
	}
	if len(sampleRTTs) > 0 {
		ping /= float64(len(sampleRTTs))
	}
	c.ping = ping
	log.Trace("Ping: %0.1f ms (last %d ms)", ping, rtt)
}

// Ping returns the average round trip time to the server in milliseconds.
func (c *Controller) Ping() float64 {
	c.pingMutex.Lock()
	defer c.pingMutex.Unlock()
	return c.ping
}

func (c *Controller) StartGame() error {
	return c.send(&messages.Message{Type: messages.MessageTypeClientStart})
}

func (c *Controller) TogglePause() error {
	return c.send(&messages.Message{Type: messages.MessageTypeClientTogglePause})
}

func (c *Controller) RequestDirection(d types.Direction) error {
	payload, err := messages.NewClientDirectionPayload(d)
	if err != nil {
		return fmt.Errorf("failed to create direction payload: %v", err)
	}
	return c.send(&messages.Message{
		Type:    messages.MessageTypeClientDirection,
		Payload: payload,
	})
}

// Snapshot applies the newest queued state and returns it.
func (c *Controller) Snapshot() types.Snapshot {
	c.snapshotMutex.Lock()
	defer c.snapshotMutex.Unlock()

	pending, err := c.stateQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read state queue: %v", err)
		return c.snapshot
	}
	for i := len(pending) - 1; i >= 0; i-- {
		msg, ok := pending[i].(*messages.Message)
		if !ok {
			log.Error("Failed to cast state message: %T", pending[i])
			continue
		}
		snapshot, err := messages.DeserializeSnapshot(msg.Payload)
		if err != nil {
			log.Warn("Dropping malformed state: %v", err)
			continue
		}
		c.snapshot = snapshot
		break
	}
	return c.snapshot
}

func (c *Controller) Err() error {
	c.errMutex.Lock()
	defer c.errMutex.Unlock()
	return c.err
}

func (c *Controller) setErr(err error) {
	c.errMutex.Lock()
	defer c.errMutex.Unlock()
	if c.err == nil {
		log.Error("Game server connection failed: %v", err)
		c.err = err
	}
}

// Close ends the session and waits for the background loops to stop.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		if err := c.conn.Close(websocket.StatusNormalClosure, ""); err != nil {
			log.Debug("Failed to close game server connection: %v", err)
		}
		c.cancel()
		c.wg.Wait()
		if err := c.stateQueue.ClearQueue(); err != nil {
			log.Warn("Failed to clear state queue: %v", err)
		}
		log.Info("Left session %s", c.sessionID)
	})
	return nil
}

func (c *Controller) send(msg *messages.Message) error {
	if c.isClosed() {
		return &ErrConnectionClosedByClient{}
	}
	msg.Timestamp = time.Now().UnixMilli()
	return c.write(context.Background(), msg)
}

// write sends a message. nhooyr connections allow concurrent writers.
func (c *Controller) write(ctx context.Context, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

func readMessage(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
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
