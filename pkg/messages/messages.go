package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/snake/pkg/game/types"
)

const (
	// MessageBufferSize is the read limit for a single client message
	MessageBufferSize = 1024
)

type MessageType uint8

// Message types
const (
	MessageTypeClientPing MessageType = iota + 1
	MessageTypeClientStart
	MessageTypeClientTogglePause
	MessageTypeClientDirection
	MessageTypeServerPong
	MessageTypeServerWelcome
	MessageTypeServerState
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientPing:
		return "ping"
	case MessageTypeClientStart:
		return "start"
	case MessageTypeClientTogglePause:
		return "toggle-pause"
	case MessageTypeClientDirection:
		return "direction"
	case MessageTypeServerPong:
		return "pong"
	case MessageTypeServerWelcome:
		return "welcome"
	case MessageTypeServerState:
		return "state"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Message is the envelope for everything sent over a session connection
type Message struct {
	Type MessageType
	// Timestamp is set by the sender in unix milliseconds. Pongs echo the ping's value.
	Timestamp int64
	Payload   []byte
}

// ClientDirection is the payload of MessageTypeClientDirection
type ClientDirection struct {
	Direction string `json:"direction"`
}

// ServerWelcome is the payload of MessageTypeServerWelcome
type ServerWelcome struct {
	SessionID string `json:"sessionID"`
	GridSize  int    `json:"gridSize"`
}

func NewClientDirectionPayload(d types.Direction) ([]byte, error) {
	payload, err := json.Marshal(&ClientDirection{Direction: d.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal direction: %v", err)
	}
	return payload, nil
}

// ParseClientDirectionPayload decodes a direction payload into a valid direction.
func ParseClientDirectionPayload(payload []byte) (types.Direction, error) {
	clientDirection := &ClientDirection{}
	if err := json.Unmarshal(payload, clientDirection); err != nil {
		return 0, fmt.Errorf("failed to unmarshal direction: %v", err)
	}
	d, err := types.ParseDirection(clientDirection.Direction)
	if err != nil {
		return 0, err
	}
	return d, nil
}
