package network

import "errors"

// ErrConnectionClosedByServer is returned when the server ends the session
type ErrConnectionClosedByServer struct{}

func (e *ErrConnectionClosedByServer) Error() string {
	return "connection closed by server"
}

// ErrConnectionClosedByClient is returned when sending on a closed controller
type ErrConnectionClosedByClient struct{}

func (e *ErrConnectionClosedByClient) Error() string {
	return "connection closed by client"
}

// ErrGridSizeMismatch is returned when the server plays on a different board
var ErrGridSizeMismatch = errors.New("server grid size does not match client")
