package ui

// ActionableError is an error with a message meant for the player.
type ActionableError struct {
	Message string
	// Err is the underlying cause, kept for logs
	Err error
}

func (e *ActionableError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ActionableError) Unwrap() error {
	return e.Err
}
