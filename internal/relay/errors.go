package relay

import "fmt"

// ClientError marks an invalid inbound request. It is returned before any
// upstream call is made and maps to a 400-class response.
type ClientError struct {
	msg string
}

func (e *ClientError) Error() string { return e.msg }

// NewClientError builds a ClientError with a caller-facing message.
func NewClientError(msg string) *ClientError {
	return &ClientError{msg: msg}
}

func clientErrorf(format string, args ...any) *ClientError {
	return &ClientError{msg: fmt.Sprintf(format, args...)}
}
