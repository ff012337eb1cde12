package constellation

import (
	"fmt"
)

var (
	ErrL1URLRequired       = fmt.Errorf("l1 url is required for currency l1 client")
	ErrDataL1URLRequired   = fmt.Errorf("data l1 url is required for data l1 client")
	ErrInvalidAddress      = fmt.Errorf("invalid dag address")
	ErrInvalidStatus       = fmt.Errorf("invalid transaction status")
	ErrTransactionNotFound = fmt.Errorf("transaction not found")
)

// NetworkError is the single error type surfaced for every transport-level
// failure: HTTP non-2xx, connectivity failure and timeout. StatusCode is
// zero when no HTTP response was received, Response carries the raw body
// when one was.
type NetworkError struct {
	Message    string
	StatusCode int
	Response   string
}

func NewNetworkError(message string, statusCode int, response string) *NetworkError {
	return &NetworkError{
		Message:    message,
		StatusCode: statusCode,
		Response:   response,
	}
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	}
	return e.Message
}
