package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned for URLs that are not absolute http(s) addresses
	ErrInvalidAddress = errors.New("invalid address")

	// ErrTransport wraps connection, DNS, TLS and timeout failures
	ErrTransport = errors.New("transport failure")

	// ErrProtocol is wrapped by every *ProtocolError
	ErrProtocol = errors.New("protocol error")

	// ErrTooManyRedirects is returned when a redirect chain exceeds the hop bound
	ErrTooManyRedirects = errors.New("too many redirects")
)

// ProtocolError reports a response with an error status. The response is
// kept so callers can still inspect it.
type ProtocolError struct {
	Status int
	Result *Result
}

func (e *ProtocolError) Error() string {
	url := ""
	if e.Result != nil {
		url = e.Result.URL
	}
	return fmt.Sprintf("%s: status %d from %s", ErrProtocol, e.Status, url)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}
