package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrUnknownProvider means the caller asked for a provider id that is
	// not in the registry. It is a client error; no upstream is contacted.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrTimeout marks an upstream call that exceeded its deadline or was
	// cancelled with the inbound request.
	ErrTimeout = errors.New("provider timed out")
)

// ProviderError is a non-2xx reply from an upstream. The status and body are
// carried verbatim so the client can see what the upstream said.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// MalformedResponseError is a 2xx upstream reply whose envelope or embedded
// JSON payload could not be decoded into the canonical result.
type MalformedResponseError struct {
	Provider string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("provider %s returned a malformed response: %v", e.Provider, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// wrapTransportError converts outbound transport failures into typed errors:
// deadline/cancellation becomes ErrTimeout, everything else keeps its cause.
func wrapTransportError(provider string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("provider %s: %w", provider, ErrTimeout)
	}
	return fmt.Errorf("provider %s request failed: %w", provider, err)
}
