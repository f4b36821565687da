package http1

import (
	"errors"
	"fmt"

	"github.com/pimalaya/io-http/internal/netio"
	pkgerrors "github.com/pkg/errors"
)

// ErrUnexpectedEOF is surfaced whenever a lower-level read or write
// terminates before the protocol allowed. It is netio's own sentinel,
// re-exported here so callers of this package never need to import
// internal/netio directly.
var ErrUnexpectedEOF = netio.ErrUnexpectedEOF

// ErrInvalidHeaderName / ErrInvalidHeaderValue back Header.Validate.
var (
	ErrInvalidHeaderName  = errors.New("http1: invalid header field name")
	ErrInvalidHeaderValue = errors.New("http1: invalid header field value")
)

// ParseResponseHeadersError means the response header block was
// malformed per the HTTP grammar.
type ParseResponseHeadersError struct {
	Detail string
}

func (e *ParseResponseHeadersError) Error() string {
	return fmt.Sprintf("http1: parse response headers: %s", e.Detail)
}

// InvalidChunkSizeError means a chunk-size line failed to parse as hex.
type InvalidChunkSizeError struct {
	Text string
}

func (e *InvalidChunkSizeError) Error() string {
	return fmt.Sprintf("http1: invalid chunk size: %q", e.Text)
}

// Redirect-specific errors (§4.D, §7).
var (
	ErrMissingLocationHeader = errors.New("http1: missing Location header in redirect response")
	ErrTooManyRedirects      = errors.New("http1: too many redirects")
	errNonASCIILocation      = errors.New("location header is not ASCII-decodable")
)

// InvalidLocationHeaderError means the Location header value contains
// a non-ASCII byte.
type InvalidLocationHeaderError struct {
	Value string
	Err   error
}

func (e *InvalidLocationHeaderError) Error() string {
	return fmt.Sprintf("http1: invalid redirect location header %q: %v", e.Value, e.Err)
}

func (e *InvalidLocationHeaderError) Unwrap() error { return e.Err }

// InvalidLocationURIError means the Location header value did not
// parse as a URI.
type InvalidLocationURIError struct {
	Value string
	Err   error
}

func (e *InvalidLocationURIError) Error() string {
	return fmt.Sprintf("http1: invalid redirect location URI %q: %v", e.Value, e.Err)
}

func (e *InvalidLocationURIError) Unwrap() error { return e.Err }

// TransportError wraps an error raised by a sub-machine (netio),
// transparently, carrying a stack trace captured at the wrap site so
// a driver can tell where in the protocol the failure originated.
type TransportError struct {
	err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("http1: transport: %v", e.err) }
func (e *TransportError) Unwrap() error { return e.err }

// wrapTransport attaches a stack trace to err and wraps it as a
// TransportError. Returns nil for a nil err, so callers can wrap
// blindly in an `if err != nil` chain.
func wrapTransport(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{err: pkgerrors.WithStack(err)}
}
