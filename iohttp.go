// Package iohttp is a sans-I/O HTTP/1.x client engine: request
// serialization, response parsing, chunked-transfer decoding, and
// redirect following, all expressed as resumable state machines that
// never touch a socket themselves. A driver supplies bytes in and
// takes bytes out by resuming a machine with the IoIntent it yields;
// see internal/netio for the suspension contract every machine in this
// package is built on.
//
// cmd/sendhttp demonstrates driving these machines over a real
// net.Conn.
package iohttp

import (
	"go.uber.org/zap"

	"github.com/pimalaya/io-http/internal/http1"
	"github.com/pimalaya/io-http/internal/netio"
)

// IoIntent is the suspension ABI every machine in this package
// communicates through: a machine yields one to ask its driver for a
// read or write, and resumes once given the matching completed intent.
type IoIntent = netio.IoIntent

// Header is an ordered, case-insensitive-lookup HTTP header field
// list. Unlike net/http.Header it preserves insertion order and
// duplicate fields exactly as added.
type Header = http1.Header

// Version is the wire HTTP/1.x protocol version of a request or
// response.
type Version = http1.Version

// URI is a minimal absolute-or-relative URI sufficient to serialize a
// request line and to resolve a redirect Location header.
type URI = http1.URI

// Request is an outbound HTTP/1.x request: method, URI, version,
// headers, and a fully-materialized body.
type Request = http1.Request

// Response is a received HTTP/1.x response with a fully-materialized
// body and headers preserved in received order.
type Response = http1.Response

// SendResult is the terminal value of a SendExchange.
type SendResult = http1.SendResult

// SendExchange performs one request/response exchange over an
// externally-owned byte stream.
type SendExchange = http1.SendExchange

// ChunkedDecoder streams RFC 7230 §4.1 chunked transfer coding into a
// decoded body.
type ChunkedDecoder = http1.ChunkedDecoder

// RedirectFollower wraps a SendExchange and transparently follows 3xx
// responses carrying a Location header.
type RedirectFollower = http1.RedirectFollower

// RedirectResult is the terminal value of a RedirectFollower.Resume
// round that neither suspends nor fails.
type RedirectResult = http1.RedirectResult

const (
	HTTP10 = http1.HTTP10
	HTTP11 = http1.HTTP11
)

// Sentinel and typed errors (§7), re-exported so a caller never needs
// to import internal/http1 directly to do an errors.Is/As check.
var (
	ErrUnexpectedEOF         = http1.ErrUnexpectedEOF
	ErrInvalidHeaderName     = http1.ErrInvalidHeaderName
	ErrInvalidHeaderValue    = http1.ErrInvalidHeaderValue
	ErrMissingLocationHeader = http1.ErrMissingLocationHeader
	ErrTooManyRedirects      = http1.ErrTooManyRedirects
)

type (
	ParseResponseHeadersError  = http1.ParseResponseHeadersError
	InvalidChunkSizeError      = http1.InvalidChunkSizeError
	InvalidLocationHeaderError = http1.InvalidLocationHeaderError
	InvalidLocationURIError    = http1.InvalidLocationURIError
	TransportError             = http1.TransportError
)

// NewRequest validates method and headers and returns a Request ready
// for serialization. Any caller-supplied Content-Length header is
// dropped; it is always recomputed from the body's actual length.
func NewRequest(method string, uri *URI, version Version, header Header, body []byte) (*Request, error) {
	return http1.NewRequest(method, uri, version, header, body)
}

// ParseURI parses an absolute-form, origin-form, or asterisk-form URI.
func ParseURI(raw string) (*URI, error) {
	return http1.ParseURI(raw)
}

// NewSendExchange builds a SendExchange for req using the default
// header-parsing limits.
func NewSendExchange(req *Request) *SendExchange {
	return http1.NewSendExchange(req)
}

// NewRedirectFollower builds a RedirectFollower that starts by sending
// req, following up to 4 redirect hops.
func NewRedirectFollower(req *Request) *RedirectFollower {
	return http1.NewRedirectFollower(req)
}

// SetLogger installs l as the logger used for protocol-level tracing.
// Passing nil restores the default no-op logger.
func SetLogger(l *zap.Logger) {
	http1.SetLogger(l)
}
