package http1

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pimalaya/io-http/internal/netio"
	"go.uber.org/zap"
)

type exchangeState int

const (
	exchangeStateSerialize exchangeState = iota
	exchangeStateSending
	exchangeStateReceivingHeaders
	exchangeStateReceivingChunked
	exchangeStateReceivingLengthed
	exchangeStateReceivingToEnd
)

// SendResult is the terminal value of a SendExchange (§4.C). Request is
// the original request, carried through unchanged for the benefit of a
// wrapping RedirectFollower.
type SendResult struct {
	Request   *Request
	Response  *Response
	KeepAlive bool
}

// SendExchange performs one request/response exchange over an
// externally-owned byte stream (§4.C), ported from the original
// source's SendExchange coroutine. It never touches a socket: every
// suspension point yields a netio.IoIntent and resumes from the
// matching completed one, exactly like its netio sub-machines.
type SendExchange struct {
	state  exchangeState
	req    *Request
	limits HeaderParseLimits

	// correlationID ties every log line this exchange emits to a
	// single request/response cycle, and is threaded through by a
	// wrapping RedirectFollower so every hop's lines share it too.
	correlationID uuid.UUID

	write *netio.WriteStream
	read  *netio.ReadStream

	headerAcc []byte
	builder   *ResponseBuilder

	chunked *ChunkedDecoder
	exact   *netio.ReadExact
	toEnd   *netio.ReadToEnd

	// leftover holds bytes read past this exchange's response body —
	// e.g. the start of the next response already buffered ahead on a
	// reused connection — once the body framing has terminated.
	leftover []byte
}

// NewSendExchange builds a SendExchange for req using the default
// header-parsing limits.
func NewSendExchange(req *Request) *SendExchange {
	return NewSendExchangeWithLimits(req, DefaultHeaderParseLimits())
}

// NewSendExchangeWithLimits is NewSendExchange with caller-supplied
// HeaderParseLimits, for drivers that need a tighter or looser cap than
// the default (e.g. a proxy expecting unusually large header blocks).
func NewSendExchangeWithLimits(req *Request, limits HeaderParseLimits) *SendExchange {
	return newSendExchangeWithCorrelation(req, limits, uuid.New(), nil)
}

// newSendExchangeWithCorrelation builds an exchange that reuses
// correlationID (so a RedirectFollower's hops share one log identity)
// and, when seed is non-empty, starts parsing the response headers
// from those already-buffered bytes before ever asking its driver for
// a read — the mechanism that carries a reused connection's read-ahead
// bytes from one hop's exchange into the next's (§4.D step 6).
func newSendExchangeWithCorrelation(req *Request, limits HeaderParseLimits, correlationID uuid.UUID, seed []byte) *SendExchange {
	return &SendExchange{
		state:         exchangeStateSerialize,
		req:           req,
		limits:        limits,
		correlationID: correlationID,
		write:         netio.NewWriteStream(serializeRequest(req)),
		read:          netio.NewReadStream(),
		headerAcc:     append([]byte(nil), seed...),
	}
}

// serializeRequest renders req onto the wire per §4.C: request-line,
// headers (with any caller Content-Length dropped and a fresh one
// computed from the actual body length), a blank line, then the body.
func serializeRequest(req *Request) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s\r\n", req.Method, req.URI.PathAndQuery(), req.Version)

	header := req.Header.Clone()
	header.Del("Content-Length")
	header.Write(&buf)
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(req.Body))
	buf.WriteString("\r\n")
	buf.Write(req.Body)
	return buf.Bytes()
}

// CorrelationID identifies this exchange in log output (§4.C /
// Observability). A RedirectFollower reuses it across every hop of a
// single logical request.
func (s *SendExchange) CorrelationID() uuid.UUID { return s.correlationID }

// Leftover returns bytes read past this exchange's response body, once
// Resume has returned a terminal SendResult. A caller reusing the
// underlying connection (RedirectFollower's same-origin hop) must seed
// the next exchange with these bytes rather than discard them.
func (s *SendExchange) Leftover() []byte { return s.leftover }

// Resume advances the exchange. See the IoIntent protocol contract
// (§4.A / §6.1): pass nil on the first call, thereafter pass exactly
// the *Completed counterpart of the last yielded intent.
func (s *SendExchange) Resume(completed *netio.IoIntent) (*SendResult, *netio.IoIntent, error) {
	for {
		switch s.state {
		case exchangeStateSerialize:
			s.state = exchangeStateSending
			completed = nil

		case exchangeStateSending:
			done, intent, err := s.write.Resume(completed)
			completed = nil
			if err != nil {
				return nil, nil, wrapTransportOrEOF(err)
			}
			if intent != nil {
				return nil, intent, nil
			}
			if done {
				s.state = exchangeStateReceivingHeaders
			}

		case exchangeStateReceivingHeaders:
			// A reused connection's previous exchange may have handed
			// this one a seed of bytes already read past its own body
			// (Leftover) — try parsing those before ever asking the
			// driver for a read.
			if len(s.headerAcc) > 0 {
				builder, consumed, complete, err := parseResponseHeaders(s.headerAcc, s.limits)
				if err != nil {
					return nil, nil, err
				}
				if complete {
					if err := s.dispatchBody(builder, consumed); err != nil {
						return nil, nil, err
					}
					continue
				}
			}

			out, intent, err := s.read.Resume(completed)
			completed = nil
			if err != nil {
				return nil, nil, wrapTransportOrEOF(err)
			}
			if intent != nil {
				return nil, intent, nil
			}
			if out.N == 0 {
				if len(s.headerAcc) == 0 {
					// A peer that closes before sending anything at all
					// degenerates to an empty response rather than a
					// hard failure (§4.C step 5).
					return &SendResult{
						Request:   s.req,
						Response:  &Response{Version: s.req.Version},
						KeepAlive: s.req.Version == HTTP11,
					}, nil, nil
				}
				return nil, nil, ErrUnexpectedEOF
			}
			s.headerAcc = append(s.headerAcc, out.Buffer.Bytes()[:out.N]...)
			s.read.Replace(out.Buffer)

		case exchangeStateReceivingChunked:
			body, intent, err := s.chunked.Resume(completed)
			completed = nil
			if err != nil {
				return nil, nil, wrapTransportOrEOF(err)
			}
			if intent != nil {
				return nil, intent, nil
			}
			s.leftover = s.chunked.Overflow()
			return s.finish(body), nil, nil

		case exchangeStateReceivingLengthed:
			body, intent, err := s.exact.Resume(completed)
			completed = nil
			if err != nil {
				return nil, nil, wrapTransportOrEOF(err)
			}
			if intent != nil {
				return nil, intent, nil
			}
			s.leftover = s.exact.Overflow()
			return s.finish(body), nil, nil

		case exchangeStateReceivingToEnd:
			// A read-to-EOF body consumes the connection itself, so
			// there is never a leftover to carry forward.
			body, intent, err := s.toEnd.Resume(completed)
			completed = nil
			if err != nil {
				return nil, nil, wrapTransportOrEOF(err)
			}
			if intent != nil {
				return nil, intent, nil
			}
			return s.finish(body), nil, nil
		}
	}
}

// dispatchBody picks the body-framing sub-machine for a fully parsed
// response header block, per the chunked > content-length > read-to-end
// precedence (§4.C), and seeds it with whatever bytes were read past
// the header block.
func (s *SendExchange) dispatchBody(builder *ResponseBuilder, consumed int) error {
	s.builder = builder
	overflow := append([]byte(nil), s.headerAcc[consumed:]...)
	s.headerAcc = nil

	switch {
	case strings.EqualFold(builder.Header.Get("Transfer-Encoding"), "chunked"):
		log.Debug("response body framing",
			zap.String("correlation_id", s.correlationID.String()),
			zap.String("mode", "chunked"), zap.Int("status", builder.StatusCode))
		s.chunked = NewChunkedDecoder(netio.NewReadStream())
		s.chunked.Extend(overflow)
		s.state = exchangeStateReceivingChunked
	case builder.Header.Has("Content-Length"):
		n, perr := strconv.Atoi(strings.TrimSpace(builder.Header.Get("Content-Length")))
		if perr != nil || n < 0 {
			return &ParseResponseHeadersError{Detail: "invalid Content-Length: " + builder.Header.Get("Content-Length")}
		}
		log.Debug("response body framing",
			zap.String("correlation_id", s.correlationID.String()),
			zap.String("mode", "content-length"), zap.Int("length", n))
		s.exact = netio.NewReadExact(n)
		s.exact.Extend(overflow)
		s.state = exchangeStateReceivingLengthed
	default:
		log.Debug("response body framing",
			zap.String("correlation_id", s.correlationID.String()),
			zap.String("mode", "read-to-end"))
		s.toEnd = netio.NewReadToEnd()
		s.toEnd.Extend(overflow)
		s.state = exchangeStateReceivingToEnd
	}
	return nil
}

// finish builds the terminal SendResult once a body sub-machine has
// produced its bytes.
func (s *SendExchange) finish(body []byte) *SendResult {
	resp := s.builder.Build(body)
	return &SendResult{
		Request:   s.req,
		Response:  resp,
		KeepAlive: keepAlive(resp.Version, resp.Header),
	}
}

// keepAlive implements §4.C step 3: an explicit Connection: close
// closes the connection regardless of version; otherwise the
// connection stays open unless the response is HTTP/1.0 (which
// defaults to close per RFC 7230 §6.3).
func keepAlive(version Version, header Header) bool {
	if strings.EqualFold(strings.TrimSpace(header.Get("Connection")), "close") {
		return false
	}
	return version != HTTP10
}

// wrapTransportOrEOF is wrapTransport except it leaves a genuine
// ErrUnexpectedEOF unwrapped, so callers get the distinct UnexpectedEof
// variant (§7) rather than always seeing Transport(inner) for the one
// case that has its own sentinel.
func wrapTransportOrEOF(err error) error {
	if errors.Is(err, netio.ErrUnexpectedEOF) {
		return err
	}
	return wrapTransport(err)
}
