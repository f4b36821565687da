package http1

import (
	"bytes"
	"strconv"
	"strings"
)

// HeaderParseLimits bounds the incremental response-header parser —
// the ambient "configuration" concern for this package, following the
// teacher's ParseLimits/HeaderLimits pattern of small value-typed
// structs passed into parse functions instead of globals.
type HeaderParseLimits struct {
	// MaxHeaders is the maximum number of header fields accepted.
	// spec.md §4.C requires a capacity of at least 64.
	MaxHeaders int
	// MaxHeaderBytes caps the accumulated (still-incomplete) header
	// block size before it's declared malformed, guarding against an
	// unbounded accumulator when a peer never terminates the block.
	// 0 means unbounded.
	MaxHeaderBytes int
}

// DefaultHeaderParseLimits returns the limits used when a caller
// doesn't override them.
func DefaultHeaderParseLimits() HeaderParseLimits {
	return HeaderParseLimits{MaxHeaders: 64}
}

var crlfcrlf = []byte("\r\n\r\n")

// parseResponseHeaders attempts to parse a complete status line plus
// header block out of buf. It returns (builder, consumed, true, nil)
// once complete (consumed is the header-block length including the
// terminating blank line, mirroring httparse's Status::Complete(n));
// (nil, 0, false, nil) when more bytes are needed (Status::Partial);
// or a *ParseResponseHeadersError otherwise. Bare LF line endings are
// not recognized as terminators — only CRLF is, per §6.2 — so a
// peer sending bare-LF framing simply never completes and the caller
// eventually observes EOF instead of a parse error, same as a strict
// httparse-equivalent would.
func parseResponseHeaders(buf []byte, limits HeaderParseLimits) (*ResponseBuilder, int, bool, error) {
	idx := bytes.Index(buf, crlfcrlf)
	if idx < 0 {
		if limits.MaxHeaderBytes > 0 && len(buf) > limits.MaxHeaderBytes {
			return nil, 0, false, &ParseResponseHeadersError{Detail: "header block exceeds configured maximum size"}
		}
		return nil, 0, false, nil
	}
	consumed := idx + len(crlfcrlf)

	lines := strings.Split(string(buf[:idx]), "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, 0, false, &ParseResponseHeadersError{Detail: "missing status line"}
	}

	version, statusCode, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, 0, false, err
	}

	headerLines := lines[1:]
	maxHeaders := limits.MaxHeaders
	if maxHeaders <= 0 {
		maxHeaders = 64
	}
	if len(headerLines) > maxHeaders {
		return nil, 0, false, &ParseResponseHeadersError{Detail: "too many header fields"}
	}

	var header Header
	for _, line := range headerLines {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, 0, false, &ParseResponseHeadersError{Detail: "malformed header field: " + line}
		}
		name := line[:colon]
		value := strings.TrimSpace(line[colon+1:])
		header.Add(name, value)
	}

	return &ResponseBuilder{Version: version, StatusCode: statusCode, Header: header}, consumed, true, nil
}

// parseStatusLine parses "HTTP/<version> SP <code> [SP <reason>]". The
// reason phrase is accepted but not retained — the data model (§3)
// carries only the numeric status code.
func parseStatusLine(line string) (Version, int, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0, 0, &ParseResponseHeadersError{Detail: "malformed status line: " + line}
	}

	var version Version
	switch parts[0] {
	case "HTTP/1.0":
		version = HTTP10
	case "HTTP/1.1":
		version = HTTP11
	default:
		return 0, 0, &ParseResponseHeadersError{Detail: "unsupported HTTP version: " + parts[0]}
	}

	code, err := strconv.Atoi(parts[1])
	if err != nil || code < 100 || code > 999 {
		return 0, 0, &ParseResponseHeadersError{Detail: "invalid status code: " + parts[1]}
	}

	return version, code, nil
}
