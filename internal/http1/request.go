package http1

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Request is a thin, by-value carrier for an outbound HTTP/1.x
// request: method, URI, version, ordered headers, and a
// fully-materialized body (§3, §4.E — request-body streaming is an
// explicit non-goal).
type Request struct {
	Method  string
	URI     *URI
	Version Version
	Header  Header
	Body    []byte
}

// NewRequest validates method and headers and returns a Request ready
// for serialization. Any caller-supplied Content-Length header is
// dropped here, matching the invariant that Content-Length on the wire
// is always recomputed from len(Body) by Serialize (see send.go).
func NewRequest(method string, uri *URI, version Version, header Header, body []byte) (*Request, error) {
	var errs *multierror.Error

	if err := validateMethod(method); err != nil {
		errs = multierror.Append(errs, err)
	}
	header.Del("Content-Length")
	if err := header.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Request{
		Method:  method,
		URI:     uri,
		Version: version,
		Header:  header,
		Body:    body,
	}, nil
}

// validateMethod checks method is a non-empty RFC 7230 token,
// uppercase by convention (not a hard requirement of the grammar, but
// every registered HTTP method is, and catching the common typo of a
// lowercase verb here is cheap).
func validateMethod(method string) error {
	if method == "" {
		return fmt.Errorf("http1: empty request method")
	}
	for i := 0; i < len(method); i++ {
		c := method[i]
		isTokenChar := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '!' || c == '#' || c == '$' || c == '%' || c == '&' || c == '\'' ||
			c == '*' || c == '+' || c == '-' || c == '.' || c == '^' || c == '_' ||
			c == '`' || c == '|' || c == '~'
		if !isTokenChar {
			return fmt.Errorf("http1: invalid request method %q", method)
		}
	}
	return nil
}

// WithURI returns a shallow copy of r with its URI replaced — used by
// RedirectFollower to rebuild the inner request on each hop without
// disturbing the original's headers or body.
func (r *Request) WithURI(u *URI) *Request {
	cp := *r
	cp.URI = u
	return &cp
}
