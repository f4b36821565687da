package http1

import (
	"errors"
	"strings"
)

// URI is a minimal absolute-or-relative URI, enough to drive request
// serialization (origin-form on the wire) and redirect-target
// rewriting (§4.D). It deliberately doesn't attempt full RFC 3986
// coverage (userinfo, IPv6 literals, percent-decoding) — those belong
// to the URL data-structure library spec.md calls out as an external
// collaborator (§1).
type URI struct {
	Scheme    string // "http", "https", or "" if relative
	Authority string // host[:port], or "" if relative
	Path      string
	RawQuery  string
}

// ParseURI parses an absolute-form ("scheme://authority/path?query"),
// origin-form ("/path?query"), or asterisk-form ("*") URI, following
// the same shape as the teacher's ParseRequestURI but generalized to
// also accept the asterisk form used by OPTIONS and to be reusable for
// both outbound requests and Location header targets.
func ParseURI(raw string) (*URI, error) {
	if raw == "" {
		return nil, errors.New("http1: empty URI")
	}
	if strings.ContainsAny(raw, " \r\n") {
		return nil, errors.New("http1: invalid characters in URI")
	}

	if raw == "*" {
		return &URI{Path: "*"}, nil
	}

	u := &URI{}
	switch {
	case strings.HasPrefix(raw, "http://"):
		u.Scheme = "http"
		raw = strings.TrimPrefix(raw, "http://")
	case strings.HasPrefix(raw, "https://"):
		u.Scheme = "https"
		raw = strings.TrimPrefix(raw, "https://")
	}

	if u.Scheme != "" {
		slash := strings.IndexByte(raw, '/')
		if slash == -1 {
			u.Authority = raw
			u.Path = "/"
			return u, nil
		}
		u.Authority = raw[:slash]
		raw = raw[slash:]
	}

	if qmark := strings.IndexByte(raw, '?'); qmark >= 0 {
		u.Path = raw[:qmark]
		u.RawQuery = raw[qmark+1:]
	} else {
		u.Path = raw
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// PathAndQuery returns the origin-form request-target: just the path
// and, if present, "?query" — exactly what goes on the request line
// per §4.C (the authority travels in the Host header instead).
func (u *URI) PathAndQuery() string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

// MergeRedirect implements §4.D step 4: the new scheme (if present)
// replaces the old; same for authority; the new path-and-query
// replaces the old unconditionally, so both an absolute and a relative
// Location yield a well-defined target URI.
func MergeRedirect(base *URI, location *URI) *URI {
	merged := &URI{
		Scheme:    base.Scheme,
		Authority: base.Authority,
		Path:      location.Path,
		RawQuery:  location.RawQuery,
	}
	if location.Scheme != "" {
		merged.Scheme = location.Scheme
	}
	if location.Authority != "" {
		merged.Authority = location.Authority
	}
	return merged
}

// SameOrigin reports whether a and b share the same scheme and
// authority — the reuse condition checked in §4.D step 6.
func SameOrigin(a, b *URI) bool {
	return a.Scheme == b.Scheme && a.Authority == b.Authority
}
