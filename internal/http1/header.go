package http1

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/http/httpguts"
)

// Field is one header field-name/field-value pair. Values are treated
// as opaque bytes stored as a string; names are compared
// case-insensitively everywhere in this package.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered list of header fields. Unlike net/http.Header
// (a map keyed by canonical name), Header here preserves both
// insertion order and duplicates exactly as received or set, to
// satisfy the data-model invariant that response headers are
// "preserved in received order" and that duplicate request headers
// round-trip unchanged onto the wire.
type Header struct {
	fields []Field
}

// Add appends a field, preserving any existing values for the same
// name (case-insensitively).
func (h *Header) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Set replaces every existing field with the given name (case
// insensitively) with a single field carrying value.
func (h *Header) Set(name, value string) {
	h.Del(name)
	h.Add(name, value)
}

// Get returns the first value for name, or "" if absent.
func (h *Header) Get(name string) string {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Values returns every value for name, in the order they appear.
func (h *Header) Values(name string) []string {
	var vals []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			vals = append(vals, f.Value)
		}
	}
	return vals
}

// Has reports whether any field matches name, case-insensitively.
func (h *Header) Has(name string) bool {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// Del removes every field matching name, case-insensitively.
func (h *Header) Del(name string) {
	out := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.Name, name) {
			out = append(out, f)
		}
	}
	h.fields = out
}

// Fields returns the header fields in order. The returned slice must
// not be mutated by the caller.
func (h *Header) Fields() []Field { return h.fields }

// Len returns the number of fields (not distinct names).
func (h *Header) Len() int { return len(h.fields) }

// Clone returns a deep copy.
func (h *Header) Clone() Header {
	cp := Header{fields: make([]Field, len(h.fields))}
	copy(cp.fields, h.fields)
	return cp
}

// Write serializes every field as "Name: Value\r\n", in order. It does
// not write the terminating blank line; callers compose that
// themselves (see send.go's Serialize state).
func (h *Header) Write(w io.Writer) error {
	for _, f := range h.fields {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every field name and value against RFC 7230 §3.2.6
// token/field-value grammar, using the same validators net/http itself
// relies on internally. Every violation is collected and reported
// together via go-multierror, rather than stopping at the first one,
// so a caller building a request programmatically sees the whole
// picture in one error.
func (h *Header) Validate() error {
	var errs *multierror.Error
	for _, f := range h.fields {
		if !httpguts.ValidHeaderFieldName(f.Name) {
			errs = multierror.Append(errs, fmt.Errorf("%w: %q", ErrInvalidHeaderName, f.Name))
		}
		if !httpguts.ValidHeaderFieldValue(f.Value) {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: %q", ErrInvalidHeaderValue, f.Name, f.Value))
		}
	}
	return errs.ErrorOrNil()
}
