package netio

// ReadToEnd accumulates bytes until the underlying stream reaches EOF,
// used when a response carries neither Transfer-Encoding: chunked nor
// a Content-Length — the body runs to connection close.
type ReadToEnd struct {
	acc  []byte
	read *ReadStream
}

// NewReadToEnd returns an empty ReadToEnd.
func NewReadToEnd() *ReadToEnd { return &ReadToEnd{read: NewReadStream()} }

// Extend prepends already-buffered bytes.
func (r *ReadToEnd) Extend(b []byte) { r.acc = append(r.acc, b...) }

// Resume advances the machine. Unlike ReadExact, a 0-byte read here is
// the expected termination condition, not an error.
func (r *ReadToEnd) Resume(completed *IoIntent) ([]byte, *IoIntent, error) {
	for {
		out, intent, err := r.read.Resume(completed)
		completed = nil
		if err != nil {
			return nil, nil, err
		}
		if intent != nil {
			return nil, intent, nil
		}
		if out.N == 0 {
			return r.acc, nil, nil
		}

		r.acc = append(r.acc, out.Buffer.Bytes()[:out.N]...)
		r.read.Replace(out.Buffer)
	}
}
