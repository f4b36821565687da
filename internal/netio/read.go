package netio

import "fmt"

// ReadOutput is the successful result of one ReadStream step.
type ReadOutput struct {
	// Buffer holds N valid bytes at its head (Buffer.Bytes()[:N]).
	// Ownership is handed to the caller; feed it back via Replace to
	// reuse it for the next read, or Release it once copied out.
	Buffer *Buffer
	// N is the number of bytes the driver placed into Buffer. N == 0
	// signals EOF.
	N int
}

// ReadStream is the resumable counterpart of a single buffered read.
// It performs exactly one read per Resume "round": the first call with
// a nil argument yields a KindReadWanted intent, and the following
// call — given the matching KindReadCompleted intent — returns the
// ReadOutput. Calling Resume(nil) again afterwards starts a fresh
// round, reusing whatever buffer was last handed back via Replace (or
// allocating a new DefaultBufSize one otherwise). This mirrors the
// teacher's CRLFFastReader being driven repeatedly by SendExchange's
// header-accumulation loop, generalized to suspend instead of block.
type ReadStream struct {
	next *Buffer
}

// NewReadStream returns a ReadStream with no buffer pre-seeded; the
// first read allocates a DefaultBufSize one.
func NewReadStream() *ReadStream { return &ReadStream{} }

// Replace hands a previously-owned buffer back to the machine for
// reuse on its next read.
func (r *ReadStream) Replace(buf *Buffer) { r.next = buf }

// Resume advances the machine by one step. See the IoIntent protocol
// contract (§4.A): pass nil on the very first call, and thereafter
// pass exactly the *Completed counterpart of the last yielded intent.
func (r *ReadStream) Resume(completed *IoIntent) (*ReadOutput, *IoIntent, error) {
	if completed == nil {
		buf := r.next
		if buf == nil {
			buf = NewBuffer(DefaultBufSize)
		}
		r.next = nil
		return nil, ReadWanted(buf), nil
	}

	switch completed.Kind {
	case KindReadCompleted:
		return &ReadOutput{Buffer: completed.Buffer, N: completed.N}, nil, nil
	case KindError:
		return nil, nil, completed.Err
	default:
		return nil, nil, fmt.Errorf("netio: ReadStream.Resume: unexpected intent %s", completed.Kind)
	}
}
