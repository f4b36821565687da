package netio

import "fmt"

// WriteStream drives a fully-materialized byte slice to completion,
// yielding as many WriteWanted intents as the driver needs to flush it
// in whatever chunk sizes the transport accepts.
type WriteStream struct {
	data []byte
}

// NewWriteStream returns a WriteStream over data. An empty slice
// terminates on the very first Resume without yielding any intent.
func NewWriteStream(data []byte) *WriteStream { return &WriteStream{data: data} }

// Resume advances the machine. The returned bool is true once every
// byte has been written.
func (w *WriteStream) Resume(completed *IoIntent) (bool, *IoIntent, error) {
	if completed == nil {
		if len(w.data) == 0 {
			return true, nil, nil
		}
		return false, WriteWanted(WrapBytes(w.data)), nil
	}

	switch completed.Kind {
	case KindWriteCompleted:
		if completed.N == 0 {
			return false, nil, ErrUnexpectedEOF
		}
		w.data = w.data[completed.N:]
		if len(w.data) == 0 {
			return true, nil, nil
		}
		return false, WriteWanted(WrapBytes(w.data)), nil
	case KindError:
		return false, nil, completed.Err
	default:
		return false, nil, fmt.Errorf("netio: WriteStream.Resume: unexpected intent %s", completed.Kind)
	}
}
