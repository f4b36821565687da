package netio

import "errors"

// ErrUnexpectedEOF is returned by ReadExact and ChunkedDecoder when the
// underlying transport reaches EOF before the sub-machine's framing is
// satisfied (ReadToEnd treats EOF as its normal termination), and by
// WriteStream when a write reports 0 bytes
// written (a write EOF is always fatal, unlike a read EOF which merely
// signals "no more data").
var ErrUnexpectedEOF = errors.New("netio: unexpected EOF")
