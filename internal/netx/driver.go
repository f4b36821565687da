package netx

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"github.com/pimalaya/io-http/internal/netio"
)

// DefaultBufSize is the size of the buffered reader ConnDriver wraps
// its connection in, mirroring the teacher's CRLFFastReader buffering.
const DefaultBufSize = 4096

// ConnDriver is the minimal blocking driver that fulfills netio.IoIntent
// suspensions against a real net.Conn — the glue a caller needs to
// actually run a SendExchange or RedirectFollower over a socket. It
// replaces the teacher's line-oriented CRLFFastReader: framing moved
// into internal/netio and internal/http1's own resumable machines, so
// all that's left for a blocking driver to do is perform exactly one
// read or write per intent.
type ConnDriver struct {
	conn net.Conn
	br   *bufio.Reader
}

// NewConnDriver wraps conn in a buffered reader of DefaultBufSize.
func NewConnDriver(conn net.Conn) *ConnDriver {
	return &ConnDriver{conn: conn, br: bufio.NewReaderSize(conn, DefaultBufSize)}
}

// Reset swaps the underlying connection, for use after a
// RedirectFollower yields a Reset signal (§4.D step 6): the caller
// closes the old transport, dials the new one, and calls Reset before
// resuming the follower.
func (d *ConnDriver) Reset(conn net.Conn) {
	d.conn = conn
	d.br.Reset(conn)
}

// Fulfill performs exactly one blocking I/O operation to satisfy
// intent and returns the matching *Completed intent (or a KindError
// intent on failure) to resume the machine with.
func (d *ConnDriver) Fulfill(intent *netio.IoIntent) *netio.IoIntent {
	switch intent.Kind {
	case netio.KindReadWanted:
		n, err := d.br.Read(intent.Buffer.Bytes())
		if err != nil && err != io.EOF {
			return netio.ErrorIntent(err)
		}
		return netio.ReadCompleted(intent.Buffer, n)
	case netio.KindWriteWanted:
		n, err := d.conn.Write(intent.Buffer.Bytes())
		if err != nil {
			return netio.ErrorIntent(err)
		}
		return netio.WriteCompleted(intent.Buffer, n)
	default:
		return netio.ErrorIntent(fmt.Errorf("netx: ConnDriver.Fulfill: unexpected intent %s", intent.Kind))
	}
}

// Close closes the underlying connection.
func (d *ConnDriver) Close() error {
	return d.conn.Close()
}
