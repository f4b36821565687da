package http1

import (
	"bytes"
	"strconv"

	"github.com/pimalaya/io-http/internal/netio"
)

type chunkedState int

const (
	chunkedStateSize chunkedState = iota
	chunkedStateData
	chunkedStateTrailer
)

var crlfBytes = []byte("\r\n")
var crlfcrlfBytes = []byte("\r\n\r\n")

// ChunkedDecoder streams RFC 7230 §4.1 chunked transfer coding into a
// decoded body (§4.B). Ported from the original Rust
// ChunkedTransferCoding coroutine (original_source's
// chunked-transfer-coding.rs is authoritative here; read-chunks.rs
// supplied the richer error taxonomy and the test corpus this file's
// tests are drawn from).
type ChunkedDecoder struct {
	read      *netio.ReadStream
	state     chunkedState
	remaining int // bytes left in the current chunk's data+trailing CRLF
	acc       []byte
	body      []byte
	overflow  []byte
}

// NewChunkedDecoder wraps read, the ReadStream sub-machine that will
// supply chunk bytes. Passing nil allocates a fresh one.
func NewChunkedDecoder(read *netio.ReadStream) *ChunkedDecoder {
	if read == nil {
		read = netio.NewReadStream()
	}
	return &ChunkedDecoder{read: read, state: chunkedStateSize}
}

// Extend prepends already-buffered bytes — used by SendExchange to
// hand off the bytes it read past the response header block.
func (c *ChunkedDecoder) Extend(b []byte) { c.acc = append(c.acc, b...) }

// Overflow returns bytes read past the terminating trailer CRLF-CRLF —
// e.g. the start of the next response already buffered ahead on a
// reused connection. Only meaningful once Resume has returned.
func (c *ChunkedDecoder) Overflow() []byte { return c.overflow }

// read1 performs one round of the inner ReadStream, appending any new
// bytes to acc and handing the buffer back for reuse. It reports
// (suspended, err); suspended is the intent to propagate up, or nil if
// the read completed and the caller should re-examine its state.
func (c *ChunkedDecoder) read1(completed *netio.IoIntent) (*netio.IoIntent, error) {
	out, intent, err := c.read.Resume(completed)
	if err != nil {
		return nil, err
	}
	if intent != nil {
		return intent, nil
	}
	if out.N == 0 {
		return nil, netio.ErrUnexpectedEOF
	}
	c.acc = append(c.acc, out.Buffer.Bytes()[:out.N]...)
	c.read.Replace(out.Buffer)
	return nil, nil
}

// Resume advances the machine. See netio.ReadStream.Resume for the
// general suspend/resume contract; on success it returns the fully
// decoded body.
func (c *ChunkedDecoder) Resume(completed *netio.IoIntent) ([]byte, *netio.IoIntent, error) {
	for {
		switch c.state {
		case chunkedStateSize:
			// chunk = chunk-size [ chunk-extension ] CRLF
			//         chunk-data CRLF
			idx := bytes.Index(c.acc, crlfBytes)
			if idx < 0 {
				intent, err := c.read1(completed)
				completed = nil
				if err != nil {
					return nil, nil, err
				}
				if intent != nil {
					return nil, intent, nil
				}
				continue
			}

			ext := idx
			if semi := bytes.IndexByte(c.acc[:idx], ';'); semi >= 0 {
				ext = semi
			}

			sizeText := string(c.acc[:ext])
			size, err := strconv.ParseUint(sizeText, 16, 64)
			if err != nil {
				return nil, nil, &InvalidChunkSizeError{Text: sizeText}
			}

			if size == 0 {
				// drain till CRLF excluded, so the CRLF-CRLF trailer
				// terminator search that follows is unambiguous
				c.acc = c.acc[idx:]
				c.state = chunkedStateTrailer
				continue
			}

			// drain till CRLF included; the chunk's own trailing
			// CRLF is folded into remaining so it gets stripped once
			// the chunk's data has all been copied out
			c.acc = c.acc[idx+len(crlfBytes):]
			c.remaining = int(size) + len(crlfBytes)
			c.state = chunkedStateData

		case chunkedStateData:
			if c.remaining == 0 {
				c.body = c.body[:len(c.body)-len(crlfBytes)]
				c.state = chunkedStateSize
				continue
			}
			if len(c.acc) == 0 {
				intent, err := c.read1(completed)
				completed = nil
				if err != nil {
					return nil, nil, err
				}
				if intent != nil {
					return nil, intent, nil
				}
				continue
			}

			n := c.remaining
			if len(c.acc) < n {
				n = len(c.acc)
			}
			c.body = append(c.body, c.acc[:n]...)
			c.acc = c.acc[n:]
			c.remaining -= n

		case chunkedStateTrailer:
			// A CRLF-CRLF *at offset 0* means the trailer is empty
			// and we've reached the end of the message (see spec.md
			// §9 Open Question 2: a trailer section containing its
			// own embedded CRLF-CRLF, or any non-empty trailer field,
			// is not specially delimited here — faithfully carried
			// over from the original source's reverse-CRLF-CRLF
			// search, which only ever matches at offset 0 once no
			// trailer fields are present).
			if len(c.acc) >= len(crlfcrlfBytes) && bytes.Equal(c.acc[:len(crlfcrlfBytes)], crlfcrlfBytes) {
				c.overflow = c.acc[len(crlfcrlfBytes):]
				return c.body, nil, nil
			}
			intent, err := c.read1(completed)
			completed = nil
			if err != nil {
				return nil, nil, err
			}
			if intent != nil {
				return nil, intent, nil
			}
		}
	}
}
