package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sync"
)

// maxFrameSize caps a single inbound frame. Frames past the cap are a
// decode failure, not a session failure: the decoder discards through
// the next delimiter and keeps the stream aligned.
const maxFrameSize = 1024 * 1024

// errFrameTooLong marks an oversized frame that has already been
// discarded; the caller drops it and carries on.
var errFrameTooLong = errors.New("frame exceeds size limit")

// frameDecoder splits the inbound byte stream into newline-delimited
// frames. Blank lines are skipped.
type frameDecoder struct {
	r *bufio.Reader
}

func newFrameDecoder(r io.Reader) *frameDecoder {
	return &frameDecoder{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next non-empty frame, io.EOF on clean end of
// stream, errFrameTooLong for an oversized frame, or the underlying
// read error.
func (d *frameDecoder) Next() ([]byte, error) {
	for {
		line, err := d.readLine()
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			continue
		}
		return line, nil
	}
}

// readLine accumulates one delimited line, enforcing maxFrameSize. The
// final line of the stream may arrive without a trailing newline.
func (d *frameDecoder) readLine() ([]byte, error) {
	var frame []byte
	for {
		chunk, err := d.r.ReadSlice('\n')
		frame = append(frame, chunk...)

		switch err {
		case nil:
			frame = bytes.TrimRight(frame, "\r\n")
			if len(frame) > maxFrameSize {
				return nil, errFrameTooLong
			}
			return frame, nil
		case bufio.ErrBufferFull:
			if len(frame) > maxFrameSize {
				return nil, d.discardLine()
			}
		case io.EOF:
			if len(frame) == 0 {
				return nil, io.EOF
			}
			if len(frame) > maxFrameSize {
				return nil, errFrameTooLong
			}
			return frame, nil
		default:
			return nil, err
		}
	}
}

// discardLine drops bytes through the next delimiter so the stream
// stays aligned after an oversized frame.
func (d *frameDecoder) discardLine() error {
	for {
		_, err := d.r.ReadSlice('\n')
		switch err {
		case nil, io.EOF:
			return errFrameTooLong
		case bufio.ErrBufferFull:
			// keep discarding
		default:
			return err
		}
	}
}

// frameEncoder writes one message per line. The mutex keeps frames
// atomic should writers ever run concurrently.
type frameEncoder struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newFrameEncoder(w io.Writer) *frameEncoder {
	return &frameEncoder{enc: json.NewEncoder(w)}
}

func (e *frameEncoder) Encode(v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(v)
}
