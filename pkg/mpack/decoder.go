package mpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/statelog-io/dictstream/pkg/dict"
)

// ErrNoMoreFragments indicates that the stream is exhausted exactly at a
// fragment boundary.
var ErrNoMoreFragments = io.EOF

// DecodeError reports a fragment that could not be decoded. Fragment is the
// zero-based position of the failing fragment in the stream. A truncated
// trailing fragment wraps io.ErrUnexpectedEOF, which followers treat as
// "wait for more bytes".
type DecodeError struct {
	Fragment int
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mpack: decode fragment %d: %v", e.Fragment, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder yields the top-level values of a MessagePack stream one call at a
// time, in stream order. It is fed the whole buffer once at construction
// and cannot be restarted.
type Decoder struct {
	r    *bytes.Reader
	dec  *msgpack.Decoder
	n    int
	mark int64
	size int64
}

// NewDecoder creates a decoder over the given encoded buffer. Strings
// decode as native text, never as raw bytes.
func NewDecoder(data []byte) *Decoder {
	r := bytes.NewReader(data)
	return &Decoder{
		r:    r,
		dec:  msgpack.NewDecoder(r),
		size: int64(len(data)),
	}
}

// Next returns the next top-level value. It returns ErrNoMoreFragments at
// the end of the stream and a DecodeError for malformed or truncated bytes.
func (d *Decoder) Next() (any, error) {
	if d.r.Len() == 0 {
		return nil, ErrNoMoreFragments
	}
	v, err := d.dec.DecodeInterfaceLoose()
	if err != nil {
		// Running out of bytes inside a fragment means the stream was cut
		// mid-value, whatever EOF flavor the inner read reported.
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &DecodeError{Fragment: d.n, Err: err}
	}
	d.n++
	d.mark = d.Offset()
	return v, nil
}

// NextDictionary returns the next top-level value converted to a map
// dictionary. It fails with a dict.TypeError when the value is not a map
// with string keys.
func (d *Decoder) NextDictionary() (*dict.Dictionary, error) {
	v, err := d.Next()
	if err != nil {
		return nil, err
	}
	return dict.FromMap(v)
}

// Count returns the number of fragments decoded so far.
func (d *Decoder) Count() int {
	return d.n
}

// Offset returns the number of consumed bytes, including bytes of a
// fragment that failed to decode.
func (d *Decoder) Offset() int64 {
	return d.size - int64(d.r.Len())
}

// Mark returns the offset right behind the last successfully decoded
// fragment. Unlike Offset it never points inside a fragment, so it is safe
// to resume a growing stream from it.
func (d *Decoder) Mark() int64 {
	return d.mark
}
