package mpack

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/statelog-io/dictstream/pkg/dict"
)

// Encoder writes dictionaries to a MessagePack stream, one top-level map
// per Encode call. Map keys are written sorted so that equal dictionaries
// produce equal bytes.
type Encoder struct {
	enc *msgpack.Encoder
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return &Encoder{enc: enc}
}

// Encode appends one dictionary to the stream.
func (e *Encoder) Encode(d *dict.Dictionary) error {
	return e.enc.Encode(d.Interface())
}

// EncodeValue appends one raw value to the stream.
func (e *Encoder) EncodeValue(v any) error {
	return e.enc.Encode(v)
}
