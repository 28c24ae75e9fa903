package mpack

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/statelog-io/dictstream/pkg/dict"
)

// stream concatenates the msgpack encoding of the given values.
func stream(t *testing.T, values ...any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	return buf.Bytes()
}

func TestNextYieldsFragmentsInStreamOrder(t *testing.T) {
	data := stream(t,
		map[string]any{"a": 1},
		map[string]any{"a": 2, "b": 3},
	)
	dec := NewDecoder(data)

	first, err := dec.Next()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	m, ok := first.(map[string]any)
	if !ok {
		t.Fatalf("first fragment is %T, want map", first)
	}
	if len(m) != 1 {
		t.Fatalf("first fragment has %d keys, want 1", len(m))
	}

	second, err := dec.Next()
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if m, ok := second.(map[string]any); !ok || len(m) != 2 {
		t.Fatalf("second fragment = %v", second)
	}

	if _, err := dec.Next(); !errors.Is(err, ErrNoMoreFragments) {
		t.Fatalf("expected ErrNoMoreFragments, got %v", err)
	}
	if dec.Count() != 2 {
		t.Fatalf("Count = %d, want 2", dec.Count())
	}
}

func TestNextOnEmptyBuffer(t *testing.T) {
	dec := NewDecoder(nil)
	if _, err := dec.Next(); !errors.Is(err, ErrNoMoreFragments) {
		t.Fatalf("expected ErrNoMoreFragments, got %v", err)
	}
	if dec.Count() != 0 {
		t.Fatalf("Count = %d, want 0", dec.Count())
	}
}

func TestNextDecodesStringsAsText(t *testing.T) {
	data := stream(t, map[string]any{"name": "example"})
	dec := NewDecoder(data)
	v, err := dec.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	name := v.(map[string]any)["name"]
	if _, ok := name.(string); !ok {
		t.Fatalf("string value decoded as %T", name)
	}
}

func TestNextTruncatedFragment(t *testing.T) {
	data := stream(t, map[string]any{"a": 1})
	dec := NewDecoder(data[:len(data)-1])

	_, err := dec.Next()
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("truncation should wrap io.ErrUnexpectedEOF, got %v", de.Err)
	}
	if de.Fragment != 0 {
		t.Fatalf("Fragment = %d, want 0", de.Fragment)
	}
}

func TestNextMalformedBytes(t *testing.T) {
	// 0xc1 is the one code the MessagePack spec never assigns.
	dec := NewDecoder([]byte{0xc1})
	_, err := dec.Next()
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("malformed bytes are not a truncation: %v", err)
	}
}

func TestNextDictionaryRejectsScalar(t *testing.T) {
	data := stream(t, 42, map[string]any{"a": 1})
	dec := NewDecoder(data)

	_, err := dec.NextDictionary()
	var te *dict.TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected dict.TypeError, got %v", err)
	}
}

func TestMarkStopsAtFragmentBoundary(t *testing.T) {
	whole := stream(t, map[string]any{"a": 1})
	data := stream(t, map[string]any{"a": 1}, map[string]any{"b": 2})
	// Cut into the second fragment.
	dec := NewDecoder(data[:len(data)-1])

	if _, err := dec.Next(); err != nil {
		t.Fatalf("first: %v", err)
	}
	if dec.Mark() != int64(len(whole)) {
		t.Fatalf("Mark = %d, want %d", dec.Mark(), len(whole))
	}

	_, err := dec.Next()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected truncation, got %v", err)
	}
	if dec.Mark() != int64(len(whole)) {
		t.Fatalf("Mark moved into a partial fragment: %d", dec.Mark())
	}
	if dec.Offset() <= dec.Mark() {
		t.Fatalf("Offset should have consumed partial bytes: offset=%d mark=%d",
			dec.Offset(), dec.Mark())
	}
}
