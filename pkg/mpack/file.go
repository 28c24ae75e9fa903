package mpack

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/statelog-io/dictstream/pkg/dict"
)

// ReadFile loads a dictionary file: every fragment in the file is deep
// updated into one dictionary, in stream order. A file with zero fragments
// yields an empty dictionary.
func ReadFile(path string) (*dict.Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := dict.New()
	dec := NewDecoder(data)
	for {
		frag, err := dec.NextDictionary()
		if errors.Is(err, ErrNoMoreFragments) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := out.Update(frag); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
}

// WriteFile serializes one dictionary to a file, replacing any previous
// content.
func WriteFile(path string, d *dict.Dictionary) error {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(d); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
