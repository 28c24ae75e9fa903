package dict

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a value cannot be stored in a
// dictionary (nil, binary blobs, functions, maps with non-string keys, ...).
var ErrUnsupportedType = errors.New("dict: unsupported value type")

// KeyError reports a lookup for a key that is not in the dictionary.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("dict: no key %q", e.Key)
}

// TypeError reports a shape or kind mismatch: looking up a scalar as a map,
// updating a map with a scalar, or reading a value as the wrong kind.
// Path locates the offending node from the dictionary root ("" for the root
// itself, "bodies.plane" for nested keys).
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dict: expecting %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("dict: at %q: expecting %s, got %s", e.Path, e.Expected, e.Actual)
}

// typeErrorAt prefixes the path of a TypeError bubbling up from a child node.
func typeErrorAt(key string, err error) error {
	var te *TypeError
	if errors.As(err, &te) {
		path := key
		if te.Path != "" {
			path = key + "." + te.Path
		}
		return &TypeError{Path: path, Expected: te.Expected, Actual: te.Actual}
	}
	return err
}
