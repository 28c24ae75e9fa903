// Package dictstream reads streams of MessagePack-encoded dictionaries.
//
// Example usage:
//
//	n, err := dictstream.Load("robot.mpack", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Fprintf(os.Stderr, "merged %d fragments\n", n)
package dictstream

import (
	"io"

	"github.com/statelog-io/dictstream/internal/loader"
	"github.com/statelog-io/dictstream/pkg/dict"
	"github.com/statelog-io/dictstream/pkg/mpack"
)

// Dictionary is a tree of string keys and scalar values.
// See the dict package for the full API.
type Dictionary = dict.Dictionary

// New returns an empty dictionary.
func New() *Dictionary {
	return dict.New()
}

// Load reads the dictionary stream at path, merges every fragment into one
// accumulating dictionary with last-write-wins semantics, and writes the
// accumulated state to out once per fragment, in stream order. It returns
// the number of fragments processed.
func Load(path string, out io.Writer) (int, error) {
	return loader.New(loader.WithOutput(out)).Run(path)
}

// ReadFile loads a dictionary file into a single dictionary, deep-updating
// across fragments.
func ReadFile(path string) (*Dictionary, error) {
	return mpack.ReadFile(path)
}

// WriteFile serializes one dictionary to a file.
func WriteFile(path string, d *Dictionary) error {
	return mpack.WriteFile(path, d)
}
