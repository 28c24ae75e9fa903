// Package loader implements the decode, merge and emit loop over a
// dictionary stream file.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/statelog-io/dictstream/pkg/dict"
	"github.com/statelog-io/dictstream/pkg/log"
	"github.com/statelog-io/dictstream/pkg/mpack"
)

// Loader reads a dictionary stream file and prints the accumulated
// dictionary once per fragment.
type Loader struct {
	out    io.Writer
	json   bool
	deep   bool
	logger log.Logger
}

// New creates a Loader writing to stdout with the default rendering.
func New(opts ...Option) *Loader {
	l := &Loader{
		out:    os.Stdout,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run loads the file at path: the whole file is read into memory, fed to a
// stream decoder once, and every decoded fragment is merged into one
// accumulating dictionary whose state is printed after each merge. It
// returns the number of fragments processed. Any failure aborts the run;
// snapshots printed before the failure stay printed.
func (l *Loader) Run(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	acc := dict.New()
	n, err := l.Consume(mpack.NewDecoder(data), acc)
	if err != nil {
		return n, fmt.Errorf("load %s: %w", path, err)
	}
	l.logger.Debug("stream exhausted", log.String("path", path), log.Int("fragments", n))
	return n, nil
}

// Consume drains the decoder into acc, emitting one snapshot per fragment.
// It returns the number of fragments merged, which is also the number of
// snapshots written. Shared by Run and by follow mode, which calls it
// repeatedly with fresh decoders over the same accumulator.
func (l *Loader) Consume(dec *mpack.Decoder, acc *dict.Dictionary) (int, error) {
	merged := 0
	for {
		frag, err := dec.NextDictionary()
		if errors.Is(err, mpack.ErrNoMoreFragments) {
			return merged, nil
		}
		if err != nil {
			return merged, err
		}
		if l.deep {
			err = acc.Update(frag)
		} else {
			err = acc.Merge(frag)
		}
		if err != nil {
			return merged, err
		}
		if err := l.emit(acc); err != nil {
			return merged, err
		}
		merged++
	}
}

func (l *Loader) emit(acc *dict.Dictionary) error {
	if l.json {
		return acc.WriteJSON(l.out)
	}
	_, err := fmt.Fprintln(l.out, acc.String())
	return err
}
