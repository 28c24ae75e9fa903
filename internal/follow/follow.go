// Package follow keeps consuming a dictionary stream file as it grows.
//
// Dictionary streams are typically log files that a producer appends one
// fragment at a time. A Follower runs the same decode, merge and emit loop
// as the one-shot loader, then watches the file (fsnotify events plus a
// poll ticker as fallback) and picks up newly appended complete fragments.
// A truncated trailing fragment is not an error here: the producer has not
// finished writing it, so the follower waits for more bytes.
package follow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/statelog-io/dictstream/internal/loader"
	"github.com/statelog-io/dictstream/pkg/dict"
	"github.com/statelog-io/dictstream/pkg/log"
	"github.com/statelog-io/dictstream/pkg/mpack"
)

// Config holds follower settings.
type Config struct {
	// Path is the stream file to follow.
	Path string

	// PollInterval is the fallback rescan interval when no file events
	// arrive.
	PollInterval time.Duration

	// Resume restores the byte offset from the state file, skipping
	// fragments printed by a previous run.
	Resume bool

	// StateDir is where the state file lives. Defaults to the stream
	// file's directory.
	StateDir string
}

// Follower tails a dictionary stream file.
type Follower struct {
	cfg    Config
	loader *loader.Loader
	logger log.Logger

	acc    *dict.Dictionary
	offset int64
	frags  int
	states *StateFile
}

// New creates a Follower emitting through the given loader.
func New(cfg Config, l *loader.Loader, logger log.Logger) (*Follower, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}
	cfg.Path = abs
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("follow: poll interval must be positive")
	}
	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = filepath.Dir(abs)
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Follower{
		cfg:    cfg,
		loader: l,
		logger: logger,
		acc:    dict.New(),
		states: NewStateFile(stateDir, abs),
	}, nil
}

// Run follows the file until the context is cancelled. The first scan must
// succeed (missing file, malformed fragment or a non-map fragment abort the
// run, exactly as in one-shot loading); afterwards only decode and type
// errors abort, while a missing or idle file is waited out.
func (f *Follower) Run(ctx context.Context) error {
	if f.cfg.Resume {
		if err := f.restore(); err != nil {
			return err
		}
	}

	if _, err := f.scan(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.logger.Warn("file watcher unavailable, polling only", log.Err(err))
		watcher = nil
	} else {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(f.cfg.Path)); err != nil {
			f.logger.Warn("cannot watch directory, polling only",
				log.String("dir", filepath.Dir(f.cfg.Path)), log.Err(err))
			watcher.Close()
			watcher = nil
		}
	}

	var events chan fsnotify.Event
	var werrs chan error
	if watcher != nil {
		events = make(chan fsnotify.Event)
		werrs = make(chan error)
		go forward(watcher, events, werrs)
	}

	backoff := NewBackoff(f.cfg.PollInterval, 30*time.Second)
	var notBefore time.Time

	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Base(event.Name) != filepath.Base(f.cfg.Path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// A write event is a strong signal, skip the idle gate.
			progress, err := f.rescan()
			if err != nil {
				return err
			}
			if progress {
				backoff.Reset()
				notBefore = time.Time{}
			}

		case err, ok := <-werrs:
			if !ok {
				werrs = nil
				continue
			}
			f.logger.Warn("watcher error", log.Err(err))

		case <-ticker.C:
			if time.Now().Before(notBefore) {
				continue
			}
			progress, err := f.rescan()
			if err != nil {
				return err
			}
			if progress {
				backoff.Reset()
				notBefore = time.Time{}
			} else {
				notBefore = time.Now().Add(backoff.Next())
			}
		}
	}
}

// forward drains a watcher into plain channels so Run can treat a missing
// watcher and a closed watcher the same way.
func forward(w *fsnotify.Watcher, events chan<- fsnotify.Event, errs chan<- error) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				close(events)
				return
			}
			events <- event
		case err, ok := <-w.Errors:
			if !ok {
				close(errs)
				return
			}
			errs <- err
		}
	}
}

// rescan wraps scan for the steady state, where a missing file is waited
// out instead of aborting: producers may rotate or recreate the stream.
func (f *Follower) rescan() (bool, error) {
	progress, err := f.scan()
	if err != nil && os.IsNotExist(err) {
		f.logger.Warn("stream file missing, waiting", log.String("path", f.cfg.Path))
		return false, nil
	}
	return progress, err
}

// restore loads the saved offset for the stream, ignoring state written for
// another path.
func (f *Follower) restore() error {
	st, err := f.states.Load()
	if err != nil {
		return fmt.Errorf("follow: load state: %w", err)
	}
	if st.IsEmpty() || st.Path != f.cfg.Path {
		return nil
	}
	f.offset = st.Offset
	f.frags = st.Fragments
	f.logger.Info("resuming",
		log.String("path", f.cfg.Path),
		log.Int64("offset", st.Offset),
		log.Int("fragments", st.Fragments))
	return nil
}

// scan decodes and merges any complete fragments appended since the last
// scan. It reports whether at least one fragment was merged. A truncated
// trailing fragment leaves the offset at the last boundary and reports no
// progress; any other decode or merge failure is returned.
func (f *Follower) scan() (bool, error) {
	data, err := f.readFrom(f.offset)
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}

	dec := mpack.NewDecoder(data)
	n, err := f.loader.Consume(dec, f.acc)
	truncated := false
	if err != nil {
		var de *mpack.DecodeError
		if errors.As(err, &de) && errors.Is(de, io.ErrUnexpectedEOF) {
			truncated = true
		} else {
			return n > 0, err
		}
	}

	if n == 0 {
		return false, nil
	}
	f.frags += n
	f.offset += dec.Mark()
	if truncated {
		f.logger.Debug("trailing fragment incomplete, waiting",
			log.Int64("offset", f.offset))
	}
	if err := f.states.Save(State{
		Path:      f.cfg.Path,
		Offset:    f.offset,
		Fragments: f.frags,
		UpdatedAt: time.Now(),
	}); err != nil {
		return true, fmt.Errorf("follow: save state: %w", err)
	}
	return true, nil
}

// readFrom reads the stream file from the given byte offset to its end.
func (f *Follower) readFrom(offset int64) ([]byte, error) {
	file, err := os.Open(f.cfg.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if offset > 0 {
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(file)
}
