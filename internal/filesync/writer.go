package filesync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

// ErrNotConfigured is returned by a nil Writer or one without a directory.
var ErrNotConfigured = errors.New("file sync writer not configured")

// Writer mirrors game state into one text file per field.
type Writer struct {
	dir           string
	stateSnapshot bool
	metrics       *metrics.Recorder
	now           func() time.Time

	// serializes file writes; the tmp name is shared per field
	writeMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Option customizes a Writer.
type Option func(*Writer)

// WithStateSnapshot also writes state.json on every full sync.
func WithStateSnapshot(enabled bool) Option {
	return func(w *Writer) { w.stateSnapshot = enabled }
}

// WithRecorder reports sync counts and latency.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(w *Writer) { w.metrics = rec }
}

// NewWriter constructs a writer rooted at dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir exposes the output directory.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// EnsureDir creates the output directory (and parents) when missing.
// created reports whether the directory had to be made.
func (w *Writer) EnsureDir() (created bool, err error) {
	if w == nil || w.dir == "" {
		return false, ErrNotConfigured
	}
	info, err := os.Stat(w.dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("output path %s is not a directory", w.dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

// Sync writes the given fields for state, or every field when none are given.
// Each file is replaced atomically and retried once; failures are joined and
// the remaining files are still attempted.
func (w *Writer) Sync(state game.State, fields ...Field) error {
	if w == nil || w.dir == "" {
		return ErrNotConfigured
	}
	full := len(fields) == 0
	if full {
		fields = AllFields
	}

	start := w.now()
	w.writeMu.Lock()
	var errs []error
	for _, field := range fields {
		if err := w.writeWithRetry(string(field), []byte(Render(state, field))); err != nil {
			errs = append(errs, err)
		}
	}
	written := len(fields)
	if full && w.stateSnapshot {
		if err := w.writeStateSnapshot(state); err != nil {
			errs = append(errs, err)
		}
		written++
	}
	w.writeMu.Unlock()

	err := errors.Join(errs...)
	w.metrics.RecordSync(written, time.Since(start), err)
	if err != nil {
		w.recordFailure(err, start)
		return err
	}
	w.recordSuccess(start)
	return nil
}

func (w *Writer) writeStateSnapshot(state game.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return w.writeWithRetry(StateFile, data)
}

func (w *Writer) writeWithRetry(name string, data []byte) error {
	err := w.writeFile(name, data)
	if err == nil {
		return nil
	}
	// The directory may have been removed underneath us; recreate before the retry.
	if _, dirErr := w.EnsureDir(); dirErr != nil {
		return fmt.Errorf("write %s: %w", name, errors.Join(err, dirErr))
	}
	if retryErr := w.writeFile(name, data); retryErr != nil {
		return fmt.Errorf("write %s: %w", name, retryErr)
	}
	return nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	target := Path(w.dir, name)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := filepath.Join(w.dir, "."+name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
