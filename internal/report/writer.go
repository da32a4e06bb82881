// File: internal/report/writer.go (complete file)

package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("nettxt writer is closed")

type Options struct {
	Masthead Masthead
	// Started is printed in the masthead; zero means the time Open is called.
	Started  time.Time
	Location *time.Location
	Gate     Gate
	Logger   *slog.Logger
}

// Writer owns the nettxt output file and rewrites it in place on every Flush.
// A Writer opened with an empty path is disabled: Flush and Close do nothing.
type Writer struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	src    Source
	opt    Options
	log    *slog.Logger
	closed bool
}

// Open creates or truncates path for writing. An error here is meant to be
// fatal to the host; there is no retry or fallback path.
func Open(path string, src Source, opt Options) (*Writer, error) {
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "nettxt"))

	if opt.Started.IsZero() {
		opt.Started = time.Now()
	}
	if opt.Location == nil {
		opt.Location = time.Local
	}

	w := &Writer{path: path, src: src, opt: opt, log: log}
	if path == "" {
		log.Debug("nettxt output not configured, writer disabled")
		return w, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to open nettxt log file %q: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open nettxt log file %q: %w", path, err)
	}
	w.f = f

	log.Info("Opened nettxt log file", "path", path)
	return w, nil
}

// Enabled reports whether the writer has an output file.
func (w *Writer) Enabled() bool {
	return w.path != ""
}

func (w *Writer) Path() string {
	return w.path
}

// Flush re-renders the whole report and overwrites the file from offset 0.
// Any content past the new end is truncated away. On a disabled writer it
// is always a no-op, even after Close.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.Enabled() {
		return nil
	}
	if w.closed {
		return ErrClosed
	}
	return w.flushLocked()
}

func (w *Writer) flushLocked() error {
	if w.f == nil {
		return nil
	}

	start := time.Now()
	text, st := RenderText(w.src, RenderOptions{
		Masthead: w.opt.Masthead,
		Started:  w.opt.Started,
		Location: w.opt.Location,
		Gate:     w.opt.Gate,
	})

	err := w.rewrite([]byte(text))
	observeFlush(time.Since(start), st, err)
	if err != nil {
		return fmt.Errorf("flush nettxt log file %q: %w", w.path, err)
	}

	w.log.Debug("nettxt flushed", "networks", st.Networks, "clients", st.Clients, "bytes", len(text))
	return nil
}

func (w *Writer) rewrite(data []byte) error {
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.f.Write(data); err != nil {
		return err
	}
	if err := w.f.Truncate(int64(len(data))); err != nil {
		return err
	}
	return w.f.Sync()
}

// Close performs a final Flush and releases the file. Calling it again is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.f == nil {
		return nil
	}

	flushErr := w.flushLocked()
	closeErr := w.f.Close()
	w.f = nil

	if err := errors.Join(flushErr, closeErr); err != nil {
		return err
	}
	w.log.Info("Closed nettxt log file", "path", w.path)
	return nil
}
