// Package watch reloads a skills document from disk when it changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/skillmap"
)

// DefaultDebounce groups the burst of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// OnChange receives each successfully decoded document. It runs on the
	// watcher goroutine; Map.Reload is safe to pass here.
	OnChange func(*skillmap.Document)
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher watches one document file. The parent directory is watched
// rather than the file so atomic saves (write temp, rename) are seen.
type Watcher struct {
	path     string
	onChange func(*skillmap.Document)
	debounce time.Duration
	log      *slog.Logger
	fs       *fsnotify.Watcher
}

// New starts watching path. Call Run to deliver changes and Close to stop.
func New(path string, opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, fmt.Errorf("watch: OnChange is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		onChange: opts.OnChange,
		debounce: opts.Debounce,
		log:      opts.Logger,
		fs:       fw,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.log == nil {
		w.log = slog.Default()
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run delivers reloads until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	debounce := time.NewTimer(0)
	<-debounce.C
	defer debounce.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = true
			debounce.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", "err", err)

		case <-debounce.C:
			if pending {
				pending = false
				w.reload()
			}
		}
	}
}

// Close stops the underlying watcher; a running Run returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// reload decodes the file and hands it over. A file that fails to read or
// decode is logged and the previous document stays on screen.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn("reload skills document", "path", w.path, "err", err)
		return
	}
	doc, err := skillmap.ParseDocument(data)
	if err != nil {
		w.log.Warn("reload skills document", "path", w.path, "err", err)
		return
	}
	w.log.Info("skills document changed", "path", w.path, "islands", len(doc.Islands))
	w.onChange(doc)
}
