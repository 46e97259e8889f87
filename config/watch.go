package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reports changes of a set of files, such as the schema files and
// the configuration of a compile run.
type Watcher struct {
	files   map[string]bool
	logger  zerolog.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher watches the given files. The parent directories are watched,
// which is more reliable for editors that do atomic saves.
func NewWatcher(logger zerolog.Logger, paths ...string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		files:   make(map[string]bool, len(paths)),
		logger:  logger,
		watcher: watcher,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("absolute path: %w", err)
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("watch directory: %w", err)
			}
			dirs[dir] = true
		}
	}
	return w, nil
}

// Run calls fn with the path of every written or created file until ctx is
// done. Run closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			// React to write or create (atomic save = create)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("file changed")
				fn(abs)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("file watcher error")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
