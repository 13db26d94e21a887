package gallery

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/VantageDataChat/GoChart/internal/logging"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watch calls onChange with the reloaded configuration each time the file
// at path changes, until ctx is done. The parent directory is watched so
// editors that save by rename are seen. A change that fails to load is
// logged and does not stop the watch.
func Watch(ctx context.Context, path string, loader *Loader, debounce time.Duration, onChange func(*Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug().
				Add(logging.Path(abs)).
				Add(logging.Str("op", event.Op.String())).
				Msg("config changed")
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Add(logging.ErrorField(err)).Msg("watch error")
		case <-timer.C:
			cfg, err := loader.LoadFile(abs)
			if err != nil {
				logging.Warn().
					Add(logging.Path(abs)).
					Add(logging.ErrorField(err)).
					Msg("config reload failed")
				continue
			}
			logging.Info().Add(logging.Path(abs)).Msg("config reloaded")
			onChange(cfg)
		}
	}
}
