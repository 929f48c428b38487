package intake

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/soyeahso/sasagent/internal/logging"
)

// SettleInterval is how long a file must stay quiet before it is dropped.
const SettleInterval = 250 * time.Millisecond

// Watcher turns a directory into a drop target: files written into it are
// dropped on a DropZone once they stop changing.
type Watcher struct {
	dir    string
	zone   *DropZone
	log    *logging.Logger
	settle time.Duration
}

// NewWatcher creates a watcher for dir feeding zone.
func NewWatcher(dir string, zone *DropZone, log *logging.Logger) *Watcher {
	return &Watcher{
		dir:    dir,
		zone:   zone,
		log:    log.Sub("watcher"),
		settle: SettleInterval,
	}
}

// SetSettleInterval overrides SettleInterval.
func (w *Watcher) SetSettleInterval(d time.Duration) {
	w.settle = d
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.log.Info().Str("dir", w.dir).Msg("watching drop directory")

	debounce := NewDebouncer(w.settle)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			path := event.Name
			debounce.Call(path, func() { w.dropPath(ctx, path) })
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) dropPath(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	f, err := FileFromPath(path)
	if err != nil {
		w.log.Debug().Err(err).Str("path", path).Msg("dropped file vanished")
		return
	}
	w.log.Debug().Str("file", f.Name).Msg("file settled")

	w.zone.Enter(ctx)
	w.zone.DropFiles(ctx, []File{f})
}
