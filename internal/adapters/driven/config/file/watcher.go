package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// DefaultDebounce coalesces the bursts editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes on disk.
type Watcher struct {
	store    *ConfigStore
	debounce time.Duration
}

// NewWatcher creates a watcher for store.
func NewWatcher(store *ConfigStore) *Watcher {
	return &Watcher{store: store, debounce: DefaultDebounce}
}

// Run watches the config directory until ctx is cancelled. After each
// burst of changes to the config file it reloads the store and calls
// onReload. A reload that fails to parse is logged and the previous
// values are kept.
func (w *Watcher) Run(ctx context.Context, onReload func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory: editors and save() replace the file by rename.
	dir := filepath.Dir(w.store.Path())
	if err := fw.Add(dir); err != nil {
		return err
	}
	name := filepath.Base(w.store.Path())

	var (
		mu    sync.Mutex
		timer *time.Timer
		wg    sync.WaitGroup
	)
	reload := func() {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		if err := w.store.Load(); err != nil {
			logger.Warn("Config reload failed: %v", err)
			return
		}
		logger.Debug("Config reloaded from %s", w.store.Path())
		if onReload != nil {
			onReload()
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			mu.Lock()
			if timer != nil && timer.Stop() {
				wg.Done()
			}
			wg.Add(1)
			timer = time.AfterFunc(w.debounce, reload)
			mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}
