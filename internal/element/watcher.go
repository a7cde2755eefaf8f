package element

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch feeds the hook from the overrides file until the context ends. The
// file is read once at start and re-read on every write, so host pushes land
// whether they happen before or after the first render. Read errors are
// reported on errFn and the previous configuration stays active.
func Watch(ctx context.Context, hook *Hook, path string, errFn func(error)) error {
	if errFn == nil {
		errFn = func(error) {}
	}

	ov, err := LoadOverrides(path)
	if err != nil {
		errFn(err)
	} else {
		hook.Apply(ov)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create overrides dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory is watched, not the file: hosts replace the file
	// atomically via rename.
	if err := watcher.Add(dir); err != nil {
		if cerr := watcher.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
		return fmt.Errorf("failed to watch overrides dir: %w", err)
	}

	go func() {
		defer func() {
			if cerr := watcher.Close(); cerr != nil {
				// Best-effort close.
				_ = cerr
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				ov, err := LoadOverrides(path)
				if err != nil {
					errFn(err)
					continue
				}
				hook.Apply(ov)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errFn(err)
			}
		}
	}()
	return nil
}
