package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/incr/internal/adapters/watcher" //nolint:depguard // Debouncing is part of the watch loop
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// tempPrefix marks files written atomically by the output and state writers.
const tempPrefix = ".incr-"

// Watch starts watching the configuration root, builds the selected bundles,
// then rebuilds them whenever a file under the root changes. Every rebuild
// starts a new cache session, so only changed modules are re-parsed. Build
// failures are logged and do not stop the loop. Watch returns when ctx is
// canceled.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	if a.newWatcher == nil {
		return zerr.Wrap(domain.ErrWatchNotConfigured, "cannot watch")
	}

	ws, err := a.prepare(opts)
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}
	if err := w.Start(ctx, ws.cfg.Root); err != nil {
		_ = w.Stop()
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", ws.cfg.Root)
	}
	a.logger.Info(fmt.Sprintf("watching %s", ws.cfg.Root))

	g, ctx := errgroup.WithContext(ctx)
	changes := make(chan []string)

	debouncer := watcher.NewDebouncer(ws.cfg.Debounce, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})

	// Event pump
	g.Go(func() error {
		for event := range w.Events() {
			if ws.ignored(event.Path) {
				continue
			}
			a.logger.Debug(fmt.Sprintf("watch: %s %s", event.Operation, event.Path))
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Stop the watcher once the loop is canceled.
	g.Go(func() error {
		<-ctx.Done()
		return w.Stop()
	})

	// Rebuild loop. The initial build runs after the watcher started so that
	// edits made while it runs still trigger a rebuild.
	g.Go(func() error {
		if _, err := a.buildAll(ctx, ws); err != nil && ctx.Err() == nil {
			a.logger.Error(err)
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-changes:
				a.logger.Info(fmt.Sprintf("%d files changed, rebuilding", len(paths)))
				if _, err := a.buildAll(ctx, ws); err != nil && ctx.Err() == nil {
					a.logger.Error(err)
				}
			}
		}
	})

	return g.Wait()
}

// ignored reports whether a change to path is produced by the build itself.
func (ws *workspace) ignored(path string) bool {
	if strings.HasPrefix(filepath.Base(path), tempPrefix) {
		return true
	}

	if path == ws.cfg.StatePath {
		return true
	}

	for _, b := range ws.bundles {
		if path == b.cfg.Output {
			return true
		}
	}
	return false
}
