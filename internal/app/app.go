// Package app implements the application layer for incr.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/incr/internal/adapters/bundler" //nolint:depguard // Reference host pipeline
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/incremental"
	"go.trai.ch/incr/internal/engine/labels"
	"go.trai.ch/zerr"
)

// App represents the main application logic. Bundlers are kept between
// builds, so a later build of the same bundle is served from the cache.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.EntryResolver
	fs           ports.FileSystem
	output       ports.OutputWriter
	hasher       ports.Hasher
	openStore    ports.BuildInfoStoreFactory
	telemetry    ports.Telemetry
	logger       ports.Logger
	cache        *incremental.Context
	newWatcher   ports.WatcherFactory
	now          func() time.Time

	mu      sync.Mutex
	bundles map[string]*bundleState
	buildMu sync.Mutex
}

// New creates a new App instance. All bundles built by the app share cache.
func New(
	loader ports.ConfigLoader,
	resolver ports.EntryResolver,
	fsys ports.FileSystem,
	output ports.OutputWriter,
	hasher ports.Hasher,
	openStore ports.BuildInfoStoreFactory,
	telemetry ports.Telemetry,
	logger ports.Logger,
	cache *incremental.Context,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		fs:           fsys,
		output:       output,
		hasher:       hasher,
		openStore:    openStore,
		telemetry:    telemetry,
		logger:       logger,
		cache:        cache,
		now:          time.Now,
		bundles:      make(map[string]*bundleState),
	}
}

// WithWatcher sets the factory used by Watch.
func (a *App) WithWatcher(factory ports.WatcherFactory) *App {
	a.newWatcher = factory
	return a
}

// WithClock replaces the clock used for build report timestamps.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Cache returns the shared cache context.
func (a *App) Cache() *incremental.Context {
	return a.cache
}

// BuildOptions selects the configuration and the bundles to build.
type BuildOptions struct {
	// ConfigPath is a config file or a directory to discover one from.
	ConfigPath string
	// Bundles restricts the build to the named bundles. Empty means all.
	Bundles []string
}

// Result summarizes one bundle build.
type Result struct {
	Bundle     string
	Status     domain.VertexStatus
	Rows       int
	Stats      incremental.Stats
	Output     string
	OutputHash string
	Err        error
}

// workspace is the state kept between builds of one configuration.
type workspace struct {
	cfg     *domain.Config
	store   ports.BuildInfoStore
	bundles []*bundleState
}

type bundleState struct {
	cfg     domain.BundleConfig
	entries []string
	labels  bool
	bundler *bundler.Bundler
}

// Build loads the configuration and builds the selected bundles once.
func (a *App) Build(ctx context.Context, opts BuildOptions) ([]Result, error) {
	ws, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}
	return a.buildAll(ctx, ws)
}

// Stats returns the stored build reports of the configuration at configPath.
// With bundle names it returns only those reports, skipping bundles never built.
func (a *App) Stats(configPath string, bundles ...string) ([]domain.BuildInfo, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	selected, err := selectBundles(cfg, bundles)
	if err != nil {
		return nil, err
	}

	store, err := a.openStore(cfg.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open build report store")
	}
	if len(bundles) == 0 {
		return store.All()
	}

	reports := make([]domain.BuildInfo, 0, len(selected))
	for _, b := range selected {
		info, err := store.Get(b.Name)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read build report"), "bundle", b.Name)
		}
		if info != nil {
			reports = append(reports, *info)
		}
	}
	return reports, nil
}

func (a *App) prepare(opts BuildOptions) (*workspace, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	selected, err := selectBundles(cfg, opts.Bundles)
	if err != nil {
		return nil, err
	}

	store, err := a.openStore(cfg.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open build report store")
	}

	ws := &workspace{cfg: cfg, store: store}
	for _, b := range selected {
		ws.bundles = append(ws.bundles, a.bundleState(cfg.Root, b))
	}
	return ws, nil
}

// bundleState returns the state kept for bundle b of the configuration at root.
func (a *App) bundleState(root string, b domain.BundleConfig) *bundleState {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := root + string(filepath.ListSeparator) + b.Name
	st, ok := a.bundles[key]
	if !ok {
		st = &bundleState{}
		a.bundles[key] = st
	}
	st.cfg = b
	return st
}

func selectBundles(cfg *domain.Config, names []string) ([]domain.BundleConfig, error) {
	if len(names) == 0 {
		return cfg.Bundles, nil
	}

	selected := make([]domain.BundleConfig, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		b, ok := cfg.Bundle(name)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrBundleNotFound, "unknown bundle"), "bundle", name)
		}
		selected = append(selected, b)
	}
	return selected, nil
}

// buildAll builds every bundle of the workspace in order. A failing bundle
// does not stop the others. Builds never overlap.
func (a *App) buildAll(ctx context.Context, ws *workspace) ([]Result, error) {
	a.buildMu.Lock()
	defer a.buildMu.Unlock()

	results := make([]Result, 0, len(ws.bundles))
	var errs []error

	for _, st := range ws.bundles {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := a.buildBundle(ctx, ws, st)
		results = append(results, res)
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}

	if len(errs) > 0 {
		return results, errors.Join(domain.ErrBuildFailed, errors.Join(errs...))
	}
	return results, nil
}

func (a *App) buildBundle(ctx context.Context, ws *workspace, st *bundleState) Result {
	name := st.cfg.Name
	ctx, vertex := a.telemetry.Record(ctx, name, ports.WithGroup("bundle"))

	res := Result{Bundle: name, Output: st.cfg.Output}

	err := a.runBundle(ctx, ws, st, &res)
	res.Status = bundleStatus(res, err)

	if err != nil {
		err = zerr.With(zerr.Wrap(err, "bundle failed"), "bundle", name)
		res.Err = err
		vertex.Log(domain.LogLevelError, err.Error())
		a.logger.Error(err)
	} else {
		msg := fmt.Sprintf("bundle %s: %d rows, %d hits, %d misses (%s)",
			name, res.Rows, res.Stats.Hits, res.Stats.Misses, res.Status)
		vertex.Log(domain.LogLevelInfo, msg)
		a.logger.Info(msg)
	}

	if res.Status == domain.VertexStatusCached {
		vertex.Cached()
	}
	vertex.Complete(err)

	info := domain.BuildInfo{
		Bundle:      name,
		Status:      res.Status,
		Session:     int(a.cache.Stats().Sessions),
		Rows:        res.Rows,
		Hits:        res.Stats.Hits,
		Misses:      res.Stats.Misses,
		Validations: res.Stats.Validations,
		OutputHash:  res.OutputHash,
		Timestamp:   a.now(),
	}
	if putErr := ws.store.Put(info); putErr != nil {
		a.logger.Warn(fmt.Sprintf("failed to save build report for %s: %v", name, putErr))
	}

	return res
}

func (a *App) runBundle(ctx context.Context, ws *workspace, st *bundleState, res *Result) error {
	before := a.cache.Stats()

	b, err := a.ensureBundler(ws, st)
	if err != nil {
		return err
	}

	rows, err := b.Bundle(ctx)
	res.Stats = a.cache.Stats().Sub(before)
	if err != nil {
		return err
	}

	if err := a.output.WriteRows(st.cfg.Output, rows); err != nil {
		return err
	}

	res.Rows = len(rows)
	res.OutputHash = a.hasher.ComputeOutputHash(rows)
	return nil
}

// ensureBundler resolves the bundle entries and reuses the bundler from the
// previous build unless the entries or the label setting changed.
func (a *App) ensureBundler(ws *workspace, st *bundleState) (*bundler.Bundler, error) {
	entries, err := a.resolver.ResolveEntries(st.cfg.Entries, ws.cfg.Root, st.cfg.Ignore)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve entries")
	}
	if len(entries) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoEntries, "nothing to bundle"), "patterns", st.cfg.Entries)
	}

	if st.bundler != nil && slices.Equal(entries, st.entries) && st.labels == st.cfg.Labels {
		return st.bundler, nil
	}

	b := bundler.New(a.fs, a.logger, entries)
	if err := incremental.NewPlugin(a.cache).Apply(b); err != nil {
		return nil, err
	}
	if st.cfg.Labels {
		if err := labels.NewPlugin().Apply(b); err != nil {
			return nil, err
		}
	}

	a.logger.Debug(fmt.Sprintf("bundle %s: %d entries", st.cfg.Name, len(entries)))
	st.entries = entries
	st.labels = st.cfg.Labels
	st.bundler = b
	return b, nil
}

func bundleStatus(res Result, err error) domain.VertexStatus {
	switch {
	case err != nil:
		return domain.VertexStatusFailed
	case res.Rows > 0 && res.Stats.Misses == 0 && res.Stats.Hits == int64(res.Rows):
		return domain.VertexStatusCached
	default:
		return domain.VertexStatusCompleted
	}
}
