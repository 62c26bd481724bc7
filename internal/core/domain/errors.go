package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidBundler is returned when a plugin is applied to something that does not
	// look like a bundler: nil, without a pipeline, or whose deps stage has no cache.
	ErrInvalidBundler = zerr.New("expected a bundler instance")

	// ErrStageNotFound is returned when a pipeline has no stage with the requested label.
	ErrStageNotFound = zerr.New("pipeline stage not found")

	// ErrModuleNotFound is returned when a relative require cannot be resolved to a file.
	ErrModuleNotFound = zerr.New("cannot find module")

	// ErrNoEntries is returned when a bundle resolves to no entry files.
	ErrNoEntries = zerr.New("no entry files")

	// ErrBundleNotFound is returned when a requested bundle is not configured.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrBuildFailed is returned when at least one bundle failed to build.
	ErrBuildFailed = zerr.New("build failed")

	// ErrWatchNotConfigured is returned when watch mode runs without a watcher factory.
	ErrWatchNotConfigured = zerr.New("file watching is not configured")
)
