package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/incr/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/incr/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/incr/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/incr/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/incr/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/incremental"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ResolverNodeID,
			fs.FileSystemNodeID,
			fs.OutputNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.PortNodeID,
			incremental.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.EntryResolver](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	output, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	openStore, err := graft.Dep[ports.BuildInfoStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[*incremental.Context](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	a := New(loader, resolver, fsys, output, hasher, openStore, telemetry, log, cache)
	return a.WithWatcher(newWatcher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(a, log, telemetry), nil
}
