package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/adapters/logger"
	"go.trai.ch/incr/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	// Watchers hold OS resources, so the node hands out a factory used only in watch mode.
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.PortNodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(log)
			}, nil
		},
	})
}
